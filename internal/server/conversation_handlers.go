package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
	"murmur/internal/service"
)

// CreateConversationRequest opens a conversation with another user,
// addressed by username.
type CreateConversationRequest struct {
	TargetUsername string `json:"target_username"`
	Description    string `json:"description"`
}

// MessageRequest is the payload for sending or updating a message.
type MessageRequest struct {
	Content    string   `json:"content"`
	MediaNames []string `json:"media_names"`
}

// CreateConversation handles POST /api/conversations
func (s *Server) CreateConversation(c *fiber.Ctx) error {
	var req CreateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.TargetUsername == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "target_username is required",
		})
	}

	conv, err := s.messagingService.CreateConversation(c.UserContext(), actorID(c), req.TargetUsername, req.Description)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetConversations handles GET /api/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	convs, err := s.messagingService.ListConversationsForUser(c.UserContext(), actorID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(convs)
}

// GetConversation handles GET /api/conversations/:id
func (s *Server) GetConversation(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	conv, err := s.messagingService.GetConversation(c.UserContext(), convID, actorID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(conv)
}

// UpdateConversationDescription handles PUT /api/conversations/:id/description
func (s *Server) UpdateConversationDescription(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	conv, err := s.messagingService.UpdateConversationDescription(c.UserContext(), convID, actorID(c), req.Description)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(conv)
}

// DeleteConversation handles DELETE /api/conversations/:id
func (s *Server) DeleteConversation(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messagingService.DeleteConversation(c.UserContext(), convID, actorID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SendMessage handles POST /api/conversations/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	msg, err := s.messagingService.SendMessage(c.UserContext(), service.SendMessageInput{
		ActorID:        actorID(c),
		ConversationID: convID,
		Content:        req.Content,
		MediaNames:     req.MediaNames,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetMessages handles GET /api/conversations/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	p, err := parsePagination(c, 50)
	if err != nil {
		return nil
	}

	msgs, err := s.messagingService.ListMessagesInConversation(c.UserContext(), convID, actorID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(msgs)
}

// GetMessage handles GET /api/messages/:id
func (s *Server) GetMessage(c *fiber.Ctx) error {
	msgID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	msg, err := s.messagingService.GetMessage(c.UserContext(), msgID, actorID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(msg)
}

// ReplyToMessage handles POST /api/messages/:id/replies
func (s *Server) ReplyToMessage(c *fiber.Ctx) error {
	msgID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ConversationID uint     `json:"conversation_id"`
		Content        string   `json:"content"`
		MediaNames     []string `json:"media_names"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	msg, err := s.messagingService.ReplyToMessage(c.UserContext(), service.SendMessageInput{
		ActorID:        actorID(c),
		ConversationID: req.ConversationID,
		Content:        req.Content,
		MediaNames:     req.MediaNames,
	}, msgID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// UpdateMessage handles PUT /api/messages/:id
func (s *Server) UpdateMessage(c *fiber.Ctx) error {
	msgID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	msg, err := s.messagingService.UpdateMessage(c.UserContext(), service.UpdateMessageInput{
		MessageID:  msgID,
		ActorID:    actorID(c),
		Content:    req.Content,
		MediaNames: req.MediaNames,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(msg)
}

// DeleteMessage handles DELETE /api/messages/:id
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	msgID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messagingService.DeleteMessage(c.UserContext(), msgID, actorID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkMessageRead handles POST /api/messages/:id/read
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	msgID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	msg, err := s.messagingService.MarkMessageRead(c.UserContext(), msgID, actorID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(msg)
}
