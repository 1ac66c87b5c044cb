package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
	"murmur/internal/service"
)

// PostRequest is the payload for creating or updating a post. MediaNames
// reference pre-uploaded media rows by name; on update, omitting the
// field keeps the current media set.
type PostRequest struct {
	Content    string   `json:"content"`
	MediaNames []string `json:"media_names"`
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	post, err := s.feedService.CreatePost(c.UserContext(), service.CreatePostInput{
		ActorID:    actorID(c),
		Content:    req.Content,
		MediaNames: req.MediaNames,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// CreateReply handles POST /api/posts/:id/replies
func (s *Server) CreateReply(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	reply, err := s.feedService.ReplyToPost(c.UserContext(), service.CreatePostInput{
		ActorID:    actorID(c),
		Content:    req.Content,
		MediaNames: req.MediaNames,
	}, postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p, err := parsePagination(c, 20)
	if err != nil {
		return nil
	}

	posts, err := s.feedService.ListPosts(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.feedService.GetPostByID(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	p, err := parsePagination(c, 20)
	if err != nil {
		return nil
	}

	posts, err := s.feedService.ListPostsByUser(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetReplies handles GET /api/posts/:id/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	replies, err := s.feedService.ListReplies(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(replies)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	post, err := s.feedService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:     postID,
		ActorID:    actorID(c),
		Content:    req.Content,
		MediaNames: req.MediaNames,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.DeletePost(c.UserContext(), postID, actorID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFeed handles GET /api/me/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p, err := parsePagination(c, 20)
	if err != nil {
		return nil
	}

	posts, err := s.feedService.GetFeedForFollowedUsers(c.UserContext(), actorID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// ToggleLike handles POST /api/posts/:id/toggle-like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.feedService.ToggleLike(c.UserContext(), actorID(c), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.LikePost(c.UserContext(), actorID(c), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.UnlikePost(c.UserContext(), actorID(c), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
