package service

import (
	"context"
	"time"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/observability"
	"murmur/internal/policy"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

// MessagingService manages two-party conversations and their messages.
type MessagingService struct {
	chatRepo  repository.ChatRepository
	userRepo  repository.UserRepository
	mediaRepo repository.MediaRepository
}

// SendMessageInput carries the payload for sending a message.
type SendMessageInput struct {
	ActorID        uint
	ConversationID uint
	Content        string
	MediaNames     []string
}

// UpdateMessageInput mirrors UpdatePostInput for messages. A nil
// MediaNames leaves the media set untouched.
type UpdateMessageInput struct {
	MessageID  uint
	ActorID    uint
	Content    string
	MediaNames []string
}

// NewMessagingService creates a new messaging service
func NewMessagingService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	mediaRepo repository.MediaRepository,
) *MessagingService {
	return &MessagingService{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
	}
}

// getConversationForActor loads the conversation and enforces the
// participant gate shared by every messaging operation.
func (s *MessagingService) getConversationForActor(ctx context.Context, id, actorID uint, operation string) (*models.Conversation, error) {
	conv, err := s.chatRepo.GetConversationByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Conversation", id)
	}
	if !policy.CanViewConversation(actorID, conv) {
		observability.AccessDenials.WithLabelValues(operation).Inc()
		return nil, models.NewForbiddenError("You are not a participant of this conversation")
	}
	return conv, nil
}

func (s *MessagingService) resolveMedia(ctx context.Context, names []string) ([]models.Media, error) {
	if len(names) == 0 {
		return nil, nil
	}
	for _, name := range names {
		if err := validation.ValidateMediaName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	media, err := s.mediaRepo.GetByNames(ctx, names)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(media) != len(names) {
		resolved := make(map[string]struct{}, len(media))
		for _, m := range media {
			resolved[m.Name] = struct{}{}
		}
		for _, name := range names {
			if _, ok := resolved[name]; !ok {
				return nil, models.NewNotFoundError("Media", name)
			}
		}
	}
	return media, nil
}

func (s *MessagingService) validateBody(content string, media []models.Media) error {
	if err := validation.ValidateContent(content); err != nil {
		return models.NewValidationError(err.Error())
	}
	if content == "" && len(media) == 0 {
		return models.NewValidationError("A message must have text content or media")
	}
	return nil
}

// CreateConversation opens a conversation between the actor and the user
// named by targetUsername.
func (s *MessagingService) CreateConversation(ctx context.Context, actorID uint, targetUsername, description string) (*models.Conversation, error) {
	if actorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Unknown user")
	}
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, mapStoreError(err, "User", targetUsername)
	}
	if target.ID == actor.ID {
		return nil, models.NewValidationError("Cannot start a conversation with yourself")
	}

	conv := &models.Conversation{
		User1ID:     actor.ID,
		User2ID:     target.ID,
		Description: description,
	}
	if err := s.chatRepo.CreateConversation(ctx, conv); err != nil {
		return nil, models.NewInternalError(err)
	}
	conv.User1 = *actor
	conv.User2 = *target
	return conv, nil
}

// GetConversation returns the conversation; participants only.
func (s *MessagingService) GetConversation(ctx context.Context, id, actorID uint) (*models.Conversation, error) {
	return s.getConversationForActor(ctx, id, actorID, "get_conversation")
}

// UpdateConversationDescription overwrites the description; participants only.
func (s *MessagingService) UpdateConversationDescription(ctx context.Context, id, actorID uint, description string) (*models.Conversation, error) {
	conv, err := s.getConversationForActor(ctx, id, actorID, "update_conversation")
	if err != nil {
		return nil, err
	}
	conv.Description = description
	if err := s.chatRepo.UpdateConversation(ctx, conv); err != nil {
		return nil, models.NewInternalError(err)
	}
	return conv, nil
}

// DeleteConversation removes the conversation with its messages and their
// media; participants only.
func (s *MessagingService) DeleteConversation(ctx context.Context, id, actorID uint) error {
	if _, err := s.getConversationForActor(ctx, id, actorID, "delete_conversation"); err != nil {
		return err
	}
	if err := s.chatRepo.DeleteConversation(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SendMessage appends a message to the conversation.
func (s *MessagingService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	return s.sendMessage(ctx, in, nil)
}

// ReplyToMessage appends a message linked to an earlier message in the
// same conversation.
func (s *MessagingService) ReplyToMessage(ctx context.Context, in SendMessageInput, repliedToID uint) (*models.Message, error) {
	parent, err := s.chatRepo.GetMessageByID(ctx, repliedToID)
	if err != nil {
		return nil, mapStoreError(err, "Message", repliedToID)
	}
	if parent.ConversationID != in.ConversationID {
		return nil, models.NewValidationError("Replied-to message belongs to a different conversation")
	}
	return s.sendMessage(ctx, in, &repliedToID)
}

func (s *MessagingService) sendMessage(ctx context.Context, in SendMessageInput, repliedToID *uint) (*models.Message, error) {
	if in.ActorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if _, err := s.getConversationForActor(ctx, in.ConversationID, in.ActorID, "send_message"); err != nil {
		return nil, err
	}

	media, err := s.resolveMedia(ctx, in.MediaNames)
	if err != nil {
		return nil, err
	}
	if err := s.validateBody(in.Content, media); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.ActorID,
		Content:        in.Content,
		Media:          media,
		RepliedToID:    repliedToID,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.MessagesSent.Inc()
	return msg, nil
}

// GetMessage returns a single message; participants only.
func (s *MessagingService) GetMessage(ctx context.Context, id, actorID uint) (*models.Message, error) {
	msg, err := s.chatRepo.GetMessageByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Message", id)
	}
	if _, err := s.getConversationForActor(ctx, msg.ConversationID, actorID, "get_message"); err != nil {
		return nil, err
	}
	return msg, nil
}

// UpdateMessage rewrites a message's content (and media set when
// provided); participants only.
func (s *MessagingService) UpdateMessage(ctx context.Context, in UpdateMessageInput) (*models.Message, error) {
	msg, err := s.chatRepo.GetMessageByID(ctx, in.MessageID)
	if err != nil {
		return nil, mapStoreError(err, "Message", in.MessageID)
	}
	if _, err := s.getConversationForActor(ctx, msg.ConversationID, in.ActorID, "update_message"); err != nil {
		return nil, err
	}

	media := msg.Media
	if in.MediaNames != nil {
		media, err = s.resolveMedia(ctx, in.MediaNames)
		if err != nil {
			return nil, err
		}
	}
	if err := s.validateBody(in.Content, media); err != nil {
		return nil, err
	}

	msg.Content = in.Content
	if err := s.chatRepo.UpdateMessage(ctx, msg); err != nil {
		return nil, models.NewInternalError(err)
	}
	if in.MediaNames != nil {
		if err := s.chatRepo.ReplaceMessageMedia(ctx, msg.ID, media); err != nil {
			return nil, models.NewInternalError(err)
		}
		msg.Media = media
	}
	return msg, nil
}

// DeleteMessage removes a message and its media; participants only.
func (s *MessagingService) DeleteMessage(ctx context.Context, id, actorID uint) error {
	msg, err := s.chatRepo.GetMessageByID(ctx, id)
	if err != nil {
		return mapStoreError(err, "Message", id)
	}
	if _, err := s.getConversationForActor(ctx, msg.ConversationID, actorID, "delete_message"); err != nil {
		return err
	}
	if err := s.chatRepo.DeleteMessage(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// MarkMessageRead stamps ReadAt once; later calls are no-ops.
func (s *MessagingService) MarkMessageRead(ctx context.Context, id, actorID uint) (*models.Message, error) {
	msg, err := s.chatRepo.GetMessageByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "Message", id)
	}
	if _, err := s.getConversationForActor(ctx, msg.ConversationID, actorID, "mark_message_read"); err != nil {
		return nil, err
	}
	if msg.ReadAt != nil {
		return msg, nil
	}
	now := time.Now().UTC()
	msg.ReadAt = &now
	if err := s.chatRepo.UpdateMessage(ctx, msg); err != nil {
		return nil, models.NewInternalError(err)
	}
	return msg, nil
}

// ListMessagesInConversation returns the conversation's messages, oldest
// first; participants only.
func (s *MessagingService) ListMessagesInConversation(ctx context.Context, conversationID, actorID uint, limit, offset int) ([]*models.Message, error) {
	if _, err := s.getConversationForActor(ctx, conversationID, actorID, "list_messages"); err != nil {
		return nil, err
	}
	msgs, err := s.chatRepo.ListMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	return msgs, nil
}

// ListConversationsForUser returns the actor's conversations, newest
// first. An empty slice is a normal answer.
func (s *MessagingService) ListConversationsForUser(ctx context.Context, actorID uint) ([]*models.Conversation, error) {
	if actorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	var convs []*models.Conversation
	err := cache.CacheAside(ctx, cache.ConversationListKey(actorID), &convs, cache.ConversationTTL, func() error {
		observability.RecordCacheMiss("conversations")
		list, err := s.chatRepo.ListConversationsForUser(ctx, actorID)
		if err != nil {
			return err
		}
		convs = list
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if convs == nil {
		convs = []*models.Conversation{}
	}
	return convs, nil
}
