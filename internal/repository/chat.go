package repository

import (
	"context"

	"murmur/internal/cache"
	"murmur/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for conversation and message data
// operations. DeleteConversation is cascading: messages and their media
// rows go with it in one transaction.
type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversationByID(ctx context.Context, id uint) (*models.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID uint) ([]*models.Conversation, error)
	UpdateConversation(ctx context.Context, conv *models.Conversation) error
	DeleteConversation(ctx context.Context, id uint) error

	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]*models.Message, error)
	UpdateMessage(ctx context.Context, msg *models.Message) error
	ReplaceMessageMedia(ctx context.Context, messageID uint, media []models.Media) error
	DeleteMessage(ctx context.Context, id uint) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	if err := r.db.WithContext(ctx).Omit("User1", "User2", "Messages").Create(conv).Error; err != nil {
		return err
	}
	cache.InvalidateConversationList(ctx, conv.User1ID)
	cache.InvalidateConversationList(ctx, conv.User2ID)
	return nil
}

func (r *chatRepository) GetConversationByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := cache.CacheAside(ctx, cache.ConversationKey(id), &conv, cache.ConversationTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("User1").
			Preload("User2").
			First(&conv, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepository) ListConversationsForUser(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	err := r.db.WithContext(ctx).
		Preload("User1").
		Preload("User2").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *chatRepository) UpdateConversation(ctx context.Context, conv *models.Conversation) error {
	if err := r.db.WithContext(ctx).Omit("User1", "User2", "Messages").Save(conv).Error; err != nil {
		return err
	}
	cache.InvalidateConversation(ctx, conv.ID)
	cache.InvalidateConversationList(ctx, conv.User1ID)
	cache.InvalidateConversationList(ctx, conv.User2ID)
	return nil
}

func (r *chatRepository) DeleteConversation(ctx context.Context, id uint) error {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var messageIDs []uint
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ?", id).
			Pluck("id", &messageIDs).Error; err != nil {
			return err
		}
		if len(messageIDs) > 0 {
			if err := tx.Where("message_id IN ?", messageIDs).Delete(&models.Media{}).Error; err != nil {
				return err
			}
			if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Conversation{}, id).Error
	})
	if err != nil {
		return err
	}

	cache.InvalidateConversation(ctx, id)
	cache.InvalidateConversationList(ctx, conv.User1ID)
	cache.InvalidateConversationList(ctx, conv.User2ID)
	return nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	// Media rows pre-exist; claim them after the insert (same discipline
	// as postRepository.Create).
	media := msg.Media
	msg.Media = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sender", "Conversation").Create(msg).Error; err != nil {
			return err
		}
		if len(media) > 0 {
			if err := tx.Model(&models.Media{}).
				Where("id IN ?", mediaIDs(media)).
				Update("message_id", msg.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	msg.Media = media
	return nil
}

func (r *chatRepository) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Media").
		First(&msg, id).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID uint, limit, offset int) ([]*models.Message, error) {
	var msgs []*models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Media").
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

func (r *chatRepository) UpdateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Omit("Sender", "Conversation", "Media").Save(msg).Error
}

func (r *chatRepository) ReplaceMessageMedia(ctx context.Context, messageID uint, media []models.Media) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Media{}).
			Where("message_id = ?", messageID).
			Update("message_id", nil).Error; err != nil {
			return err
		}
		if len(media) > 0 {
			if err := tx.Model(&models.Media{}).
				Where("id IN ?", mediaIDs(media)).
				Update("message_id", messageID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *chatRepository) DeleteMessage(ctx context.Context, id uint) error {
	var msg models.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
}
