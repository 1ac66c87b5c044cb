package models

import (
	"time"
)

// Message is a single message inside a conversation.
type Message struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ConversationID uint          `gorm:"not null;index" json:"conversation_id"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	SenderID       uint          `gorm:"not null;index" json:"sender_id"`
	Sender         *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content        string        `gorm:"type:text" json:"content"`
	Media          []Media       `gorm:"foreignKey:MessageID" json:"media,omitempty"`
	// RepliedToID links a reply to an earlier message in the same conversation.
	RepliedToID *uint `gorm:"index" json:"replied_to_id,omitempty"`

	SentAt    time.Time  `gorm:"autoCreateTime" json:"sent_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HasBody reports whether the message carries text content or media.
func (m *Message) HasBody() bool {
	return m.Content != "" || len(m.Media) > 0
}
