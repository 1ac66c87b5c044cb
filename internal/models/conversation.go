package models

import (
	"time"
)

// Conversation is a two-party direct-message thread. It owns its messages:
// deleting a conversation removes them and their media.
type Conversation struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	User1ID uint `gorm:"not null;index" json:"user1_id"`
	User2ID uint `gorm:"not null;index" json:"user2_id"`

	User1 User `gorm:"foreignKey:User1ID" json:"user1"`
	User2 User `gorm:"foreignKey:User2ID" json:"user2"`

	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}
