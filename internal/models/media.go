package models

import (
	"time"
)

// MaxMediaNameLength bounds media names; names are unique across all media.
const MaxMediaNameLength = 50

// Media is a reference to an already-uploaded file. Rows are created by the
// upload path outside this core; services only resolve them by name and
// link them to a post or a message (never both).
type Media struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;size:50;not null" json:"name"`
	MimeType string `gorm:"not null" json:"mime_type"`

	PostID    *uint `gorm:"index" json:"post_id,omitempty"`
	MessageID *uint `gorm:"index" json:"message_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name; the default pluralizer mangles "media".
func (Media) TableName() string {
	return "media"
}
