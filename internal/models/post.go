package models

import (
	"time"
)

// MaxContentLength bounds post and message text content.
const MaxContentLength = 5000

// Post represents a user post. A post must carry text content, media, or
// both; enforcing that is the service layer's job.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Content string `gorm:"type:text" json:"content"`
	// LikeCount is a persisted denormalized counter. It is updated in the
	// same transaction as the Like row it reflects; the Like rows remain
	// ground truth for reconciliation.
	LikeCount int     `gorm:"not null;default:0" json:"like_count"`
	Media     []Media `gorm:"foreignKey:PostID" json:"media,omitempty"`
	// RepliedToID links a reply to its parent post.
	RepliedToID *uint `gorm:"index" json:"replied_to_id,omitempty"`
	RepliedTo   *Post `gorm:"foreignKey:RepliedToID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasBody reports whether the post carries text content or media.
func (p *Post) HasBody() bool {
	return p.Content != "" || len(p.Media) > 0
}
