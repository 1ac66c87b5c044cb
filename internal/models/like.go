package models

import (
	"time"
)

// Like represents a user's like on a post.
// The combination of PostID and UserID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
