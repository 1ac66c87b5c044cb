// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Authentication itself (token
// issuance, password reset) lives at the HTTP boundary; services only
// resolve users by ID or username.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Bio      string `gorm:"type:text" json:"bio"`
	// DateOfBirth is optional and stored at day precision.
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Banned      bool       `gorm:"default:false" json:"banned"`
	// ProfileMediaName and BannerMediaName reference Media rows by their
	// unique name. The rows must pre-exist; profile updates only link them.
	ProfileMediaName *string `gorm:"size:50" json:"profile_media_name,omitempty"`
	BannerMediaName  *string `gorm:"size:50" json:"banner_media_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
