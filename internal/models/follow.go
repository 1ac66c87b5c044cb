package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow represents a directed follow edge from Source to Target.
type Follow struct {
	SourceID uint `gorm:"primaryKey;autoIncrement:false" json:"source_id"`
	TargetID uint `gorm:"primaryKey;autoIncrement:false" json:"target_id"`

	Source User `gorm:"foreignKey:SourceID" json:"source,omitempty"`
	Target User `gorm:"foreignKey:TargetID" json:"target,omitempty"`

	FollowedAt time.Time `gorm:"autoCreateTime" json:"followed_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

// BeforeCreate rejects self-follows at the storage layer. The policy layer
// enforces the same invariant; neither layer relies on the other alone.
func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.SourceID == f.TargetID {
		return NewValidationError("Users cannot follow themselves")
	}
	return nil
}
