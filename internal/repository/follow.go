package repository

import (
	"context"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, sourceID, targetID uint) error
	Exists(ctx context.Context, sourceID, targetID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint) ([]*models.Follow, error)
	ListFollowing(ctx context.Context, userID uint) ([]*models.Follow, error)
	ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

// Delete returns gorm.ErrRecordNotFound when the edge does not exist.
func (r *followRepository) Delete(ctx context.Context, sourceID, targetID uint) error {
	res := r.db.WithContext(ctx).
		Where("source_id = ? AND target_id = ?", sourceID, targetID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, sourceID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("source_id = ? AND target_id = ?", sourceID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := r.db.WithContext(ctx).
		Preload("Source").
		Where("target_id = ?", userID).
		Order("followed_at ASC").
		Find(&follows).Error
	return follows, err
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := r.db.WithContext(ctx).
		Preload("Target").
		Where("source_id = ?", userID).
		Order("followed_at ASC").
		Find(&follows).Error
	return follows, err
}

func (r *followRepository) ListFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("source_id = ?", userID).
		Order("followed_at ASC").
		Pluck("target_id", &ids).Error
	return ids, err
}
