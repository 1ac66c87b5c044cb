package repository

import (
	"context"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// MediaRepository resolves pre-uploaded media rows by their unique names.
// Rows are created by the upload path outside this core.
type MediaRepository interface {
	GetByName(ctx context.Context, name string) (*models.Media, error)
	GetByNames(ctx context.Context, names []string) ([]models.Media, error)
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) GetByName(ctx context.Context, name string) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) GetByNames(ctx context.Context, names []string) ([]models.Media, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var media []models.Media
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&media).Error
	return media, err
}
