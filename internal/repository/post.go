package repository

import (
	"context"

	"murmur/internal/cache"
	"murmur/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post and like data operations.
// Delete is cascading: it removes the post's likes and media rows and
// detaches replies in one transaction. Like, Unlike, and ToggleLike keep
// the denormalized like_count in step with the Like rows by mutating both
// inside a single transaction.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
	ListReplies(ctx context.Context, postID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceMedia(ctx context.Context, postID uint, media []models.Media) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (bool, error)
	ReconcileLikeCounts(ctx context.Context) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// Media rows pre-exist; creating through the association would try to
	// upsert them. Insert the post bare, then claim the media rows.
	media := post.Media
	post.Media = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if len(media) > 0 {
			if err := tx.Model(&models.Media{}).
				Where("id IN ?", mediaIDs(media)).
				Update("post_id", post.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	post.Media = media
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.CacheAside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("User").
			Preload("Media").
			First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Media").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Media").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Media").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListReplies(ctx context.Context, postID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Media").
		Where("replied_to_id = ?", postID).
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Media", "User").Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) ReplaceMedia(ctx context.Context, postID uint, media []models.Media) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Media{}).
			Where("post_id = ?", postID).
			Update("post_id", nil).Error; err != nil {
			return err
		}
		if len(media) > 0 {
			if err := tx.Model(&models.Media{}).
				Where("id IN ?", mediaIDs(media)).
				Update("post_id", postID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		// Replies survive their parent; detach the back-reference.
		if err := tx.Model(&models.Post{}).
			Where("replied_to_id = ?", id).
			Update("replied_to_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Post{}).
				Where("id = ?", postID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
		}
		if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return false, err
	}
	cache.InvalidatePost(ctx, postID)
	return liked, nil
}

// ReconcileLikeCounts recounts like_count from the Like rows. The rows are
// ground truth; this repairs any drift left by crashed transactions.
func (r *postRepository) ReconcileLikeCounts(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE posts SET like_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)`,
	).Error
}

func mediaIDs(media []models.Media) []uint {
	ids := make([]uint, 0, len(media))
	for _, m := range media {
		ids = append(ids, m.ID)
	}
	return ids
}
