package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/policy"
	"murmur/internal/repository"
)

// GraphService manages the directed follow graph.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewGraphService creates a new graph service
func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow inserts a follow edge from actor to target. Not idempotent: a
// second identical follow is a CONFLICT.
func (s *GraphService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return mapStoreError(err, "User", targetID)
	}

	already, err := s.followRepo.Exists(ctx, actorID, targetID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := policy.CheckFollow(actorID, targetID, already); err != nil {
		return err
	}

	if err := s.followRepo.Create(ctx, &models.Follow{SourceID: actorID, TargetID: targetID}); err != nil {
		return mapStoreError(err, "Follow relationship", targetID)
	}
	return nil
}

// Unfollow removes the edge; NOT_FOUND when it was never there.
func (s *GraphService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if actorID == 0 {
		return models.NewUnauthorizedError("Authentication required")
	}
	if err := s.followRepo.Delete(ctx, actorID, targetID); err != nil {
		return mapStoreError(err, "Follow relationship", targetID)
	}
	return nil
}

// ListFollowers returns who follows userID, oldest edge first. An empty
// slice is a normal answer, not an error.
func (s *GraphService) ListFollowers(ctx context.Context, userID uint) ([]*models.Follow, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, mapStoreError(err, "User", userID)
	}
	follows, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if follows == nil {
		follows = []*models.Follow{}
	}
	return follows, nil
}

// ListFollowing returns who userID follows, oldest edge first.
func (s *GraphService) ListFollowing(ctx context.Context, userID uint) ([]*models.Follow, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, mapStoreError(err, "User", userID)
	}
	follows, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if follows == nil {
		follows = []*models.Follow{}
	}
	return follows, nil
}

// AreMutualFollowers reports whether a follows b and b follows a.
func (s *GraphService) AreMutualFollowers(ctx context.Context, a, b uint) (bool, error) {
	aToB, err := s.followRepo.Exists(ctx, a, b)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if !aToB {
		return false, nil
	}
	bToA, err := s.followRepo.Exists(ctx, b, a)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return bToA, nil
}
