package service

import (
	"context"
	"time"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

// UserService manages profile reads and updates.
type UserService struct {
	userRepo  repository.UserRepository
	mediaRepo repository.MediaRepository
}

// UpdateProfileInput carries profile fields; nil pointers leave the field
// untouched. DateOfBirth uses the "2006-01-02" layout.
type UpdateProfileInput struct {
	Name             *string
	Surname          *string
	Bio              *string
	DateOfBirth      *string
	ProfileMediaName *string
	BannerMediaName  *string
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, mediaRepo repository.MediaRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
	}
}

// GetProfile returns the user by ID.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, "User", userID)
	}
	return user, nil
}

// GetByUsername returns the user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, mapStoreError(err, "User", username)
	}
	return user, nil
}

// UpdateProfile applies the provided fields to the actor's own profile.
// Media names must reference existing Media rows.
func (s *UserService) UpdateProfile(ctx context.Context, actorID uint, in UpdateProfileInput) (*models.User, error) {
	if actorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, mapStoreError(err, "User", actorID)
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Surname != nil {
		user.Surname = *in.Surname
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.DateOfBirth != nil {
		if *in.DateOfBirth == "" {
			user.DateOfBirth = nil
		} else {
			dob, err := time.Parse("2006-01-02", *in.DateOfBirth)
			if err != nil {
				return nil, models.NewValidationError("Date of birth must use the YYYY-MM-DD format")
			}
			user.DateOfBirth = &dob
		}
	}
	if in.ProfileMediaName != nil {
		name, err := s.resolveMediaName(ctx, *in.ProfileMediaName)
		if err != nil {
			return nil, err
		}
		user.ProfileMediaName = name
	}
	if in.BannerMediaName != nil {
		name, err := s.resolveMediaName(ctx, *in.BannerMediaName)
		if err != nil {
			return nil, err
		}
		user.BannerMediaName = name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// resolveMediaName checks the referenced media row exists. An empty name
// clears the field.
func (s *UserService) resolveMediaName(ctx context.Context, name string) (*string, error) {
	if name == "" {
		return nil, nil
	}
	if err := validation.ValidateMediaName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	media, err := s.mediaRepo.GetByName(ctx, name)
	if err != nil {
		return nil, mapStoreError(err, "Media", name)
	}
	return &media.Name, nil
}
