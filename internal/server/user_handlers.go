package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
	"murmur/internal/service"
)

// UpdateProfileRequest carries profile fields; omitted fields stay as
// they are, empty strings clear the optional ones.
type UpdateProfileRequest struct {
	Name             *string `json:"name"`
	Surname          *string `json:"surname"`
	Bio              *string `json:"bio"`
	DateOfBirth      *string `json:"date_of_birth"`
	ProfileMediaName *string `json:"profile_media_name"`
	BannerMediaName  *string `json:"banner_media_name"`
}

// GetMyProfile handles GET /api/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), actorID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), actorID(c), service.UpdateProfileInput{
		Name:             req.Name,
		Surname:          req.Surname,
		Bio:              req.Bio,
		DateOfBirth:      req.DateOfBirth,
		ProfileMediaName: req.ProfileMediaName,
		BannerMediaName:  req.BannerMediaName,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserByUsername handles GET /api/users/by-username/:username
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userService.GetByUsername(c.UserContext(), username)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}
