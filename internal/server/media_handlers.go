package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"murmur/internal/models"
)

// GetMediaByName handles GET /api/media/:name. Media rows are created by
// the upload pipeline outside this API; this endpoint only exposes their
// metadata so clients can verify a name before attaching it.
func (s *Server) GetMediaByName(c *fiber.Ctx) error {
	name := c.Params("name")

	media, err := s.mediaRepo.GetByName(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Media", name))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(media)
}
