package server

import (
	"github.com/gofiber/fiber/v2"

	"murmur/internal/models"
)

// FollowUser handles POST /api/follows/:userId
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.graphService.Follow(c.UserContext(), actorID(c), targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnfollowUser handles DELETE /api/follows/:userId
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.graphService.Unfollow(c.UserContext(), actorID(c), targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	follows, err := s.graphService.ListFollowers(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(follows)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	follows, err := s.graphService.ListFollowing(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(follows)
}

// GetMutualStatus handles GET /api/follows/mutual/:userId
func (s *Server) GetMutualStatus(c *fiber.Ctx) error {
	otherID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	mutual, err := s.graphService.AreMutualFollowers(c.UserContext(), actorID(c), otherID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"mutual": mutual})
}
