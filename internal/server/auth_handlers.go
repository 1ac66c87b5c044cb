package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new account and returns a signed token.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validation.ValidateUsername(req.Username); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.UserContext()

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An account with this email already exists",
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.Logger.ErrorContext(ctx, "Signup email lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This username is already taken",
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.Logger.ErrorContext(ctx, "Signup username lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Password hashing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		middleware.Logger.ErrorContext(ctx, "User creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	token, err := s.generateToken(user)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Token generation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	middleware.Logger.InfoContext(ctx, "Account created", "username", user.Username)
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{Token: token, User: user})
}

// Login verifies credentials and returns a signed token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx := c.UserContext()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same response for unknown email and bad password
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if user.Banned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "This account has been suspended",
		})
	}

	token, err := s.generateToken(user)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Token generation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	middleware.Logger.InfoContext(ctx, "User logged in", "username", user.Username)
	return c.JSON(AuthResponse{Token: token, User: user})
}

func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"iss":      "murmur-api",
		"aud":      "murmur",
		"exp":      now.Add(7 * 24 * time.Hour).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func generateJTI() string {
	return uuid.NewString()[:8]
}
