// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"murmur/internal/cache"
	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/middleware"
	"murmur/internal/repository"
	"murmur/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	mediaRepo  repository.MediaRepository
	chatRepo   repository.ChatRepository

	graphService     *service.GraphService
	feedService      *service.FeedService
	messagingService *service.MessagingService
	userService      *service.UserService
}

// NewServer creates a new server instance, establishing the database and
// Redis connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	chatRepo := repository.NewChatRepository(db)

	prom := middleware.InitMetrics("murmur-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
		mediaRepo:      mediaRepo,
		chatRepo:       chatRepo,
	}
	server.graphService = service.NewGraphService(followRepo, userRepo)
	server.feedService = service.NewFeedService(postRepo, userRepo, mediaRepo, followRepo)
	server.messagingService = service.NewMessagingService(chatRepo, userRepo, mediaRepo)
	server.userService = service.NewUserService(userRepo, mediaRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing spans (before the context middleware so the
	// trace ID is available to it)
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on
	// error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public post routes (browse)
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	publicPosts.Get("/:id/replies", s.GetReplies)
	publicPosts.Get("/:id", s.GetPost)

	// Public user lookups
	api.Get("/users/by-username/:username", s.GetUserByUsername)
	api.Get("/users/:id/posts", s.GetUserPosts)
	api.Get("/users/:id/followers", s.GetFollowers)
	api.Get("/users/:id/following", s.GetFollowing)
	api.Get("/users/:id", s.GetUserProfile)

	// Media metadata lookup (upload lives outside this API)
	api.Get("/media/:name", s.GetMediaByName)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Profile routes
	me := protected.Group("/me")
	me.Get("/", s.GetMyProfile)
	me.Put("/", s.UpdateMyProfile)
	me.Get("/feed", s.GetFeed)

	// Follow routes
	follows := protected.Group("/follows")
	follows.Get("/mutual/:userId", s.GetMutualStatus)
	follows.Post("/:userId", s.FollowUser)
	follows.Delete("/:userId", s.UnfollowUser)

	// Protected post routes
	posts := protected.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/replies", s.CreateReply)
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Post("/:id/toggle-like", s.ToggleLike)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Conversation routes
	conversations := protected.Group("/conversations")
	conversations.Post("/", s.CreateConversation)
	conversations.Get("/", s.GetConversations)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	conversations.Get("/:id/messages", s.GetMessages)
	conversations.Post("/:id/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_message"), s.SendMessage)
	conversations.Put("/:id/description", s.UpdateConversationDescription)
	conversations.Delete("/:id", s.DeleteConversation)
	conversations.Get("/:id", s.GetConversation)

	// Message routes
	messages := protected.Group("/messages")
	messages.Post("/:id/replies", s.ReplyToMessage)
	messages.Post("/:id/read", s.MarkMessageRead)
	messages.Put("/:id", s.UpdateMessage)
	messages.Delete("/:id", s.DeleteMessage)
	messages.Get("/:id", s.GetMessage)
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return middleware.AuthRequired
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The cache is optional; absent Redis degrades but does not fail
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds (once) and returns the configured Fiber application.
func (s *Server) App() *fiber.App {
	if s.app == nil {
		s.app = fiber.New(fiber.Config{
			AppName: "murmur",
		})
		s.SetupMiddleware(s.app)
		s.SetupRoutes(s.app)
	}
	return s.app
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	return s.App().Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	return s.app.ShutdownWithContext(ctx)
}
