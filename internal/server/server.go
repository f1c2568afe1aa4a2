// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/github"
	"devconnector/internal/middleware"
	"devconnector/internal/repository"
	"devconnector/internal/service"
	"devconnector/internal/token"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *mongo.Database
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	codec          *token.Codec

	userService    *service.UserService
	profileService *service.ProfileService
	postService    *service.PostService
	githubClient   *github.Client
}

// NewServer creates a server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server from already-initialized dependencies.
// Used by tests and by any bootstrap layer that establishes Mongo/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	codec := token.NewCodec(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("devconnector-api"),
		codec:          codec,
		userService:    service.NewUserService(userRepo, codec),
		profileService: service.NewProfileService(profileRepo, userRepo, postRepo),
		postService:    service.NewPostService(postRepo, userRepo),
		githubClient:   github.NewClient(cfg.GithubAPIBaseURL, cfg.GithubClientID, cfg.GithubClientSecret),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.TokenHeader,
		MaxAge:       86400,
	}))

	// Global rate limit, 100 requests per minute per IP.
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
				"msg": "too many requests, please try again later",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API running")
	})
	gate := middleware.AuthRequired(s.codec)

	// Identity and session
	api.Post("/users", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	api.Post("/auth", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Get("/auth", gate, s.GetCurrentUser)

	// Profiles
	profile := api.Group("/profile")
	profile.Get("/me", gate, s.GetCurrentProfile)
	profile.Post("/", gate, s.UpsertProfile)
	profile.Delete("/", gate, s.DeleteAccount)
	profile.Put("/experience", gate, s.AddExperience)
	profile.Delete("/experience/:id", gate, s.DeleteExperience)
	profile.Put("/education", gate, s.AddEducation)
	profile.Delete("/education/:id", gate, s.DeleteEducation)
	// Specific public routes before the generic /user/:id route.
	profile.Get("/github/:username", s.GetGithubRepos)
	profile.Get("/user/:id", s.GetProfileByUserID)
	profile.Get("/", s.ListProfiles)

	// Posts
	posts := api.Group("/posts", gate)
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Put("/like/:id", s.LikePost)
	posts.Put("/unlike/:id", s.UnlikePost)
	posts.Post("/comment/:id", s.AddComment)
	posts.Delete("/comment/:id/:commentId", s.DeleteComment)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports dependency health. Redis is optional, so an absent
// client degrades readiness detail without failing the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unhealthy"
	} else if err := s.db.Client().Ping(ctx, nil); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start runs the HTTP server until Shutdown or a listener error.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "DevConnector API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return respondAppError(c, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if err := database.Disconnect(ctx, s.db); err != nil {
		middleware.Logger.Error("error closing mongo connection", "error", err)
	}

	if err := cache.Close(); err != nil {
		middleware.Logger.Error("error closing redis", "error", err)
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
