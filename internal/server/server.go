// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/upload"
	"inkwell/internal/webhook"

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
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	postService    *service.PostService
	commentService *service.CommentService
	userService    *service.UserService
	webhookService *service.WebhookService
	verifier       *webhook.Verifier
	uploadSigner   *upload.Signer
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and any bootstrap layer that establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	prom := middleware.InitMetrics("inkwell-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
	server.postService = service.NewPostService(postRepo, userRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.userService = service.NewUserService(userRepo)
	server.webhookService = service.NewWebhookService(userRepo, postRepo, commentRepo)
	server.uploadSigner = upload.NewSigner(cfg.IKURLEndpoint, cfg.IKPublicKey, cfg.IKPrivateKey)

	if cfg.WebhookSecret != "" {
		verifier, err := webhook.NewVerifier(cfg.WebhookSecret)
		if err != nil {
			return nil, fmt.Errorf("webhook secret: %w", err)
		}
		server.verifier = verifier
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and subject
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Identity attachment is non-enforcing; AuthRequired stacks on routes
	// that need a caller.
	app.Use(middleware.AttachIdentity(s.config.SessionJWTSecret))

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
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
	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Identity-provider webhooks. Signature verification happens over the
	// raw body inside the handler, not via session middleware.
	webhooks := app.Group("/webhooks")
	webhooks.Post("/clerk", s.HandleClerkWebhook)

	posts := app.Group("/posts")
	posts.Get("/", s.GetPosts)
	// Fixed segments before the /:slug wildcard.
	posts.Get("/upload-auth", s.GetUploadAuth)
	posts.Patch("/feature", middleware.AuthRequired(), middleware.AdminRequired(), s.FeaturePost)
	posts.Post("/", middleware.AuthRequired(), middleware.RateLimit(
		s.redis, 5, time.Minute, "create_post"), s.CreatePost)
	posts.Delete("/:id", middleware.AuthRequired(), s.DeletePost)
	posts.Get("/:slug", s.GetPost)

	comments := app.Group("/comments")
	comments.Get("/:postId", s.GetComments)
	comments.Post("/:postId", middleware.AuthRequired(), middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	comments.Delete("/:id", middleware.AuthRequired(), s.DeleteComment)

	users := app.Group("/users", middleware.AuthRequired())
	users.Get("/saved", s.GetSavedPosts)
	users.Patch("/save", s.ToggleSavedPost)
}

// HealthCheck reports database and redis connectivity.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
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
		// The API degrades without Redis (no cache, fail-open limits) but
		// stays up, so a missing client does not flip overall health.
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

// fallbackErrorHandler formats any error that escapes a handler as a
// message/status/stack JSON body. The stack trace goes out to the client.
func fallbackErrorHandler(c *fiber.Ctx, err error) error {
	status := models.StatusOf(err)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
		"status":  status,
		"stack":   string(debug.Stack()),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:      "Inkwell API",
		ErrorHandler: fallbackErrorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	slog.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", "error", rerr)
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
