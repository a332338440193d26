package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	_ "github.com/inkpad-app/inkpad-backend/cmd/docs"
	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/core/services"
	"github.com/inkpad-app/inkpad-backend/internal/handlers"
	"github.com/inkpad-app/inkpad-backend/internal/metrics"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
	"github.com/inkpad-app/inkpad-backend/internal/repositories/database/mongodb"
)

// @title Inkpad Backend API
// @version 1.0
// @description Content publishing backend with stories, videos, shots, comments and moderation.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	client, db, err := mongodb.Connect(cfg)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := client.Disconnect(context.Background()); cerr != nil {
			logger.Error("Error disconnecting MongoDB client", slog.String("error", cerr.Error()))
		}
	}()
	logger.Info("MongoDB connection established.")

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		logger.Error("Failed to ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize blob storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := mongodb.NewRepositoryProvider(db)
	collector := metrics.NewCollector()

	authService := services.NewAuthService(repos.UserRepo, repos.RefreshTokenRepo, cfg)
	serviceContainer := &portssvc.ServiceContainer{
		Auth:    authService,
		OTP:     services.NewOTPService(repos.OTPRepo, repos.UserRepo, authService),
		User:    services.NewUserService(repos.UserRepo, repos.StoryRepo, repos.VideoRepo, repos.ShotRepo, repos.CommentRepo, cfg),
		Story:   services.NewStoryService(repos.StoryRepo, repos.ChapterRepo, repos.CommentRepo, repos.UserRepo),
		Video:   services.NewVideoService(repos.VideoRepo, repos.CommentRepo, repos.UserRepo),
		Shot:    services.NewShotService(repos.ShotRepo, repos.UserRepo, cfg),
		Chapter: services.NewChapterService(repos.ChapterRepo, repos.StoryRepo, repos.CommentRepo),
		Comment: services.NewCommentService(repos.CommentRepo, repos.StoryRepo, repos.VideoRepo, repos.ChapterRepo),
		Monitoring: services.NewMonitoringService(collector, repos.UserRepo, func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}, blobs),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(collector),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Local blob storage is served statically; S3 keys resolve to presigned URLs.
	if !cfg.UseS3 {
		r.Static("/uploads", cfg.UploadDir)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, blobs)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.UseS3 {
		return storage.NewS3Store(cfg)
	}
	return storage.NewLocalStore(cfg.UploadDir)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.IsProduction {
		corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}
