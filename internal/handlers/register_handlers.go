package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/inkpad-app/inkpad-backend/cmd/docs"
	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	blobs storage.BlobStore,
) {
	// Health lives with the monitoring routes
	registerMonitoringRoutes(r, services)

	registerAuthRoutes(r, cfg, services)
	registerUserRoutes(r, services)
	registerStoryRoutes(r, services, blobs)
	registerVideoRoutes(r, services, blobs)
	registerShotRoutes(r, services, blobs)
	registerChapterRoutes(r, services)
	registerCommentRoutes(r, services)
	registerUploadRoutes(r, cfg, services, blobs)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
