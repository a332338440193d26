package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

// UploadHandler accepts media files and hands them to the blob store. The
// returned key is what content create requests reference; the returned URL is
// immediately fetchable.
type UploadHandler struct {
	blobs storage.BlobStore
	cfg   *config.Config
}

func NewUploadHandler(blobs storage.BlobStore, cfg *config.Config) *UploadHandler {
	return &UploadHandler{blobs: blobs, cfg: cfg}
}

func registerUploadRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, blobs storage.BlobStore) {
	h := NewUploadHandler(blobs, cfg)

	authed := r.Group("/api/v1/uploads", middleware.AuthMiddleware(services.Auth))
	{
		authed.POST("/image", h.UploadImage)
		authed.POST("/video", h.UploadVideo)
	}
}

// UploadImage godoc
// @Summary Upload image
// @Description Stores an image file and returns its key and URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Router /uploads/image [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.upload(c, h.cfg.AllowedExtensions, h.cfg.MaxFileSize, "images")
}

// UploadVideo godoc
// @Summary Upload video
// @Description Stores a video file and returns its key and URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Video file"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Router /uploads/video [post]
func (h *UploadHandler) UploadVideo(c *gin.Context) {
	h.upload(c, h.cfg.AllowedVideoExtensions, h.cfg.MaxVideoSize, "videos")
}

func (h *UploadHandler) upload(c *gin.Context, allowed []string, maxSize int64, folder string) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing file field"})
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !extensionAllowed(ext, allowed) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: fmt.Sprintf("File type .%s not allowed (allowed: %s)", ext, strings.Join(allowed, ", ")),
		})
		return
	}
	if header.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error: fmt.Sprintf("File exceeds the %d byte limit", maxSize),
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if int64(len(content)) > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error: fmt.Sprintf("File exceeds the %d byte limit", maxSize),
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	key, err := h.blobs.Put(c.Request.Context(), content, header.Filename, contentType, folder)
	if err != nil {
		respondError(c, err)
		return
	}
	url, err := h.blobs.ResolveURL(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{Key: key, URL: url})
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
