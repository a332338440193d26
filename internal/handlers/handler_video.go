package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

// VideoHandler handles video CRUD, moderation and engagement requests.
type VideoHandler struct {
	videoService portssvc.VideoSvcFacade
	media        mediaResolver
}

func NewVideoHandler(videoService portssvc.VideoSvcFacade, blobs storage.BlobStore) *VideoHandler {
	return &VideoHandler{videoService: videoService, media: mediaResolver{blobs: blobs}}
}

func registerVideoRoutes(r *gin.Engine, services *portssvc.ServiceContainer, blobs storage.BlobStore) {
	h := NewVideoHandler(services.Video, blobs)

	public := r.Group("/api/v1/videos", middleware.OptionalAuthMiddleware(services.Auth))
	{
		public.GET("", h.ListFeed)
		public.GET("/:id", h.Get)
	}

	authed := r.Group("/api/v1/videos", middleware.AuthMiddleware(services.Auth))
	{
		authed.POST("", h.Create)
		authed.GET("/my", h.ListMine)
		authed.PUT("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
		authed.POST("/:id/submit", h.Submit)
		authed.POST("/:id/like", h.ToggleLike)
	}

	admin := r.Group("/api/v1/videos", middleware.AuthMiddleware(services.Auth), middleware.RequireAdmin())
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("/:id/moderate", h.Moderate)
	}
}

// ListFeed godoc
// @Summary Video feed
// @Description Lists approved videos with optional search and sorting.
// @Tags videos
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search in caption and tags"
// @Param sort query string false "latest or popular" default(latest)
// @Success 200 {object} dto.VideoListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /videos [get]
func (h *VideoHandler) ListFeed(c *gin.Context) {
	var params dto.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.videoService.ListFeed(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.videos(c.Request.Context(), resp.Videos)
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get video
// @Description Returns one video and counts a view on approved ones.
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} domain.Video
// @Failure 404 {object} dto.ErrorResponse
// @Router /videos/{id} [get]
func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.videoService.GetVideo(c.Request.Context(), c.Param("id"), optionalUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.video(c.Request.Context(), video)
	c.JSON(http.StatusOK, video)
}

// Create godoc
// @Summary Create video
// @Description Records a video post against an uploaded file, in draft status.
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param video body dto.CreateVideoRequest true "Video"
// @Success 201 {object} domain.Video
// @Failure 400 {object} dto.ErrorResponse
// @Router /videos [post]
func (h *VideoHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	video, err := h.videoService.CreateVideo(c.Request.Context(), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

// Update godoc
// @Summary Update video
// @Description Patches video fields. Author only.
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param video body dto.UpdateVideoRequest true "Fields to update"
// @Success 200 {object} domain.Video
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /videos/{id} [put]
func (h *VideoHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Delete godoc
// @Summary Delete video
// @Description Deletes a video and its comments.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.videoService.DeleteVideo(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Video deleted"})
}

// Submit godoc
// @Summary Submit video for review
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /videos/{id}/submit [post]
func (h *VideoHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.videoService.Submit(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Submitted for review"})
}

// Moderate godoc
// @Summary Moderate video
// @Description Approves or rejects a pending video. Admin only.
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param decision body dto.ModerationRequest true "Decision"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /videos/{id}/moderate [post]
func (h *VideoHandler) Moderate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.videoService.Moderate(c.Request.Context(), c.Param("id"), req, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Moderation applied"})
}

// ToggleLike godoc
// @Summary Toggle video like
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /videos/{id}/like [post]
func (h *VideoHandler) ToggleLike(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.videoService.ToggleLike(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine godoc
// @Summary My videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.VideoListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /videos/my [get]
func (h *VideoHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.PaginationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.videoService.ListMine(c.Request.Context(), user, params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.videos(c.Request.Context(), resp.Videos)
	c.JSON(http.StatusOK, resp)
}

// ListPending godoc
// @Summary Pending videos
// @Description Lists videos awaiting review. Admin only.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.VideoListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /videos/pending [get]
func (h *VideoHandler) ListPending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.PaginationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.videoService.ListPending(c.Request.Context(), user, params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.videos(c.Request.Context(), resp.Videos)
	c.JSON(http.StatusOK, resp)
}
