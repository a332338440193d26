package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

// ShotHandler handles image shot CRUD, moderation and engagement requests.
type ShotHandler struct {
	shotService portssvc.ShotSvcFacade
	media       mediaResolver
}

func NewShotHandler(shotService portssvc.ShotSvcFacade, blobs storage.BlobStore) *ShotHandler {
	return &ShotHandler{shotService: shotService, media: mediaResolver{blobs: blobs}}
}

func registerShotRoutes(r *gin.Engine, services *portssvc.ServiceContainer, blobs storage.BlobStore) {
	h := NewShotHandler(services.Shot, blobs)

	public := r.Group("/api/v1/shots", middleware.OptionalAuthMiddleware(services.Auth))
	{
		public.GET("", h.ListFeed)
		public.GET("/:id", h.Get)
		public.GET("/:id/share", h.ShareLink)
	}

	authed := r.Group("/api/v1/shots", middleware.AuthMiddleware(services.Auth))
	{
		authed.POST("", h.Create)
		authed.GET("/my", h.ListMine)
		authed.PUT("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
		authed.POST("/:id/submit", h.Submit)
		authed.POST("/:id/like", h.ToggleLike)
	}

	admin := r.Group("/api/v1/shots", middleware.AuthMiddleware(services.Auth), middleware.RequireAdmin())
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("/:id/moderate", h.Moderate)
	}
}

// ListFeed godoc
// @Summary Shot feed
// @Description Lists approved shots with optional search and sorting.
// @Tags shots
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search in caption and tags"
// @Param sort query string false "latest or popular" default(latest)
// @Success 200 {object} dto.ShotListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /shots [get]
func (h *ShotHandler) ListFeed(c *gin.Context) {
	var params dto.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.shotService.ListFeed(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.shots(c.Request.Context(), resp.Shots)
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get shot
// @Tags shots
// @Produce json
// @Param id path string true "Shot ID"
// @Success 200 {object} domain.Shot
// @Failure 404 {object} dto.ErrorResponse
// @Router /shots/{id} [get]
func (h *ShotHandler) Get(c *gin.Context) {
	shot, err := h.shotService.GetShot(c.Request.Context(), c.Param("id"), optionalUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.shot(c.Request.Context(), shot)
	c.JSON(http.StatusOK, shot)
}

// ShareLink godoc
// @Summary Shot share link
// @Description Returns the shot's public frontend URL.
// @Tags shots
// @Produce json
// @Param id path string true "Shot ID"
// @Success 200 {object} dto.ShareLinkResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /shots/{id}/share [get]
func (h *ShotHandler) ShareLink(c *gin.Context) {
	resp, err := h.shotService.GetShareLink(c.Request.Context(), c.Param("id"), optionalUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create shot
// @Description Records an image post against an uploaded file, in draft status.
// @Tags shots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shot body dto.CreateShotRequest true "Shot"
// @Success 201 {object} domain.Shot
// @Failure 400 {object} dto.ErrorResponse
// @Router /shots [post]
func (h *ShotHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateShotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shot, err := h.shotService.CreateShot(c.Request.Context(), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shot)
}

// Update godoc
// @Summary Update shot
// @Description Patches shot fields. Author only.
// @Tags shots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shot ID"
// @Param shot body dto.UpdateShotRequest true "Fields to update"
// @Success 200 {object} domain.Shot
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /shots/{id} [put]
func (h *ShotHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateShotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shot, err := h.shotService.UpdateShot(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shot)
}

// Delete godoc
// @Summary Delete shot
// @Tags shots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shot ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /shots/{id} [delete]
func (h *ShotHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.shotService.DeleteShot(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Shot deleted"})
}

// Submit godoc
// @Summary Submit shot for review
// @Tags shots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shot ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /shots/{id}/submit [post]
func (h *ShotHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.shotService.Submit(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Submitted for review"})
}

// Moderate godoc
// @Summary Moderate shot
// @Description Approves or rejects a pending shot. Admin only.
// @Tags shots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shot ID"
// @Param decision body dto.ModerationRequest true "Decision"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /shots/{id}/moderate [post]
func (h *ShotHandler) Moderate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.shotService.Moderate(c.Request.Context(), c.Param("id"), req, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Moderation applied"})
}

// ToggleLike godoc
// @Summary Toggle shot like
// @Tags shots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shot ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /shots/{id}/like [post]
func (h *ShotHandler) ToggleLike(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.shotService.ToggleLike(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine godoc
// @Summary My shots
// @Tags shots
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.ShotListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /shots/my [get]
func (h *ShotHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.PaginationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.shotService.ListMine(c.Request.Context(), user, params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.shots(c.Request.Context(), resp.Shots)
	c.JSON(http.StatusOK, resp)
}

// ListPending godoc
// @Summary Pending shots
// @Description Lists shots awaiting review. Admin only.
// @Tags shots
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.ShotListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /shots/pending [get]
func (h *ShotHandler) ListPending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.PaginationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.shotService.ListPending(c.Request.Context(), user, params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.shots(c.Request.Context(), resp.Shots)
	c.JSON(http.StatusOK, resp)
}
