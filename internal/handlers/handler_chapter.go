package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
)

// ChapterHandler handles chapter requests. Chapter creation and listing live
// under the story routes; everything addressed by chapter ID lives here.
type ChapterHandler struct {
	chapterService portssvc.ChapterSvcFacade
}

func NewChapterHandler(chapterService portssvc.ChapterSvcFacade) *ChapterHandler {
	return &ChapterHandler{chapterService: chapterService}
}

func registerChapterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewChapterHandler(services.Chapter)

	public := r.Group("/api/v1/chapters", middleware.OptionalAuthMiddleware(services.Auth))
	{
		public.GET("/:id", h.Get)
	}

	authed := r.Group("/api/v1/chapters", middleware.AuthMiddleware(services.Auth))
	{
		authed.PUT("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
		authed.POST("/:id/publish", h.SetPublished)
	}
}

// Get godoc
// @Summary Get chapter
// @Description Returns one chapter. Unpublished chapters and chapters of hidden stories are only visible to the author or an admin.
// @Tags chapters
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} domain.Chapter
// @Failure 404 {object} dto.ErrorResponse
// @Router /chapters/{id} [get]
func (h *ChapterHandler) Get(c *gin.Context) {
	chapter, err := h.chapterService.GetChapter(c.Request.Context(), c.Param("id"), optionalUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// Update godoc
// @Summary Update chapter
// @Description Patches chapter fields. Moving to a taken chapter number fails with a conflict.
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Param chapter body dto.UpdateChapterRequest true "Fields to update"
// @Success 200 {object} domain.Chapter
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /chapters/{id} [put]
func (h *ChapterHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	chapter, err := h.chapterService.UpdateChapter(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// SetPublished godoc
// @Summary Publish or unpublish chapter
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Param publish body dto.PublishChapterRequest true "Published flag"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /chapters/{id}/publish [post]
func (h *ChapterHandler) SetPublished(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.PublishChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.chapterService.SetPublished(c.Request.Context(), c.Param("id"), *req.Published, user); err != nil {
		respondError(c, err)
		return
	}
	message := "Chapter unpublished"
	if *req.Published {
		message = "Chapter published"
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// Delete godoc
// @Summary Delete chapter
// @Description Deletes a chapter and its comment threads.
// @Tags chapters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chapter ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /chapters/{id} [delete]
func (h *ChapterHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.chapterService.DeleteChapter(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Chapter deleted"})
}
