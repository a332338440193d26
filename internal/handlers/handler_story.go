package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

// StoryHandler handles story CRUD, moderation and engagement requests.
type StoryHandler struct {
	storyService   portssvc.StorySvcFacade
	chapterService portssvc.ChapterSvcFacade
	media          mediaResolver
}

func NewStoryHandler(storyService portssvc.StorySvcFacade, chapterService portssvc.ChapterSvcFacade, blobs storage.BlobStore) *StoryHandler {
	return &StoryHandler{storyService: storyService, chapterService: chapterService, media: mediaResolver{blobs: blobs}}
}

func registerStoryRoutes(r *gin.Engine, services *portssvc.ServiceContainer, blobs storage.BlobStore) {
	h := NewStoryHandler(services.Story, services.Chapter, blobs)

	// Reads use optional auth so authors see their own unapproved stories.
	public := r.Group("/api/v1/stories", middleware.OptionalAuthMiddleware(services.Auth))
	{
		public.GET("", h.ListFeed)
		public.GET("/author/:id", h.ListByAuthor)
		public.GET("/:id", h.Get)
		public.GET("/:id/chapters", h.ListChapters)
	}

	authed := r.Group("/api/v1/stories", middleware.AuthMiddleware(services.Auth))
	{
		authed.POST("", h.Create)
		authed.GET("/my", h.ListMine)
		authed.PUT("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
		authed.POST("/:id/submit", h.Submit)
		authed.POST("/:id/like", h.ToggleLike)
		authed.POST("/:id/chapters", h.CreateChapter)
	}

	admin := r.Group("/api/v1/stories", middleware.AuthMiddleware(services.Auth), middleware.RequireAdmin())
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("/:id/moderate", h.Moderate)
	}
}

// ListFeed godoc
// @Summary Story feed
// @Description Lists approved stories with optional search and sorting.
// @Tags stories
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search in title, description and tags"
// @Param sort query string false "latest or popular" default(latest)
// @Success 200 {object} dto.StoryListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stories [get]
func (h *StoryHandler) ListFeed(c *gin.Context) {
	var params dto.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.storyService.ListFeed(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.stories(c.Request.Context(), resp.Stories)
	c.JSON(http.StatusOK, resp)
}

// ListByAuthor godoc
// @Summary Stories by author
// @Description Lists an author's approved stories.
// @Tags stories
// @Produce json
// @Param id path string true "Author's user ID"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.StoryListResponse
// @Router /stories/author/{id} [get]
func (h *StoryHandler) ListByAuthor(c *gin.Context) {
	var params dto.PaginationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.storyService.ListByAuthor(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.stories(c.Request.Context(), resp.Stories)
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get story
// @Description Returns one story. Unapproved stories are only visible to their author or an admin.
// @Tags stories
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} domain.Story
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id} [get]
func (h *StoryHandler) Get(c *gin.Context) {
	story, err := h.storyService.GetStory(c.Request.Context(), c.Param("id"), optionalUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.story(c.Request.Context(), story)
	c.JSON(http.StatusOK, story)
}

// Create godoc
// @Summary Create story
// @Description Creates a story in draft status.
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param story body dto.CreateStoryRequest true "Story"
// @Success 201 {object} domain.Story
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /stories [post]
func (h *StoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.storyService.CreateStory(c.Request.Context(), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

// Update godoc
// @Summary Update story
// @Description Patches story fields. Author only; moderation status is unaffected.
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Param story body dto.UpdateStoryRequest true "Fields to update"
// @Success 200 {object} domain.Story
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id} [put]
func (h *StoryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.storyService.UpdateStory(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

// Delete godoc
// @Summary Delete story
// @Description Deletes a story with its chapters and comments.
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id} [delete]
func (h *StoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.storyService.DeleteStory(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Story deleted"})
}

// Submit godoc
// @Summary Submit story for review
// @Description Moves a draft or rejected story to pending.
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse "Not submittable from current status"
// @Router /stories/{id}/submit [post]
func (h *StoryHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.storyService.Submit(c.Request.Context(), c.Param("id"), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Submitted for review"})
}

// Moderate godoc
// @Summary Moderate story
// @Description Approves or rejects a pending story. Admin only.
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Param decision body dto.ModerationRequest true "Decision"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse "Not pending"
// @Router /stories/{id}/moderate [post]
func (h *StoryHandler) Moderate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.storyService.Moderate(c.Request.Context(), c.Param("id"), req, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Moderation applied"})
}

// ToggleLike godoc
// @Summary Toggle story like
// @Description Likes the story, or removes the caller's existing like.
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/like [post]
func (h *StoryHandler) ToggleLike(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.storyService.ToggleLike(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine godoc
// @Summary My stories
// @Description Lists the caller's stories in every status.
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.StoryListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /stories/my [get]
func (h *StoryHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.PaginationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.storyService.ListMine(c.Request.Context(), user, params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.stories(c.Request.Context(), resp.Stories)
	c.JSON(http.StatusOK, resp)
}

// ListPending godoc
// @Summary Pending stories
// @Description Lists stories awaiting review. Admin only.
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.StoryListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /stories/pending [get]
func (h *StoryHandler) ListPending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.PaginationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.storyService.ListPending(c.Request.Context(), user, params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.media.stories(c.Request.Context(), resp.Stories)
	c.JSON(http.StatusOK, resp)
}

// CreateChapter godoc
// @Summary Add chapter
// @Description Adds a chapter to the story. Omitted numbers append after the highest.
// @Tags chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Param chapter body dto.CreateChapterRequest true "Chapter"
// @Success 201 {object} domain.Chapter
// @Failure 403 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse "Chapter number exists"
// @Router /stories/{id}/chapters [post]
func (h *StoryHandler) CreateChapter(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	chapter, err := h.chapterService.CreateChapter(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

// ListChapters godoc
// @Summary List chapters
// @Description Lists a story's chapters in reading order. Unpublished chapters show only to the author.
// @Tags chapters
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} dto.ChapterListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/chapters [get]
func (h *StoryHandler) ListChapters(c *gin.Context) {
	resp, err := h.chapterService.ListChapters(c.Request.Context(), c.Param("id"), optionalUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
