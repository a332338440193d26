package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
)

// CommentHandler handles comment threads. Creation and listing are nested
// under the commentable resources; edits, votes and deletes are addressed by
// comment ID.
type CommentHandler struct {
	commentService portssvc.CommentSvcFacade
}

func NewCommentHandler(commentService portssvc.CommentSvcFacade) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func registerCommentRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewCommentHandler(services.Comment)

	optional := middleware.OptionalAuthMiddleware(services.Auth)
	authed := middleware.AuthMiddleware(services.Auth)

	r.GET("/api/v1/stories/:id/comments", optional, h.listFor(domain.CommentOnStory))
	r.GET("/api/v1/videos/:id/comments", optional, h.listFor(domain.CommentOnVideo))
	r.GET("/api/v1/chapters/:id/comments", optional, h.listFor(domain.CommentOnChapter))

	r.POST("/api/v1/stories/:id/comments", authed, h.createFor(domain.CommentOnStory))
	r.POST("/api/v1/videos/:id/comments", authed, h.createFor(domain.CommentOnVideo))
	r.POST("/api/v1/chapters/:id/comments", authed, h.createFor(domain.CommentOnChapter))

	comments := r.Group("/api/v1/comments", authed)
	{
		comments.PUT("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
		comments.POST("/:id/vote", h.Vote)
	}
}

// listFor returns the comment tree handler for one target kind.
//
// ListComments godoc
// @Summary List comments
// @Description Returns the target's comments as nested threads. The target must be visible to the caller.
// @Tags comments
// @Produce json
// @Param id path string true "Target ID"
// @Success 200 {object} dto.CommentTreeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/comments [get]
func (h *CommentHandler) listFor(target domain.CommentTarget) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.commentService.GetCommentTree(c.Request.Context(), target, c.Param("id"), optionalUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// createFor returns the comment creation handler for one target kind.
//
// CreateComment godoc
// @Summary Create comment
// @Description Adds a comment or reply to the target. Chapter comments may anchor to selected text.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Target ID"
// @Param comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stories/{id}/comments [post]
func (h *CommentHandler) createFor(target domain.CommentTarget) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req dto.CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}

		comment, err := h.commentService.CreateComment(c.Request.Context(), target, c.Param("id"), req, user)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// Update godoc
// @Summary Edit comment
// @Description Replaces the comment text. Author only; admins moderate by deleting, not editing.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param comment body dto.UpdateCommentRequest true "New content"
// @Success 200 {object} domain.Comment
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Vote godoc
// @Summary Vote on comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param vote body dto.VoteRequest true "up or down"
// @Success 200 {object} domain.Comment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{id}/vote [post]
func (h *CommentHandler) Vote(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	comment, err := h.commentService.Vote(c.Request.Context(), c.Param("id"), req.Vote == "up")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete comment
// @Description Deletes the comment and every descendant reply, reporting how many were removed. Author or admin.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} dto.DeletedCommentsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	deleted, err := h.commentService.DeleteComment(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedCommentsResponse{Deleted: deleted})
}
