package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
)

// UserHandler handles user profiles, stats and the points system.
type UserHandler struct {
	userService portssvc.UserSvcFacade
}

func NewUserHandler(userService portssvc.UserSvcFacade) *UserHandler {
	return &UserHandler{userService: userService}
}

func registerUserRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewUserHandler(services.User)

	public := r.Group("/api/v1/users", middleware.OptionalAuthMiddleware(services.Auth))
	{
		public.GET("/leaderboard", h.Leaderboard)
		public.GET("/:id", h.Get)
		public.GET("/:id/stats", h.Stats)
	}

	authed := r.Group("/api/v1/users/me", middleware.AuthMiddleware(services.Auth))
	{
		authed.GET("/stats", h.MyStats)
		authed.GET("/points", h.Points)
		authed.POST("/points/recalculate", h.RecalculatePoints)
		authed.GET("/referral", h.ReferralInfo)
		authed.GET("/liked", h.LikedPosts)
	}
}

// Get godoc
// @Summary Get user profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Stats godoc
// @Summary User stats
// @Description Aggregates a user's content counts and received likes.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.UserStats
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id}/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.GetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MyStats godoc
// @Summary Own stats
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserStats
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/stats [get]
func (h *UserHandler) MyStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.userService.GetStats(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Points godoc
// @Summary Current points
// @Description Returns the caller's points with their breakdown. The total is recomputed from current counts on every read, so the stored value never drifts.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PointsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/points [get]
func (h *UserHandler) Points(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.userService.RecalculatePoints(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecalculatePoints godoc
// @Summary Recalculate points
// @Description Recomputes the caller's points from current referral and content counts and stores the result.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PointsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/points/recalculate [post]
func (h *UserHandler) RecalculatePoints(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.userService.RecalculatePoints(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReferralInfo godoc
// @Summary Referral info
// @Description Returns the caller's referral code and earnings, generating a code on first access.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ReferralInfoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/referral [get]
func (h *UserHandler) ReferralInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.userService.GetReferralInfo(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Leaderboard godoc
// @Summary Points leaderboard
// @Description Ranks users by points. When authenticated, the caller's row is flagged.
// @Tags users
// @Produce json
// @Param limit query int false "Rows to return" default(10)
// @Success 200 {object} dto.LeaderboardResponse
// @Router /users/leaderboard [get]
func (h *UserHandler) Leaderboard(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	viewerID := ""
	if viewer := optionalUser(c); viewer != nil {
		viewerID = viewer.UserID
	}
	resp, err := h.userService.GetLeaderboard(c.Request.Context(), query.Limit, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LikedPosts godoc
// @Summary Liked posts
// @Description Lists the stories, videos and shots the caller has liked.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LikedPostsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me/liked [get]
func (h *UserHandler) LikedPosts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	resp, err := h.userService.GetLikedPosts(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
