package services

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
)

// UserReaderSvc defines read operations over user accounts.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetStats aggregates a user's content counts and received likes.
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)

	// GetLeaderboard ranks users by points; viewerID marks the caller's row.
	GetLeaderboard(ctx context.Context, limit int, viewerID string) (*dto.LeaderboardResponse, error)

	// GetLikedPosts lists the content the user has liked.
	GetLikedPosts(ctx context.Context, userID string) (*dto.LikedPostsResponse, error)
}

// UserPointsSvc defines the gamification operations.
type UserPointsSvc interface {
	// RecalculatePoints recomputes the points total from current counts and
	// overwrites the stored value. Safe to call repeatedly.
	RecalculatePoints(ctx context.Context, userID string) (*dto.PointsResponse, error)

	// GetReferralInfo returns the user's referral code, generating and storing
	// one on first access.
	GetReferralInfo(ctx context.Context, userID string) (*dto.ReferralInfoResponse, error)
}

// UserSvcFacade combines the user-facing read and points operations.
type UserSvcFacade interface {
	UserReaderSvc
	UserPointsSvc
}
