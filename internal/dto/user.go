package dto

import "github.com/inkpad-app/inkpad-backend/internal/core/domain"

// PointsResponse is the recomputed points total with its breakdown.
type PointsResponse struct {
	UserID    string                 `json:"user_id"`
	Points    int                    `json:"points"`
	Breakdown domain.PointsBreakdown `json:"breakdown"`
}

// ReferralInfoResponse exposes a user's referral code and share link.
type ReferralInfoResponse struct {
	ReferralCode  string `json:"referral_code"`
	ReferralLink  string `json:"referral_link"`
	ReferralCount int    `json:"referral_count"`
	PointsEarned  int    `json:"points_earned"`
}

// LeaderboardResponse ranks users by points.
type LeaderboardResponse struct {
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	TotalUsers  int64                     `json:"total_users"`
}

// LikedPostsResponse lists the content a user has liked, by kind.
type LikedPostsResponse struct {
	Stories []domain.Story `json:"stories"`
	Videos  []domain.Video `json:"videos"`
	Shots   []domain.Shot  `json:"shots"`
}
