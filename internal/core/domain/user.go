package domain

import "time"

// UserRole distinguishes admins from regular users.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User represents an account in the domain. Username and Email are optional
// identities (OTP-provisioned accounts have only an email); AnonymousName is the
// public display name and is always present and unique.
type User struct {
	UserID         string     `json:"userID"`
	Username       string     `json:"username,omitempty"`
	Email          string     `json:"email,omitempty"`
	PasswordHash   string     `json:"-"`
	AnonymousName  string     `json:"anonymousName"`
	Role           UserRole   `json:"role"`
	IsActive       bool       `json:"isActive"`
	Points         int        `json:"points"`
	ReferralCode   string     `json:"referralCode,omitempty"`
	ReferralCount  int        `json:"referralCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	DeactivatedAt  *time.Time `json:"deactivatedAt,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PointsBreakdown itemizes how a user's points total is composed.
type PointsBreakdown struct {
	ReferralPoints int `json:"referralPoints"`
	StoryPoints    int `json:"storyPoints"`
	LikePoints     int `json:"likePoints"`
	TotalPoints    int `json:"totalPoints"`
}

// LeaderboardEntry is one ranked row of the points leaderboard.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"userID"`
	Username      string `json:"username,omitempty"`
	AnonymousName string `json:"anonymousName"`
	Points        int    `json:"points"`
	ReferralCount int    `json:"referralCount"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

// UserStats aggregates a user's public activity numbers.
type UserStats struct {
	UserID             string `json:"userID"`
	Username           string `json:"username,omitempty"`
	AnonymousName      string `json:"anonymousName"`
	Points             int    `json:"points"`
	ReferralCode       string `json:"referralCode,omitempty"`
	ReferralCount      int    `json:"referralCount"`
	StoryCount         int    `json:"storyCount"`
	VideoCount         int    `json:"videoCount"`
	TotalLikesReceived int    `json:"totalLikesReceived"`
	StoryLikes         int    `json:"storyLikes"`
	VideoLikes         int    `json:"videoLikes"`
	ShotLikes          int    `json:"shotLikes"`
	CommentLikes       int    `json:"commentLikes"`
}
