package dto

import (
	"time"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

// RegisterRequest creates a new account. Username or email must be present;
// AnonymousName is auto-generated when omitted; ReferralCode credits the
// referring user when present.
type RegisterRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email" binding:"omitempty,email"`
	Password      string `json:"password" binding:"required,min=8"`
	AnonymousName string `json:"anonymous_name"`
	ReferralCode  string `json:"referral_code"`
}

// LoginRequest authenticates by username or email plus password.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a rotated token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is the issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// ToTokenResponse converts a domain token pair.
func ToTokenResponse(pair *domain.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}

// OTPRequest asks for a one-time login code.
type OTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// OTPVerifyRequest redeems a one-time login code.
type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=4,numeric"`
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	ID            string          `json:"id"`
	Username      string          `json:"username,omitempty"`
	Email         string          `json:"email,omitempty"`
	AnonymousName string          `json:"anonymous_name"`
	Role          domain.UserRole `json:"role"`
	Points        int             `json:"points"`
	ReferralCount int             `json:"referral_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToUserResponse converts a domain user.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.UserID,
		Username:      user.Username,
		Email:         user.Email,
		AnonymousName: user.AnonymousName,
		Role:          user.Role,
		Points:        user.Points,
		ReferralCount: user.ReferralCount,
		CreatedAt:     user.CreatedAt,
	}
}
