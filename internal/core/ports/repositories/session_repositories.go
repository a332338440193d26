package repositories

import (
	"context"
	"time"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

// RefreshTokenRepository persists the server-side session records behind
// refresh tokens. One live record per username.
type RefreshTokenRepository interface {
	// Insert stores a new record and returns its ID.
	Insert(ctx context.Context, token domain.RefreshToken) (string, error)
	// DeleteByUsername purges all records for a subject (login replace, logout).
	DeleteByUsername(ctx context.Context, username string) error
	DeleteByID(ctx context.Context, id string) error

	// FindByUsernameAndToken matches a stored record by subject and exact token.
	FindByUsernameAndToken(ctx context.Context, username, token string) (*domain.RefreshToken, error)
	// FindLiveByUsername returns a record whose absolute expiry is after now.
	FindLiveByUsername(ctx context.Context, username string, now time.Time) (*domain.RefreshToken, error)

	// Rotate swaps the token value and stamps expiry/activity in a single update.
	Rotate(ctx context.Context, id, newToken string, expiresAt, lastActivity time.Time) error
	// TouchActivity bumps last_activity for the subject's record.
	TouchActivity(ctx context.Context, username string, at time.Time) error
}

// OTPRepository persists one-time email login codes. One live code per email.
type OTPRepository interface {
	Insert(ctx context.Context, otp domain.OTP) (string, error)
	DeleteByEmail(ctx context.Context, email string) error
	// FindLive returns an unused, unexpired code matching email and code.
	FindLive(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error)
	MarkUsed(ctx context.Context, id string) error
}
