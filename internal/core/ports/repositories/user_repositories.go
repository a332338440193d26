package repositories

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts a new user and returns its generated ID.
	// Returns apperrors.ErrDuplicate on a unique-index collision.
	CreateUser(ctx context.Context, user domain.User) (string, error)

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByAnonymousName(ctx context.Context, anonymousName string) (*domain.User, error)
	FindUserByReferralCode(ctx context.Context, code string) (*domain.User, error)

	// SetPoints overwrites the stored points total (idempotent recompute target).
	SetPoints(ctx context.Context, userID string, points int) error
	// AddPoints atomically increments the stored points total.
	AddPoints(ctx context.Context, userID string, delta int) error
	// SetReferralCode stores a lazily generated referral code.
	SetReferralCode(ctx context.Context, userID, code string) error
	// IncrementReferralCount atomically bumps the referral counter.
	IncrementReferralCount(ctx context.Context, userID string) error

	CountUsers(ctx context.Context) (int64, error)
	ListTopByPoints(ctx context.Context, limit int) ([]domain.User, error)
}
