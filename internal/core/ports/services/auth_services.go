package services

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
)

// AuthSvcFacade covers credential login, token rotation and access validation.
type AuthSvcFacade interface {
	// Register creates a user account. A missing anonymous name is generated,
	// and a referral code credits the referring user.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and issues a fresh token pair, replacing any
	// prior session for the subject.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.TokenPair, *domain.User, error)

	// Refresh rotates the refresh token and issues a new pair. It fails with
	// ErrSessionInactive after the inactivity window and ErrRefreshTokenExpired
	// past the absolute expiry.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)

	// Logout deletes the subject's session records.
	Logout(ctx context.Context, username string) error

	// AuthenticateAccess validates an access token, requires a live session
	// record, bumps its activity, and resolves the active user.
	AuthenticateAccess(ctx context.Context, accessToken string) (*domain.User, error)
}

// OTPSvcFacade covers the email one-time-code login flow.
type OTPSvcFacade interface {
	// RequestCode issues a new code for the email, invalidating earlier ones.
	// The code is returned so callers can deliver it (logged in development).
	RequestCode(ctx context.Context, email string) (string, error)

	// VerifyCode redeems a code, provisioning an account for unknown emails,
	// and issues a token pair.
	VerifyCode(ctx context.Context, email, code string) (*domain.TokenPair, *domain.User, error)
}
