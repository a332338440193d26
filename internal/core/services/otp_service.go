package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/utils"
)

const (
	otpCodeLength = 4
	otpTTL        = 10 * time.Minute
)

type OTPService struct {
	otpRepo  portsrepo.OTPRepository
	userRepo portsrepo.UserRepository
	auth     *AuthService
}

func NewOTPService(otpRepo portsrepo.OTPRepository, userRepo portsrepo.UserRepository, auth *AuthService) *OTPService {
	return &OTPService{otpRepo: otpRepo, userRepo: userRepo, auth: auth}
}

// RequestCode issues a fresh one-time code for the email. Any earlier code for
// the same email stops working.
func (s *OTPService) RequestCode(ctx context.Context, email string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return "", fmt.Errorf("failed to invalidate previous codes: %w", err)
	}

	now := time.Now()
	otp := domain.OTP{
		Email:     email,
		Code:      utils.GenerateOTPCode(otpCodeLength),
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL),
	}
	if _, err := s.otpRepo.Insert(ctx, otp); err != nil {
		return "", fmt.Errorf("failed to store one-time code: %w", err)
	}

	logger.Info("One-time code issued", slog.String("email", email))
	return otp.Code, nil
}

// VerifyCode redeems a one-time code. Unknown emails get an account provisioned
// with a generated anonymous name and a random password.
func (s *OTPService) VerifyCode(ctx context.Context, email, code string) (*domain.TokenPair, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	otp, err := s.otpRepo.FindLive(ctx, email, code, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid or expired code", apperrors.ErrUnauthorized)
		}
		return nil, nil, err
	}
	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to mark code used: %w", err)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		user, err = s.provisionUser(ctx, email)
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, fmt.Errorf("%w: account deactivated", apperrors.ErrUnauthorized)
	}

	pair, err := s.auth.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("One-time code redeemed", slog.String("user_id", user.UserID))
	return pair, user, nil
}

func (s *OTPService) provisionUser(ctx context.Context, email string) (*domain.User, error) {
	anonymousName, err := s.auth.resolveAnonymousName(ctx, "")
	if err != nil {
		return nil, err
	}
	// The account is email-only; the random password just blocks credential login.
	randomPassword, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := utils.HashPassword(randomPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	user := domain.User{
		Email:         email,
		PasswordHash:  hash,
		AnonymousName: anonymousName,
		Role:          domain.RoleUser,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UserID = userID

	middleware.GetLoggerFromCtx(ctx).Info("Account provisioned from one-time code", slog.String("user_id", userID))
	return &user, nil
}
