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
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
	"github.com/inkpad-app/inkpad-backend/internal/utils"
)

const (
	referralCodeLength = 8
	referralBonus      = 10
	anonymousNameTries = 5
)

type AuthService struct {
	userRepo    portsrepo.UserRepository
	refreshRepo portsrepo.RefreshTokenRepository
	cfg         *config.Config
}

func NewAuthService(userRepo portsrepo.UserRepository, refreshRepo portsrepo.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, refreshRepo: refreshRepo, cfg: cfg}
}

// subjectOf returns the identity embedded in tokens and session records.
// Username when the account has one, otherwise email (OTP-provisioned accounts).
func subjectOf(user *domain.User) string {
	if user.Username != "" {
		return user.Username
	}
	return user.Email
}

func (s *AuthService) findBySubject(ctx context.Context, subject string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.userRepo.FindUserByEmail(ctx, subject)
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: username or email is required", apperrors.ErrValidation)
	}

	if req.Username != "" {
		if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
			return nil, fmt.Errorf("%w: username already taken", apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if req.Email != "" {
		if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	anonymousName, err := s.resolveAnonymousName(ctx, req.AnonymousName)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hash,
		AnonymousName: anonymousName,
		Role:          domain.RoleUser,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to create user", slog.String("error", err.Error()))
		}
		return nil, err
	}
	user.UserID = userID

	if req.ReferralCode != "" {
		s.creditReferrer(ctx, req.ReferralCode, userID)
	}

	logger.Info("User registered", slog.String("user_id", userID), slog.String("anonymous_name", anonymousName))
	return &user, nil
}

// resolveAnonymousName validates a requested name for uniqueness, or generates
// one, retrying on collision.
func (s *AuthService) resolveAnonymousName(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		if _, err := s.userRepo.FindUserByAnonymousName(ctx, requested); err == nil {
			return "", fmt.Errorf("%w: anonymous name already taken", apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		return requested, nil
	}

	for i := 0; i < anonymousNameTries; i++ {
		candidate := utils.GenerateAnonymousName()
		_, err := s.userRepo.FindUserByAnonymousName(ctx, candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not generate a unique anonymous name")
}

// creditReferrer bumps the referring user's counters. A bad code is ignored so
// that registration never fails on it.
func (s *AuthService) creditReferrer(ctx context.Context, code, newUserID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	referrer, err := s.userRepo.FindUserByReferralCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		logger.Warn("Referral code did not match any user", slog.String("code", code))
		return
	}
	if err := s.userRepo.IncrementReferralCount(ctx, referrer.UserID); err != nil {
		logger.Error("Failed to increment referral count", slog.String("error", err.Error()), slog.String("referrer_id", referrer.UserID))
		return
	}
	if err := s.userRepo.AddPoints(ctx, referrer.UserID, referralBonus); err != nil {
		logger.Error("Failed to add referral points", slog.String("error", err.Error()), slog.String("referrer_id", referrer.UserID))
		return
	}
	logger.Info("Referral credited", slog.String("referrer_id", referrer.UserID), slog.String("new_user_id", newUserID))
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.TokenPair, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	identifier := strings.TrimSpace(req.Username)
	if identifier == "" {
		identifier = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if identifier == "" {
		return nil, nil, fmt.Errorf("%w: username or email is required", apperrors.ErrValidation)
	}

	// Admin bootstrap: the configured admin credentials always work, creating
	// the admin account on first login.
	if s.cfg.AdminPassword != "" && identifier == s.cfg.AdminUsername && req.Password == s.cfg.AdminPassword {
		admin, err := s.ensureAdminUser(ctx)
		if err != nil {
			return nil, nil, err
		}
		pair, err := s.issueTokenPair(ctx, admin)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Admin login", slog.String("user_id", admin.UserID))
		return pair, admin, nil
	}

	user, err := s.findBySubject(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, fmt.Errorf("%w: account deactivated", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Password mismatch", slog.String("user_id", user.UserID))
		return nil, nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return pair, user, nil
}

// ensureAdminUser finds or creates the configured admin account.
func (s *AuthService) ensureAdminUser(ctx context.Context) (*domain.User, error) {
	admin, err := s.userRepo.FindUserByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	anonymousName, err := s.resolveAnonymousName(ctx, "")
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Username:      s.cfg.AdminUsername,
		PasswordHash:  hash,
		AnonymousName: anonymousName,
		Role:          domain.RoleAdmin,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UserID = userID
	return &user, nil
}

// issueTokenPair mints access and refresh tokens and replaces the subject's
// stored session with a fresh record.
func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	subject := subjectOf(user)

	accessToken, err := utils.GenerateToken(subject, string(user.Role), utils.TokenTypeAccess, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateToken(subject, string(user.Role), utils.TokenTypeRefresh, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// One live session per subject: earlier records are purged on login.
	if err := s.refreshRepo.DeleteByUsername(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to purge prior sessions: %w", err)
	}
	now := time.Now()
	record := domain.RefreshToken{
		Username:     subject,
		Token:        refreshToken,
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(s.cfg.RefreshTokenExpiry),
	}
	if _, err := s.refreshRepo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	claims, err := utils.ParseAndValidateToken(refreshToken, s.cfg.JWTSecret, utils.TokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}
	subject := claims.Subject

	record, err := s.refreshRepo.FindByUsernameAndToken(ctx, subject, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Token was rotated away or the session was revoked.
			return nil, fmt.Errorf("%w: refresh token not recognized", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	// Absolute expiry and the inactivity window are independent checks: either
	// one ends the session.
	now := time.Now()
	if now.After(record.ExpiresAt) {
		_ = s.refreshRepo.DeleteByID(ctx, record.ID)
		logger.Info("Refresh token expired", slog.String("subject", subject))
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if now.Sub(record.LastActivity) > s.cfg.SessionInactivityWindow {
		_ = s.refreshRepo.DeleteByID(ctx, record.ID)
		logger.Info("Session ended by inactivity", slog.String("subject", subject))
		return nil, apperrors.ErrSessionInactive
	}

	user, err := s.findBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown subject", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account deactivated", apperrors.ErrUnauthorized)
	}

	newAccess, err := utils.GenerateToken(subject, string(user.Role), utils.TokenTypeAccess, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefresh, err := utils.GenerateToken(subject, string(user.Role), utils.TokenTypeRefresh, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Rotation: the old token stops working the moment the record is updated.
	if err := s.refreshRepo.Rotate(ctx, record.ID, newRefresh, now.Add(s.cfg.RefreshTokenExpiry), now); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	logger.Debug("Refresh token rotated", slog.String("subject", subject))
	return &domain.TokenPair{
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, username string) error {
	if err := s.refreshRepo.DeleteByUsername(ctx, username); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("User logged out", slog.String("subject", username))
	return nil
}

func (s *AuthService) AuthenticateAccess(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := utils.ParseAndValidateToken(accessToken, s.cfg.JWTSecret, utils.TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", apperrors.ErrUnauthorized)
	}
	subject := claims.Subject

	// An access token is only honored while its subject holds a live session.
	record, err := s.refreshRepo.FindLiveByUsername(ctx, subject, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: session revoked", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if time.Since(record.LastActivity) > s.cfg.SessionInactivityWindow {
		return nil, apperrors.ErrSessionInactive
	}

	user, err := s.findBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown subject", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account deactivated", apperrors.ErrUnauthorized)
	}

	// Activity keeps the session alive across the inactivity window.
	if err := s.refreshRepo.TouchActivity(ctx, subject, time.Now()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to touch session activity", slog.String("error", err.Error()), slog.String("subject", subject))
	}

	return user, nil
}
