package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/core/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
	"github.com/inkpad-app/inkpad-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockRefreshRepo *MockRefreshTokenRepository
	cfg             *config.Config
	service         *services.AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRefreshRepo = new(MockRefreshTokenRepository)
	suite.cfg = &config.Config{
		JWTSecret:               "test-secret",
		JWTIssuer:               "test-issuer",
		AccessTokenExpiry:       30 * time.Minute,
		RefreshTokenExpiry:      720 * time.Hour,
		SessionInactivityWindow: 24 * time.Hour,
		AdminUsername:           "admin",
		AdminPassword:           "",
	}
	suite.service = services.NewAuthService(suite.mockUserRepo, suite.mockRefreshRepo, suite.cfg)
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByAnonymousName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "alice" &&
			user.Role == domain.RoleUser &&
			user.IsActive &&
			user.AnonymousName != "" &&
			utils.CheckPasswordHash("password123", user.PasswordHash)
	})).Return("user-1", nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)
	suite.NotEmpty(user.AnonymousName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: "user-1", Username: "alice"}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(existing, nil).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "password123"})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegister_ReferralCredited() {
	ctx := context.Background()
	referrer := &domain.User{UserID: "referrer-1", ReferralCode: "ABCD1234"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "bob").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByAnonymousName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("domain.User")).Return("user-2", nil).Once()
	suite.mockUserRepo.On("FindUserByReferralCode", ctx, "ABCD1234").Return(referrer, nil).Once()
	suite.mockUserRepo.On("IncrementReferralCount", ctx, "referrer-1").Return(nil).Once()
	suite.mockUserRepo.On("AddPoints", ctx, "referrer-1", 10).Return(nil).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{Username: "bob", Password: "password123", ReferralCode: "abcd1234"})

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_BadReferralCodeIgnored() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "carol").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByAnonymousName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("domain.User")).Return("user-3", nil).Once()
	suite.mockUserRepo.On("FindUserByReferralCode", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{Username: "carol", Password: "password123", ReferralCode: "nope"})

	suite.Require().NoError(err)
	suite.Equal("user-3", user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "IncrementReferralCount", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "user-1", Username: "alice", PasswordHash: hash, Role: domain.RoleUser, IsActive: true}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockRefreshRepo.On("DeleteByUsername", ctx, "alice").Return(nil).Once()
	suite.mockRefreshRepo.On("Insert", ctx, mock.MatchedBy(func(rec domain.RefreshToken) bool {
		return rec.Username == "alice" && rec.Token != ""
	})).Return("session-1", nil).Once()

	pair, loggedIn, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "password123"})

	suite.Require().NoError(err)
	suite.Equal("user-1", loggedIn.UserID)
	suite.Equal("bearer", pair.TokenType)
	suite.NotEmpty(pair.AccessToken)
	suite.NotEmpty(pair.RefreshToken)

	claims, err := utils.ParseAndValidateToken(pair.AccessToken, suite.cfg.JWTSecret, utils.TokenTypeAccess)
	suite.Require().NoError(err)
	suite.Equal("alice", claims.Subject)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "user-1", Username: "alice", PasswordHash: hash, IsActive: true}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	_, _, err = suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong"})

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRefreshRepo.AssertNotCalled(suite.T(), "Insert", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_DeactivatedAccount() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1", Username: "alice", IsActive: false}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "password123"})

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_AdminBootstrapCreatesAccount() {
	ctx := context.Background()
	suite.cfg.AdminPassword = "super-secret"

	suite.mockUserRepo.On("FindUserByUsername", ctx, "admin").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByAnonymousName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "admin" && user.Role == domain.RoleAdmin
	})).Return("admin-1", nil).Once()
	suite.mockRefreshRepo.On("DeleteByUsername", ctx, "admin").Return(nil).Once()
	suite.mockRefreshRepo.On("Insert", ctx, mock.AnythingOfType("domain.RefreshToken")).Return("session-1", nil).Once()

	pair, admin, err := suite.service.Login(ctx, dto.LoginRequest{Username: "admin", Password: "super-secret"})

	suite.Require().NoError(err)
	suite.True(admin.IsAdmin())
	suite.NotEmpty(pair.AccessToken)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) refreshTokenFor(subject string) string {
	token, err := utils.GenerateToken(subject, string(domain.RoleUser), utils.TokenTypeRefresh, suite.cfg.JWTSecret, suite.cfg.JWTIssuer, suite.cfg.RefreshTokenExpiry)
	suite.Require().NoError(err)
	return token
}

func (suite *AuthServiceTestSuite) TestRefresh_RotatesToken() {
	ctx := context.Background()
	token := suite.refreshTokenFor("alice")
	now := time.Now()
	record := &domain.RefreshToken{
		ID:           "session-1",
		Username:     "alice",
		Token:        token,
		CreatedAt:    now.Add(-time.Hour),
		LastActivity: now.Add(-time.Minute),
		ExpiresAt:    now.Add(time.Hour),
	}
	user := &domain.User{UserID: "user-1", Username: "alice", Role: domain.RoleUser, IsActive: true}

	suite.mockRefreshRepo.On("FindByUsernameAndToken", ctx, "alice", token).Return(record, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockRefreshRepo.On("Rotate", ctx, "session-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	pair, err := suite.service.Refresh(ctx, token)

	suite.Require().NoError(err)
	suite.NotEqual(token, pair.RefreshToken)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRefresh_UnknownTokenRejected() {
	ctx := context.Background()
	token := suite.refreshTokenFor("alice")

	suite.mockRefreshRepo.On("FindByUsernameAndToken", ctx, "alice", token).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Refresh(ctx, token)

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestRefresh_ExpiredSessionDeleted() {
	ctx := context.Background()
	token := suite.refreshTokenFor("alice")
	now := time.Now()
	record := &domain.RefreshToken{
		ID:           "session-1",
		Username:     "alice",
		Token:        token,
		LastActivity: now,
		ExpiresAt:    now.Add(-time.Minute),
	}

	suite.mockRefreshRepo.On("FindByUsernameAndToken", ctx, "alice", token).Return(record, nil).Once()
	suite.mockRefreshRepo.On("DeleteByID", ctx, "session-1").Return(nil).Once()

	_, err := suite.service.Refresh(ctx, token)

	suite.Require().ErrorIs(err, apperrors.ErrRefreshTokenExpired)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRefresh_InactiveSessionDeleted() {
	ctx := context.Background()
	token := suite.refreshTokenFor("alice")
	now := time.Now()
	record := &domain.RefreshToken{
		ID:           "session-1",
		Username:     "alice",
		Token:        token,
		LastActivity: now.Add(-25 * time.Hour),
		ExpiresAt:    now.Add(time.Hour),
	}

	suite.mockRefreshRepo.On("FindByUsernameAndToken", ctx, "alice", token).Return(record, nil).Once()
	suite.mockRefreshRepo.On("DeleteByID", ctx, "session-1").Return(nil).Once()

	_, err := suite.service.Refresh(ctx, token)

	suite.Require().ErrorIs(err, apperrors.ErrSessionInactive)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestAuthenticateAccess_Success() {
	ctx := context.Background()
	access, err := utils.GenerateToken("alice", string(domain.RoleUser), utils.TokenTypeAccess, suite.cfg.JWTSecret, suite.cfg.JWTIssuer, suite.cfg.AccessTokenExpiry)
	suite.Require().NoError(err)
	now := time.Now()
	record := &domain.RefreshToken{ID: "session-1", Username: "alice", LastActivity: now.Add(-time.Minute), ExpiresAt: now.Add(time.Hour)}
	user := &domain.User{UserID: "user-1", Username: "alice", IsActive: true}

	suite.mockRefreshRepo.On("FindLiveByUsername", ctx, "alice", mock.AnythingOfType("time.Time")).Return(record, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockRefreshRepo.On("TouchActivity", ctx, "alice", mock.AnythingOfType("time.Time")).Return(nil).Once()

	authed, err := suite.service.AuthenticateAccess(ctx, access)

	suite.Require().NoError(err)
	suite.Equal("user-1", authed.UserID)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestAuthenticateAccess_RevokedSession() {
	ctx := context.Background()
	access, err := utils.GenerateToken("alice", string(domain.RoleUser), utils.TokenTypeAccess, suite.cfg.JWTSecret, suite.cfg.JWTIssuer, suite.cfg.AccessTokenExpiry)
	suite.Require().NoError(err)

	suite.mockRefreshRepo.On("FindLiveByUsername", ctx, "alice", mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	_, err = suite.service.AuthenticateAccess(ctx, access)

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticateAccess_RefreshTokenRejected() {
	ctx := context.Background()
	refresh := suite.refreshTokenFor("alice")

	_, err := suite.service.AuthenticateAccess(ctx, refresh)

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRefreshRepo.AssertNotCalled(suite.T(), "FindLiveByUsername", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogout_PurgesSessions() {
	ctx := context.Background()
	suite.mockRefreshRepo.On("DeleteByUsername", ctx, "alice").Return(nil).Once()

	err := suite.service.Logout(ctx, "alice")

	suite.Require().NoError(err)
	suite.mockRefreshRepo.AssertExpectations(suite.T())
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
