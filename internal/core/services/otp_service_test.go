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
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
)

type OTPServiceTestSuite struct {
	suite.Suite
	mockOTPRepo     *MockOTPRepository
	mockUserRepo    *MockUserRepository
	mockRefreshRepo *MockRefreshTokenRepository
	service         *services.OTPService
}

func (suite *OTPServiceTestSuite) SetupTest() {
	suite.mockOTPRepo = new(MockOTPRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRefreshRepo = new(MockRefreshTokenRepository)
	cfg := &config.Config{
		JWTSecret:               "test-secret",
		JWTIssuer:               "test-issuer",
		AccessTokenExpiry:       30 * time.Minute,
		RefreshTokenExpiry:      720 * time.Hour,
		SessionInactivityWindow: 24 * time.Hour,
	}
	auth := services.NewAuthService(suite.mockUserRepo, suite.mockRefreshRepo, cfg)
	suite.service = services.NewOTPService(suite.mockOTPRepo, suite.mockUserRepo, auth)
}

func (suite *OTPServiceTestSuite) TestRequestCode_ReplacesEarlierCodes() {
	ctx := context.Background()

	suite.mockOTPRepo.On("DeleteByEmail", ctx, "alice@example.com").Return(nil).Once()
	suite.mockOTPRepo.On("Insert", ctx, mock.MatchedBy(func(otp domain.OTP) bool {
		return otp.Email == "alice@example.com" && len(otp.Code) == 4 && otp.ExpiresAt.After(otp.CreatedAt)
	})).Return("otp-1", nil).Once()

	code, err := suite.service.RequestCode(ctx, " Alice@Example.com ")

	suite.Require().NoError(err)
	suite.Len(code, 4)
	suite.mockOTPRepo.AssertExpectations(suite.T())
}

func (suite *OTPServiceTestSuite) TestVerifyCode_ExistingUser() {
	ctx := context.Background()
	otp := &domain.OTP{ID: "otp-1", Email: "alice@example.com", Code: "1234"}
	user := &domain.User{UserID: "user-1", Email: "alice@example.com", IsActive: true}

	suite.mockOTPRepo.On("FindLive", ctx, "alice@example.com", "1234", mock.AnythingOfType("time.Time")).Return(otp, nil).Once()
	suite.mockOTPRepo.On("MarkUsed", ctx, "otp-1").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(user, nil).Once()
	suite.mockRefreshRepo.On("DeleteByUsername", ctx, "alice@example.com").Return(nil).Once()
	suite.mockRefreshRepo.On("Insert", ctx, mock.AnythingOfType("domain.RefreshToken")).Return("session-1", nil).Once()

	pair, verified, err := suite.service.VerifyCode(ctx, "alice@example.com", "1234")

	suite.Require().NoError(err)
	suite.Equal("user-1", verified.UserID)
	suite.NotEmpty(pair.RefreshToken)
	suite.mockOTPRepo.AssertExpectations(suite.T())
}

func (suite *OTPServiceTestSuite) TestVerifyCode_ProvisionsUnknownEmail() {
	ctx := context.Background()
	otp := &domain.OTP{ID: "otp-1", Email: "new@example.com", Code: "9876"}

	suite.mockOTPRepo.On("FindLive", ctx, "new@example.com", "9876", mock.AnythingOfType("time.Time")).Return(otp, nil).Once()
	suite.mockOTPRepo.On("MarkUsed", ctx, "otp-1").Return(nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByAnonymousName", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("CreateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new@example.com" && user.Username == "" && user.IsActive && user.PasswordHash != ""
	})).Return("user-2", nil).Once()
	// Email-only accounts use the email as the session subject.
	suite.mockRefreshRepo.On("DeleteByUsername", ctx, "new@example.com").Return(nil).Once()
	suite.mockRefreshRepo.On("Insert", ctx, mock.MatchedBy(func(rec domain.RefreshToken) bool {
		return rec.Username == "new@example.com"
	})).Return("session-1", nil).Once()

	_, provisioned, err := suite.service.VerifyCode(ctx, "new@example.com", "9876")

	suite.Require().NoError(err)
	suite.Equal("user-2", provisioned.UserID)
	suite.NotEmpty(provisioned.AnonymousName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *OTPServiceTestSuite) TestVerifyCode_BadCodeRejected() {
	ctx := context.Background()

	suite.mockOTPRepo.On("FindLive", ctx, "alice@example.com", "0000", mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.VerifyCode(ctx, "alice@example.com", "0000")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockOTPRepo.AssertNotCalled(suite.T(), "MarkUsed", mock.Anything, mock.Anything)
}

func TestOTPService(t *testing.T) {
	suite.Run(t, new(OTPServiceTestSuite))
}
