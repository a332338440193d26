package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/core/services"
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockStoryRepo   *MockStoryRepository
	mockVideoRepo   *MockVideoRepository
	mockShotRepo    *MockShotRepository
	mockCommentRepo *MockCommentRepository
	service         *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockStoryRepo = new(MockStoryRepository)
	suite.mockVideoRepo = new(MockVideoRepository)
	suite.mockShotRepo = new(MockShotRepository)
	suite.mockCommentRepo = new(MockCommentRepository)
	cfg := &config.Config{FrontendBaseURL: "https://inkpad.example.com"}
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockStoryRepo, suite.mockVideoRepo, suite.mockShotRepo, suite.mockCommentRepo, cfg)
}

func (suite *UserServiceTestSuite) TestGetStats_AggregatesLikes() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1", Username: "alice", AnonymousName: "BraveQuill", Points: 7, ReferralCount: 2}

	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()
	suite.mockStoryRepo.On("CountByAuthor", ctx, "user-1", domain.ModerationStatus("")).Return(3, nil).Once()
	suite.mockVideoRepo.On("CountByAuthor", ctx, "user-1", domain.ModerationStatus("")).Return(2, nil).Once()
	suite.mockStoryRepo.On("SumLikesByAuthor", ctx, "user-1").Return(100, nil).Once()
	suite.mockVideoRepo.On("SumLikesByAuthor", ctx, "user-1").Return(50, nil).Once()
	suite.mockShotRepo.On("SumLikesByAuthor", ctx, "user-1").Return(25, nil).Once()
	suite.mockCommentRepo.On("SumLikesByUser", ctx, "user-1").Return(5, nil).Once()

	stats, err := suite.service.GetStats(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(3, stats.StoryCount)
	suite.Equal(2, stats.VideoCount)
	suite.Equal(180, stats.TotalLikesReceived)
	suite.Equal(7, stats.Points)
}

func (suite *UserServiceTestSuite) TestRecalculatePoints_OverwritesStoredTotal() {
	ctx := context.Background()
	// 2 referrals * 10 + 3 approved stories + (1500+700+300+500)/1000 = 26 points.
	user := &domain.User{UserID: "user-1", ReferralCount: 2, Points: 999}

	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()
	suite.mockStoryRepo.On("CountByAuthor", ctx, "user-1", domain.StatusApproved).Return(3, nil).Once()
	suite.mockStoryRepo.On("SumLikesByAuthor", ctx, "user-1").Return(1500, nil).Once()
	suite.mockVideoRepo.On("SumLikesByAuthor", ctx, "user-1").Return(700, nil).Once()
	suite.mockShotRepo.On("SumLikesByAuthor", ctx, "user-1").Return(300, nil).Once()
	suite.mockCommentRepo.On("SumLikesByUser", ctx, "user-1").Return(500, nil).Once()
	suite.mockUserRepo.On("SetPoints", ctx, "user-1", 26).Return(nil).Once()

	resp, err := suite.service.RecalculatePoints(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(26, resp.Points)
	suite.Equal(20, resp.Breakdown.ReferralPoints)
	suite.Equal(3, resp.Breakdown.StoryPoints)
	suite.Equal(3, resp.Breakdown.LikePoints)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRecalculatePoints_CountsCommentLikes() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}

	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()
	suite.mockStoryRepo.On("CountByAuthor", ctx, "user-1", domain.StatusApproved).Return(0, nil).Once()
	suite.mockStoryRepo.On("SumLikesByAuthor", ctx, "user-1").Return(0, nil).Once()
	suite.mockVideoRepo.On("SumLikesByAuthor", ctx, "user-1").Return(0, nil).Once()
	suite.mockShotRepo.On("SumLikesByAuthor", ctx, "user-1").Return(0, nil).Once()
	suite.mockCommentRepo.On("SumLikesByUser", ctx, "user-1").Return(1000, nil).Once()
	suite.mockUserRepo.On("SetPoints", ctx, "user-1", 1).Return(nil).Once()

	resp, err := suite.service.RecalculatePoints(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(1, resp.Breakdown.LikePoints)
	suite.Equal(1, resp.Points)
}

func (suite *UserServiceTestSuite) TestGetReferralInfo_GeneratesCodeOnFirstAccess() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1", ReferralCount: 1}

	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()
	suite.mockUserRepo.On("FindUserByReferralCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SetReferralCode", ctx, "user-1", mock.AnythingOfType("string")).Return(nil).Once()

	resp, err := suite.service.GetReferralInfo(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Len(resp.ReferralCode, 8)
	suite.Contains(resp.ReferralLink, "https://inkpad.example.com/register?ref=")
	suite.Equal(10, resp.PointsEarned)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetReferralInfo_ReusesExistingCode() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1", ReferralCode: "ABCD1234", ReferralCount: 3}

	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()

	resp, err := suite.service.GetReferralInfo(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal("ABCD1234", resp.ReferralCode)
	suite.Equal(30, resp.PointsEarned)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetReferralCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestGetLeaderboard_ClampsLimitAndFlagsViewer() {
	ctx := context.Background()
	users := []domain.User{
		{UserID: "user-2", AnonymousName: "SwiftInk", Points: 50},
		{UserID: "user-1", AnonymousName: "BraveQuill", Points: 40},
	}

	suite.mockUserRepo.On("ListTopByPoints", ctx, 10).Return(users, nil).Once()
	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(42), nil).Once()

	resp, err := suite.service.GetLeaderboard(ctx, 0, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int64(42), resp.TotalUsers)
	suite.Require().Len(resp.Leaderboard, 2)
	suite.Equal(1, resp.Leaderboard[0].Rank)
	suite.False(resp.Leaderboard[0].IsCurrentUser)
	suite.Equal(2, resp.Leaderboard[1].Rank)
	suite.True(resp.Leaderboard[1].IsCurrentUser)
}

func (suite *UserServiceTestSuite) TestGetLikedPosts_SkipsDeletedContent() {
	ctx := context.Background()
	story := &domain.Story{ID: "story-1", Status: domain.StatusApproved}

	suite.mockStoryRepo.On("ListLikedIDs", ctx, "user-1").Return([]string{"story-1", "story-gone"}, nil).Once()
	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(story, nil).Once()
	suite.mockStoryRepo.On("FindByID", ctx, "story-gone").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockVideoRepo.On("ListLikedIDs", ctx, "user-1").Return([]string{}, nil).Once()
	suite.mockShotRepo.On("ListLikedIDs", ctx, "user-1").Return([]string{}, nil).Once()

	resp, err := suite.service.GetLikedPosts(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Len(resp.Stories, 1)
	suite.Empty(resp.Videos)
	suite.Empty(resp.Shots)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
