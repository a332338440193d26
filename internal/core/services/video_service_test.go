package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/core/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
)

type VideoServiceTestSuite struct {
	suite.Suite
	mockVideoRepo   *MockVideoRepository
	mockCommentRepo *MockCommentRepository
	mockUserRepo    *MockUserRepository
	service         *services.VideoService

	author *domain.User
}

func (suite *VideoServiceTestSuite) SetupTest() {
	suite.mockVideoRepo = new(MockVideoRepository)
	suite.mockCommentRepo = new(MockCommentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewVideoService(suite.mockVideoRepo, suite.mockCommentRepo, suite.mockUserRepo)

	suite.author = &domain.User{UserID: "author-1", AnonymousName: "SwiftInk", Role: domain.RoleUser}
}

func (suite *VideoServiceTestSuite) TestGetVideo_CountsViewOnApproved() {
	ctx := context.Background()
	video := &domain.Video{ID: "video-1", AuthorID: "author-1", Status: domain.StatusApproved, Views: 9}

	suite.mockVideoRepo.On("FindByID", ctx, "video-1").Return(video, nil).Once()
	suite.mockVideoRepo.On("IncrementViews", ctx, "video-1").Return(nil).Once()

	got, err := suite.service.GetVideo(ctx, "video-1", nil)

	suite.Require().NoError(err)
	suite.Equal(10, got.Views)
	suite.mockVideoRepo.AssertExpectations(suite.T())
}

func (suite *VideoServiceTestSuite) TestGetVideo_NoViewCountForAuthorDraft() {
	ctx := context.Background()
	video := &domain.Video{ID: "video-1", AuthorID: "author-1", Status: domain.StatusDraft, Views: 9}

	suite.mockVideoRepo.On("FindByID", ctx, "video-1").Return(video, nil).Once()

	got, err := suite.service.GetVideo(ctx, "video-1", suite.author)

	suite.Require().NoError(err)
	suite.Equal(9, got.Views)
	suite.mockVideoRepo.AssertNotCalled(suite.T(), "IncrementViews", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestCreateVideo_StartsAsDraft() {
	ctx := context.Background()
	req := dto.CreateVideoRequest{VideoURL: "s3://videos/clip.mp4", Caption: "First clip"}

	suite.mockVideoRepo.On("Create", ctx, mock.MatchedBy(func(v domain.Video) bool {
		return v.Status == domain.StatusDraft && v.VideoURL == "s3://videos/clip.mp4" && v.AuthorID == "author-1"
	})).Return("video-1", nil).Once()

	video, err := suite.service.CreateVideo(ctx, req, suite.author)

	suite.Require().NoError(err)
	suite.Equal("video-1", video.ID)
}

func (suite *VideoServiceTestSuite) TestDeleteVideo_CascadesComments() {
	ctx := context.Background()
	video := &domain.Video{ID: "video-1", AuthorID: "author-1", Status: domain.StatusApproved}

	suite.mockVideoRepo.On("FindByID", ctx, "video-1").Return(video, nil).Once()
	suite.mockCommentRepo.On("DeleteByVideo", ctx, "video-1").Return(nil).Once()
	suite.mockVideoRepo.On("Delete", ctx, "video-1").Return(nil).Once()

	err := suite.service.DeleteVideo(ctx, "video-1", suite.author)

	suite.Require().NoError(err)
	suite.mockCommentRepo.AssertExpectations(suite.T())
}

func (suite *VideoServiceTestSuite) TestModerate_ApprovalDoesNotAwardPoint() {
	ctx := context.Background()
	video := &domain.Video{ID: "video-1", AuthorID: "author-1", Status: domain.StatusPending}
	admin := &domain.User{UserID: "admin-1", Role: domain.RoleAdmin}
	approved := true

	suite.mockVideoRepo.On("FindByID", ctx, "video-1").Return(video, nil).Once()
	suite.mockVideoRepo.On("Moderate", ctx, "video-1", true, "", mock.AnythingOfType("time.Time")).Return(true, nil).Once()

	err := suite.service.Moderate(ctx, "video-1", dto.ModerationRequest{Approved: &approved}, admin)

	suite.Require().NoError(err)
	// Only story approvals earn a point.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "AddPoints", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestGetVideo_NotFoundPassesThrough() {
	ctx := context.Background()
	suite.mockVideoRepo.On("FindByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetVideo(ctx, "missing", nil)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestVideoService(t *testing.T) {
	suite.Run(t, new(VideoServiceTestSuite))
}
