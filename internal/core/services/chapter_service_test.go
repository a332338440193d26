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

type ChapterServiceTestSuite struct {
	suite.Suite
	mockChapterRepo *MockChapterRepository
	mockStoryRepo   *MockStoryRepository
	mockCommentRepo *MockCommentRepository
	service         *services.ChapterService

	author *domain.User
	other  *domain.User
}

func (suite *ChapterServiceTestSuite) SetupTest() {
	suite.mockChapterRepo = new(MockChapterRepository)
	suite.mockStoryRepo = new(MockStoryRepository)
	suite.mockCommentRepo = new(MockCommentRepository)
	suite.service = services.NewChapterService(suite.mockChapterRepo, suite.mockStoryRepo, suite.mockCommentRepo)

	suite.author = &domain.User{UserID: "author-1", Role: domain.RoleUser}
	suite.other = &domain.User{UserID: "other-1", Role: domain.RoleUser}
}

func (suite *ChapterServiceTestSuite) story(status domain.ModerationStatus) *domain.Story {
	return &domain.Story{ID: "story-1", AuthorID: "author-1", Status: status}
}

func (suite *ChapterServiceTestSuite) TestCreateChapter_AppendsAfterHighestNumber() {
	ctx := context.Background()
	existing := []domain.Chapter{
		{ID: "ch-1", StoryID: "story-1", ChapterNumber: 1},
		{ID: "ch-3", StoryID: "story-1", ChapterNumber: 3},
	}

	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusDraft), nil).Once()
	suite.mockChapterRepo.On("ListByStory", ctx, "story-1").Return(existing, nil).Once()
	suite.mockChapterRepo.On("Create", ctx, mock.MatchedBy(func(ch domain.Chapter) bool {
		return ch.StoryID == "story-1" && ch.ChapterNumber == 4 && !ch.Published
	})).Return("ch-4", nil).Once()

	chapter, err := suite.service.CreateChapter(ctx, "story-1", dto.CreateChapterRequest{Title: "Four", Content: "..."}, suite.author)

	suite.Require().NoError(err)
	suite.Equal(4, chapter.ChapterNumber)
}

func (suite *ChapterServiceTestSuite) TestCreateChapter_RequestedNumberMustBeFree() {
	ctx := context.Background()
	taken := 2
	existing := &domain.Chapter{ID: "ch-2", StoryID: "story-1", ChapterNumber: 2}

	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusDraft), nil).Once()
	suite.mockChapterRepo.On("FindByStoryAndNumber", ctx, "story-1", 2).Return(existing, nil).Once()

	_, err := suite.service.CreateChapter(ctx, "story-1", dto.CreateChapterRequest{Title: "Two", Content: "...", ChapterNumber: &taken}, suite.author)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockChapterRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ChapterServiceTestSuite) TestCreateChapter_NonAuthorForbidden() {
	ctx := context.Background()
	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusDraft), nil).Once()

	_, err := suite.service.CreateChapter(ctx, "story-1", dto.CreateChapterRequest{Title: "X", Content: "..."}, suite.other)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ChapterServiceTestSuite) TestGetChapter_UnpublishedAuthorOnly() {
	ctx := context.Background()
	chapter := &domain.Chapter{ID: "ch-1", StoryID: "story-1", Published: false}

	suite.mockChapterRepo.On("FindByID", ctx, "ch-1").Return(chapter, nil)
	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusApproved), nil)

	_, err := suite.service.GetChapter(ctx, "ch-1", suite.other)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)

	got, err := suite.service.GetChapter(ctx, "ch-1", suite.author)
	suite.Require().NoError(err)
	suite.Equal("ch-1", got.ID)
}

func (suite *ChapterServiceTestSuite) TestListChapters_FiltersUnpublishedForReaders() {
	ctx := context.Background()
	chapters := []domain.Chapter{
		{ID: "ch-1", StoryID: "story-1", ChapterNumber: 1, Published: true},
		{ID: "ch-2", StoryID: "story-1", ChapterNumber: 2, Published: false},
	}

	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusApproved), nil)
	suite.mockChapterRepo.On("ListByStory", ctx, "story-1").Return(chapters, nil)

	resp, err := suite.service.ListChapters(ctx, "story-1", nil)
	suite.Require().NoError(err)
	suite.Len(resp.Chapters, 1)

	resp, err = suite.service.ListChapters(ctx, "story-1", suite.author)
	suite.Require().NoError(err)
	suite.Len(resp.Chapters, 2)
}

func (suite *ChapterServiceTestSuite) TestUpdateChapter_NumberCollisionRejected() {
	ctx := context.Background()
	chapter := &domain.Chapter{ID: "ch-1", StoryID: "story-1", ChapterNumber: 1}
	occupying := &domain.Chapter{ID: "ch-2", StoryID: "story-1", ChapterNumber: 2}
	newNumber := 2

	suite.mockChapterRepo.On("FindByID", ctx, "ch-1").Return(chapter, nil).Once()
	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusDraft), nil).Once()
	suite.mockChapterRepo.On("FindByStoryAndNumber", ctx, "story-1", 2).Return(occupying, nil).Once()

	_, err := suite.service.UpdateChapter(ctx, "ch-1", dto.UpdateChapterRequest{ChapterNumber: &newNumber}, suite.author)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockChapterRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChapterServiceTestSuite) TestSetPublished_TogglesFlag() {
	ctx := context.Background()
	chapter := &domain.Chapter{ID: "ch-1", StoryID: "story-1", Published: false}

	suite.mockChapterRepo.On("FindByID", ctx, "ch-1").Return(chapter, nil).Once()
	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusApproved), nil).Once()
	suite.mockChapterRepo.On("SetPublished", ctx, "ch-1", true).Return(nil).Once()

	err := suite.service.SetPublished(ctx, "ch-1", true, suite.author)

	suite.Require().NoError(err)
	suite.mockChapterRepo.AssertExpectations(suite.T())
}

func (suite *ChapterServiceTestSuite) TestDeleteChapter_RemovesCommentsFirst() {
	ctx := context.Background()
	chapter := &domain.Chapter{ID: "ch-1", StoryID: "story-1"}

	suite.mockChapterRepo.On("FindByID", ctx, "ch-1").Return(chapter, nil).Once()
	suite.mockStoryRepo.On("FindByID", ctx, "story-1").Return(suite.story(domain.StatusDraft), nil).Once()
	suite.mockCommentRepo.On("DeleteByChapter", ctx, "ch-1").Return(nil).Once()
	suite.mockChapterRepo.On("Delete", ctx, "ch-1").Return(nil).Once()

	err := suite.service.DeleteChapter(ctx, "ch-1", suite.author)

	suite.Require().NoError(err)
	suite.mockCommentRepo.AssertExpectations(suite.T())
}

func TestChapterService(t *testing.T) {
	suite.Run(t, new(ChapterServiceTestSuite))
}
