package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/handlers"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

type MockStoryService struct {
	mock.Mock
}

func (m *MockStoryService) CreateStory(ctx context.Context, req dto.CreateStoryRequest, actor *domain.User) (*domain.Story, error) {
	args := m.Called(ctx, req, actor)
	if story, ok := args.Get(0).(*domain.Story); ok {
		return story, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryService) GetStory(ctx context.Context, id string, viewer *domain.User) (*domain.Story, error) {
	args := m.Called(ctx, id, viewer)
	if story, ok := args.Get(0).(*domain.Story); ok {
		return story, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryService) UpdateStory(ctx context.Context, id string, req dto.UpdateStoryRequest, actor *domain.User) (*domain.Story, error) {
	args := m.Called(ctx, id, req, actor)
	if story, ok := args.Get(0).(*domain.Story); ok {
		return story, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryService) DeleteStory(ctx context.Context, id string, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockStoryService) Submit(ctx context.Context, id string, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockStoryService) Moderate(ctx context.Context, id string, req dto.ModerationRequest, actor *domain.User) error {
	args := m.Called(ctx, id, req, actor)
	return args.Error(0)
}

func (m *MockStoryService) ToggleLike(ctx context.Context, id string, actor *domain.User) (*dto.LikeResponse, error) {
	args := m.Called(ctx, id, actor)
	if resp, ok := args.Get(0).(*dto.LikeResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryService) ListFeed(ctx context.Context, params dto.FeedParams) (*dto.StoryListResponse, error) {
	args := m.Called(ctx, params)
	if resp, ok := args.Get(0).(*dto.StoryListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryService) ListMine(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.StoryListResponse, error) {
	args := m.Called(ctx, actor, params)
	if resp, ok := args.Get(0).(*dto.StoryListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryService) ListByAuthor(ctx context.Context, authorID string, params dto.PaginationQuery) (*dto.StoryListResponse, error) {
	args := m.Called(ctx, authorID, params)
	if resp, ok := args.Get(0).(*dto.StoryListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoryService) ListPending(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.StoryListResponse, error) {
	args := m.Called(ctx, actor, params)
	if resp, ok := args.Get(0).(*dto.StoryListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ portssvc.StorySvcFacade = (*MockStoryService)(nil)

type MockChapterService struct {
	mock.Mock
}

func (m *MockChapterService) CreateChapter(ctx context.Context, storyID string, req dto.CreateChapterRequest, actor *domain.User) (*domain.Chapter, error) {
	args := m.Called(ctx, storyID, req, actor)
	if chapter, ok := args.Get(0).(*domain.Chapter); ok {
		return chapter, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChapterService) GetChapter(ctx context.Context, id string, viewer *domain.User) (*domain.Chapter, error) {
	args := m.Called(ctx, id, viewer)
	if chapter, ok := args.Get(0).(*domain.Chapter); ok {
		return chapter, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChapterService) ListChapters(ctx context.Context, storyID string, viewer *domain.User) (*dto.ChapterListResponse, error) {
	args := m.Called(ctx, storyID, viewer)
	if resp, ok := args.Get(0).(*dto.ChapterListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChapterService) UpdateChapter(ctx context.Context, id string, req dto.UpdateChapterRequest, actor *domain.User) (*domain.Chapter, error) {
	args := m.Called(ctx, id, req, actor)
	if chapter, ok := args.Get(0).(*domain.Chapter); ok {
		return chapter, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChapterService) SetPublished(ctx context.Context, id string, published bool, actor *domain.User) error {
	args := m.Called(ctx, id, published, actor)
	return args.Error(0)
}

func (m *MockChapterService) DeleteChapter(ctx context.Context, id string, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

var _ portssvc.ChapterSvcFacade = (*MockChapterService)(nil)

type StoryHandlerTestSuite struct {
	suite.Suite
	mockStories  *MockStoryService
	mockChapters *MockChapterService
	router       *gin.Engine

	// user is injected into requests in place of the auth middleware; tests
	// may swap it (or nil it) before issuing a request.
	user *domain.User
}

func (suite *StoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockStories = new(MockStoryService)
	suite.mockChapters = new(MockChapterService)
	suite.user = &domain.User{UserID: "user-1", Username: "alice", Role: domain.RoleUser}

	blobs, err := storage.NewLocalStore(suite.T().TempDir())
	suite.Require().NoError(err)
	h := handlers.NewStoryHandler(suite.mockStories, suite.mockChapters, blobs)

	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		if suite.user != nil {
			c.Request = c.Request.WithContext(middleware.WithUser(c.Request.Context(), suite.user))
		}
		c.Next()
	})
	stories := suite.router.Group("/api/v1/stories")
	{
		stories.GET("", h.ListFeed)
		stories.GET("/:id", h.Get)
		stories.POST("", h.Create)
		stories.POST("/:id/submit", h.Submit)
		stories.POST("/:id/moderate", h.Moderate)
		stories.POST("/:id/like", h.ToggleLike)
		stories.POST("/:id/chapters", h.CreateChapter)
	}
}

func (suite *StoryHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *StoryHandlerTestSuite) TestListFeed_AppliesQueryDefaults() {
	suite.mockStories.On("ListFeed", mock.Anything, mock.MatchedBy(func(params dto.FeedParams) bool {
		return params.Page == 1 && params.PageSize == 20 && params.Sort == "latest"
	})).Return(&dto.StoryListResponse{Stories: []domain.Story{{ID: "story-1"}}, Total: 1, Page: 1, PageSize: 20}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/stories", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StoryListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Stories, 1)
	suite.mockStories.AssertExpectations(suite.T())
}

func (suite *StoryHandlerTestSuite) TestListFeed_RejectsUnknownSort() {
	w := suite.do(http.MethodGet, "/api/v1/stories?sort=oldest", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStories.AssertNotCalled(suite.T(), "ListFeed", mock.Anything, mock.Anything)
}

func (suite *StoryHandlerTestSuite) TestGet_NotFoundBody() {
	suite.mockStories.On("GetStory", mock.Anything, "missing", suite.user).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/stories/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Resource not found", resp.Error)
}

func (suite *StoryHandlerTestSuite) TestCreate_Returns201() {
	suite.mockStories.On("CreateStory", mock.Anything, mock.MatchedBy(func(req dto.CreateStoryRequest) bool {
		return req.Title == "Night Train"
	}), suite.user).Return(&domain.Story{ID: "story-1", Title: "Night Train", Status: domain.StatusDraft}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/stories", dto.CreateStoryRequest{Title: "Night Train"})

	suite.Equal(http.StatusCreated, w.Code)
	var story domain.Story
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &story))
	suite.Equal("story-1", story.ID)
}

func (suite *StoryHandlerTestSuite) TestCreate_MissingTitleRejected() {
	w := suite.do(http.MethodPost, "/api/v1/stories", map[string]any{"description": "no title"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStories.AssertNotCalled(suite.T(), "CreateStory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StoryHandlerTestSuite) TestCreate_UnauthenticatedRejected() {
	suite.user = nil

	w := suite.do(http.MethodPost, "/api/v1/stories", dto.CreateStoryRequest{Title: "Night Train"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockStories.AssertNotCalled(suite.T(), "CreateStory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StoryHandlerTestSuite) TestSubmit_BadRequestWhenNotSubmittable() {
	suite.mockStories.On("Submit", mock.Anything, "story-1", suite.user).Return(apperrors.ErrInvalidTransition).Once()

	w := suite.do(http.MethodPost, "/api/v1/stories/story-1/submit", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *StoryHandlerTestSuite) TestModerate_DecisionRequired() {
	w := suite.do(http.MethodPost, "/api/v1/stories/story-1/moderate", map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStories.AssertNotCalled(suite.T(), "Moderate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StoryHandlerTestSuite) TestToggleLike_ReturnsState() {
	suite.mockStories.On("ToggleLike", mock.Anything, "story-1", suite.user).
		Return(&dto.LikeResponse{Liked: true, Likes: 5}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/stories/story-1/like", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LikeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Liked)
	suite.Equal(5, resp.Likes)
}

func (suite *StoryHandlerTestSuite) TestCreateChapter_Returns201() {
	suite.mockChapters.On("CreateChapter", mock.Anything, "story-1", mock.MatchedBy(func(req dto.CreateChapterRequest) bool {
		return req.Title == "One"
	}), suite.user).Return(&domain.Chapter{ID: "ch-1", StoryID: "story-1", ChapterNumber: 1}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/stories/story-1/chapters", dto.CreateChapterRequest{Title: "One", Content: "It began at dusk."})

	suite.Equal(http.StatusCreated, w.Code)
	var chapter domain.Chapter
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &chapter))
	suite.Equal("ch-1", chapter.ID)
}

func TestStoryHandler(t *testing.T) {
	suite.Run(t, new(StoryHandlerTestSuite))
}
