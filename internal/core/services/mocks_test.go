package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByAnonymousName(ctx context.Context, anonymousName string) (*domain.User, error) {
	args := m.Called(ctx, anonymousName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetPoints(ctx context.Context, userID string, points int) error {
	return m.Called(ctx, userID, points).Error(0)
}

func (m *MockUserRepository) AddPoints(ctx context.Context, userID string, delta int) error {
	return m.Called(ctx, userID, delta).Error(0)
}

func (m *MockUserRepository) SetReferralCode(ctx context.Context, userID, code string) error {
	return m.Called(ctx, userID, code).Error(0)
}

func (m *MockUserRepository) IncrementReferralCount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ListTopByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock RefreshTokenRepository ---
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Insert(ctx context.Context, token domain.RefreshToken) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByUsername(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRefreshTokenRepository) FindByUsernameAndToken(ctx context.Context, username, token string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, username, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) FindLiveByUsername(ctx context.Context, username string, now time.Time) (*domain.RefreshToken, error) {
	args := m.Called(ctx, username, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Rotate(ctx context.Context, id, newToken string, expiresAt, lastActivity time.Time) error {
	return m.Called(ctx, id, newToken, expiresAt, lastActivity).Error(0)
}

func (m *MockRefreshTokenRepository) TouchActivity(ctx context.Context, username string, at time.Time) error {
	return m.Called(ctx, username, at).Error(0)
}

var _ portsrepo.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

// --- Mock OTPRepository ---
type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) Insert(ctx context.Context, otp domain.OTP) (string, error) {
	args := m.Called(ctx, otp)
	return args.String(0), args.Error(1)
}

func (m *MockOTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockOTPRepository) FindLive(ctx context.Context, email, code string, now time.Time) (*domain.OTP, error) {
	args := m.Called(ctx, email, code, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTP), args.Error(1)
}

func (m *MockOTPRepository) MarkUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ portsrepo.OTPRepository = (*MockOTPRepository)(nil)

// --- Shared content repo mock pieces (likes, moderation, stats) ---
type mockContentCommon struct {
	mock.Mock
}

func (m *mockContentCommon) AddLike(ctx context.Context, id, userID string) (int, bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *mockContentCommon) RemoveLike(ctx context.Context, id, userID string) (int, bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *mockContentCommon) ListLikedIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockContentCommon) SubmitForReview(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockContentCommon) Moderate(ctx context.Context, id string, approved bool, reason string, publishedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, approved, reason, publishedAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockContentCommon) CountByAuthor(ctx context.Context, authorID string, status domain.ModerationStatus) (int, error) {
	args := m.Called(ctx, authorID, status)
	return args.Int(0), args.Error(1)
}

func (m *mockContentCommon) SumLikesByAuthor(ctx context.Context, authorID string) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

// --- Mock StoryRepository ---
type MockStoryRepository struct {
	mockContentCommon
}

func (m *MockStoryRepository) Create(ctx context.Context, story domain.Story) (string, error) {
	args := m.Called(ctx, story)
	return args.String(0), args.Error(1)
}

func (m *MockStoryRepository) FindByID(ctx context.Context, id string) (*domain.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Story), args.Error(1)
}

func (m *MockStoryRepository) Update(ctx context.Context, id string, upd portsrepo.StoryUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockStoryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStoryRepository) List(ctx context.Context, filter portsrepo.ContentFilter) ([]domain.Story, int64, error) {
	args := m.Called(ctx, filter)
	var stories []domain.Story
	if args.Get(0) != nil {
		stories = args.Get(0).([]domain.Story)
	}
	return stories, args.Get(1).(int64), args.Error(2)
}

var _ portsrepo.StoryRepository = (*MockStoryRepository)(nil)

// --- Mock VideoRepository ---
type MockVideoRepository struct {
	mockContentCommon
}

func (m *MockVideoRepository) Create(ctx context.Context, video domain.Video) (string, error) {
	args := m.Called(ctx, video)
	return args.String(0), args.Error(1)
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoRepository) Update(ctx context.Context, id string, upd portsrepo.VideoUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoRepository) List(ctx context.Context, filter portsrepo.ContentFilter) ([]domain.Video, int64, error) {
	args := m.Called(ctx, filter)
	var videos []domain.Video
	if args.Get(0) != nil {
		videos = args.Get(0).([]domain.Video)
	}
	return videos, args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ portsrepo.VideoRepository = (*MockVideoRepository)(nil)

// --- Mock ShotRepository ---
type MockShotRepository struct {
	mockContentCommon
}

func (m *MockShotRepository) Create(ctx context.Context, shot domain.Shot) (string, error) {
	args := m.Called(ctx, shot)
	return args.String(0), args.Error(1)
}

func (m *MockShotRepository) FindByID(ctx context.Context, id string) (*domain.Shot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shot), args.Error(1)
}

func (m *MockShotRepository) Update(ctx context.Context, id string, upd portsrepo.ShotUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockShotRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShotRepository) List(ctx context.Context, filter portsrepo.ContentFilter) ([]domain.Shot, int64, error) {
	args := m.Called(ctx, filter)
	var shots []domain.Shot
	if args.Get(0) != nil {
		shots = args.Get(0).([]domain.Shot)
	}
	return shots, args.Get(1).(int64), args.Error(2)
}

var _ portsrepo.ShotRepository = (*MockShotRepository)(nil)

// --- Mock ChapterRepository ---
type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) Create(ctx context.Context, chapter domain.Chapter) (string, error) {
	args := m.Called(ctx, chapter)
	return args.String(0), args.Error(1)
}

func (m *MockChapterRepository) FindByID(ctx context.Context, id string) (*domain.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chapter), args.Error(1)
}

func (m *MockChapterRepository) FindByStoryAndNumber(ctx context.Context, storyID string, number int) (*domain.Chapter, error) {
	args := m.Called(ctx, storyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chapter), args.Error(1)
}

func (m *MockChapterRepository) ListByStory(ctx context.Context, storyID string) ([]domain.Chapter, error) {
	args := m.Called(ctx, storyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Chapter), args.Error(1)
}

func (m *MockChapterRepository) CountByStory(ctx context.Context, storyID string) (int, error) {
	args := m.Called(ctx, storyID)
	return args.Int(0), args.Error(1)
}

func (m *MockChapterRepository) Update(ctx context.Context, id string, upd portsrepo.ChapterUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockChapterRepository) SetPublished(ctx context.Context, id string, published bool) error {
	return m.Called(ctx, id, published).Error(0)
}

func (m *MockChapterRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockChapterRepository) DeleteByStory(ctx context.Context, storyID string) error {
	return m.Called(ctx, storyID).Error(0)
}

var _ portsrepo.ChapterRepository = (*MockChapterRepository)(nil)

// --- Mock CommentRepository ---
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment domain.Comment) (string, error) {
	args := m.Called(ctx, comment)
	return args.String(0), args.Error(1)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByTarget(ctx context.Context, target domain.CommentTarget, targetID string) ([]domain.Comment, error) {
	args := m.Called(ctx, target, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	return m.Called(ctx, id, content).Error(0)
}

func (m *MockCommentRepository) Vote(ctx context.Context, id string, up bool) error {
	return m.Called(ctx, id, up).Error(0)
}

func (m *MockCommentRepository) ListChildIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCommentRepository) DeleteMany(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockCommentRepository) DeleteByStory(ctx context.Context, storyID string) error {
	return m.Called(ctx, storyID).Error(0)
}

func (m *MockCommentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	return m.Called(ctx, videoID).Error(0)
}

func (m *MockCommentRepository) DeleteByChapter(ctx context.Context, chapterID string) error {
	return m.Called(ctx, chapterID).Error(0)
}

func (m *MockCommentRepository) SumLikesByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ portsrepo.CommentRepository = (*MockCommentRepository)(nil)
