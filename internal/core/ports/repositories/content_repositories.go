package repositories

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

// StoryUpdate carries the updatable story fields. Nil pointers are left as-is.
type StoryUpdate struct {
	Title         *string
	Description   *string
	CoverImage    *string
	Tags          *[]string
	MatureContent *bool
}

// StoryRepository persists stories.
type StoryRepository interface {
	ContentEngagementRepository
	ContentModerationRepository
	ContentStatsRepository

	Create(ctx context.Context, story domain.Story) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Story, error)
	Update(ctx context.Context, id string, upd StoryUpdate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ContentFilter) ([]domain.Story, int64, error)
}

// VideoUpdate carries the updatable video fields.
type VideoUpdate struct {
	Caption       *string
	Tags          *[]string
	MatureContent *bool
}

// VideoRepository persists videos.
type VideoRepository interface {
	ContentEngagementRepository
	ContentModerationRepository
	ContentStatsRepository

	Create(ctx context.Context, video domain.Video) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	Update(ctx context.Context, id string, upd VideoUpdate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ContentFilter) ([]domain.Video, int64, error)
	// IncrementViews atomically bumps the view counter.
	IncrementViews(ctx context.Context, id string) error
}

// ShotUpdate carries the updatable shot fields.
type ShotUpdate struct {
	Caption       *string
	Tags          *[]string
	MatureContent *bool
}

// ShotRepository persists shots.
type ShotRepository interface {
	ContentEngagementRepository
	ContentModerationRepository
	ContentStatsRepository

	Create(ctx context.Context, shot domain.Shot) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Shot, error)
	Update(ctx context.Context, id string, upd ShotUpdate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ContentFilter) ([]domain.Shot, int64, error)
}

// ChapterUpdate carries the updatable chapter fields.
type ChapterUpdate struct {
	Title         *string
	Content       *string
	ChapterNumber *int
}

// ChapterRepository persists chapters.
type ChapterRepository interface {
	Create(ctx context.Context, chapter domain.Chapter) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Chapter, error)
	FindByStoryAndNumber(ctx context.Context, storyID string, number int) (*domain.Chapter, error)
	ListByStory(ctx context.Context, storyID string) ([]domain.Chapter, error)
	CountByStory(ctx context.Context, storyID string) (int, error)
	Update(ctx context.Context, id string, upd ChapterUpdate) error
	SetPublished(ctx context.Context, id string, published bool) error
	Delete(ctx context.Context, id string) error
	DeleteByStory(ctx context.Context, storyID string) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByTarget returns all comments attached to one content item, ordered by
	// created_at ascending (chapter comments by text_position ascending).
	ListByTarget(ctx context.Context, target domain.CommentTarget, targetID string) ([]domain.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	// Vote atomically increments the up or down counter.
	Vote(ctx context.Context, id string, up bool) error
	// ListChildIDs returns the direct reply IDs for the given parents.
	ListChildIDs(ctx context.Context, parentIDs []string) ([]string, error)
	// DeleteMany removes all comments with the given IDs.
	DeleteMany(ctx context.Context, ids []string) error
	DeleteByStory(ctx context.Context, storyID string) error
	DeleteByVideo(ctx context.Context, videoID string) error
	DeleteByChapter(ctx context.Context, chapterID string) error
	// SumLikesByUser totals like counts across a user's comments.
	SumLikesByUser(ctx context.Context, userID string) (int, error)
}
