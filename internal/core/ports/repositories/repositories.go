// Package repositories defines the persistence contracts the services depend on.
// Implementations live under internal/repositories/database.
package repositories

import (
	"context"
	"time"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

// RepositoryProvider bundles all repository implementations for wiring into
// the service container.
type RepositoryProvider struct {
	UserRepo         UserRepository
	RefreshTokenRepo RefreshTokenRepository
	OTPRepo          OTPRepository
	StoryRepo        StoryRepository
	VideoRepo        VideoRepository
	ShotRepo         ShotRepository
	ChapterRepo      ChapterRepository
	CommentRepo      CommentRepository
}

// ContentFilter narrows content listings. Zero values mean "no constraint".
type ContentFilter struct {
	AuthorID string
	Status   domain.ModerationStatus
	Search   string
	Page     int
	PageSize int
	// SortField is a document field name; SortDesc orders descending.
	SortField string
	SortDesc  bool
}

// ContentEngagementRepository covers the atomic like-set operations shared by
// stories, videos and shots. Both calls return the new like total and whether
// set membership actually changed (toggles are idempotent per user).
type ContentEngagementRepository interface {
	AddLike(ctx context.Context, id, userID string) (int, bool, error)
	RemoveLike(ctx context.Context, id, userID string) (int, bool, error)
	ListLikedIDs(ctx context.Context, userID string) ([]string, error)
}

// ContentModerationRepository covers conditional moderation transitions. Both
// calls are all-or-nothing: they match only documents in a legal source state
// and report false when no document matched.
type ContentModerationRepository interface {
	SubmitForReview(ctx context.Context, id string) (bool, error)
	Moderate(ctx context.Context, id string, approved bool, reason string, publishedAt time.Time) (bool, error)
}

// ContentStatsRepository covers the aggregations the points layer runs.
type ContentStatsRepository interface {
	CountByAuthor(ctx context.Context, authorID string, status domain.ModerationStatus) (int, error)
	SumLikesByAuthor(ctx context.Context, authorID string) (int, error)
}
