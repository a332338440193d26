package services

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
)

// ChapterSvcFacade manages a story's chapters. Chapter numbers are unique per
// story; unnumbered chapters append after the current highest number.
type ChapterSvcFacade interface {
	CreateChapter(ctx context.Context, storyID string, req dto.CreateChapterRequest, actor *domain.User) (*domain.Chapter, error)

	// GetChapter applies the parent story's visibility rule; unpublished
	// chapters are only shown to the author or an admin.
	GetChapter(ctx context.Context, id string, viewer *domain.User) (*domain.Chapter, error)

	// ListChapters returns a story's chapters in reading order, filtered to
	// published ones for viewers without author access.
	ListChapters(ctx context.Context, storyID string, viewer *domain.User) (*dto.ChapterListResponse, error)

	UpdateChapter(ctx context.Context, id string, req dto.UpdateChapterRequest, actor *domain.User) (*domain.Chapter, error)
	SetPublished(ctx context.Context, id string, published bool, actor *domain.User) error

	// DeleteChapter removes the chapter and its comment threads.
	DeleteChapter(ctx context.Context, id string, actor *domain.User) error
}
