package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
)

type ChapterService struct {
	chapterRepo portsrepo.ChapterRepository
	storyRepo   portsrepo.StoryRepository
	commentRepo portsrepo.CommentRepository
}

func NewChapterService(chapterRepo portsrepo.ChapterRepository, storyRepo portsrepo.StoryRepository, commentRepo portsrepo.CommentRepository) *ChapterService {
	return &ChapterService{chapterRepo: chapterRepo, storyRepo: storyRepo, commentRepo: commentRepo}
}

// canManageChapters reports whether the actor may edit the story's chapters.
func canManageChapters(story *domain.Story, actor *domain.User) error {
	return authorizeOwner(story.AuthorID, actor)
}

func (s *ChapterService) CreateChapter(ctx context.Context, storyID string, req dto.CreateChapterRequest, actor *domain.User) (*domain.Chapter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if err := canManageChapters(story, actor); err != nil {
		return nil, err
	}

	number, err := s.resolveChapterNumber(ctx, storyID, req.ChapterNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	chapter := domain.Chapter{
		StoryID:       storyID,
		Title:         req.Title,
		Content:       req.Content,
		ChapterNumber: number,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	id, err := s.chapterRepo.Create(ctx, chapter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to create chapter", slog.String("error", err.Error()), slog.String("story_id", storyID))
		}
		return nil, err
	}
	chapter.ID = id

	logger.Info("Chapter created", slog.String("chapter_id", id), slog.String("story_id", storyID), slog.Int("number", number))
	return &chapter, nil
}

// resolveChapterNumber validates a requested number for uniqueness or appends
// after the story's current highest number.
func (s *ChapterService) resolveChapterNumber(ctx context.Context, storyID string, requested *int) (int, error) {
	if requested != nil {
		_, err := s.chapterRepo.FindByStoryAndNumber(ctx, storyID, *requested)
		if err == nil {
			return 0, fmt.Errorf("%w: chapter number %d already exists", apperrors.ErrDuplicate, *requested)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return 0, err
		}
		return *requested, nil
	}

	chapters, err := s.chapterRepo.ListByStory(ctx, storyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list chapters: %w", err)
	}
	max := 0
	for _, ch := range chapters {
		if ch.ChapterNumber > max {
			max = ch.ChapterNumber
		}
	}
	return max + 1, nil
}

func (s *ChapterService) GetChapter(ctx context.Context, id string, viewer *domain.User) (*domain.Chapter, error) {
	chapter, err := s.chapterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	story, err := s.storyRepo.FindByID(ctx, chapter.StoryID)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(story.Status, story.AuthorID, viewer); err != nil {
		return nil, err
	}
	// Unpublished chapters stay author-only even on approved stories.
	if !chapter.Published {
		if viewer == nil || (viewer.UserID != story.AuthorID && !viewer.IsAdmin()) {
			return nil, apperrors.ErrNotFound
		}
	}
	return chapter, nil
}

func (s *ChapterService) ListChapters(ctx context.Context, storyID string, viewer *domain.User) (*dto.ChapterListResponse, error) {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(story.Status, story.AuthorID, viewer); err != nil {
		return nil, err
	}

	chapters, err := s.chapterRepo.ListByStory(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	ownerView := viewer != nil && (viewer.UserID == story.AuthorID || viewer.IsAdmin())
	if !ownerView {
		published := make([]domain.Chapter, 0, len(chapters))
		for _, ch := range chapters {
			if ch.Published {
				published = append(published, ch)
			}
		}
		chapters = published
	}

	return &dto.ChapterListResponse{StoryID: storyID, Chapters: chapters}, nil
}

func (s *ChapterService) UpdateChapter(ctx context.Context, id string, req dto.UpdateChapterRequest, actor *domain.User) (*domain.Chapter, error) {
	chapter, err := s.chapterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	story, err := s.storyRepo.FindByID(ctx, chapter.StoryID)
	if err != nil {
		return nil, err
	}
	if err := canManageChapters(story, actor); err != nil {
		return nil, err
	}

	if req.ChapterNumber != nil && *req.ChapterNumber != chapter.ChapterNumber {
		existing, err := s.chapterRepo.FindByStoryAndNumber(ctx, chapter.StoryID, *req.ChapterNumber)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: chapter number %d already exists", apperrors.ErrDuplicate, *req.ChapterNumber)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	upd := portsrepo.ChapterUpdate{
		Title:         req.Title,
		Content:       req.Content,
		ChapterNumber: req.ChapterNumber,
	}
	if err := s.chapterRepo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.chapterRepo.FindByID(ctx, id)
}

func (s *ChapterService) SetPublished(ctx context.Context, id string, published bool, actor *domain.User) error {
	chapter, err := s.chapterRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	story, err := s.storyRepo.FindByID(ctx, chapter.StoryID)
	if err != nil {
		return err
	}
	if err := canManageChapters(story, actor); err != nil {
		return err
	}

	if err := s.chapterRepo.SetPublished(ctx, id, published); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Chapter publish state changed", slog.String("chapter_id", id), slog.Bool("published", published))
	return nil
}

func (s *ChapterService) DeleteChapter(ctx context.Context, id string, actor *domain.User) error {
	chapter, err := s.chapterRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	story, err := s.storyRepo.FindByID(ctx, chapter.StoryID)
	if err != nil {
		return err
	}
	if err := canManageChapters(story, actor); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByChapter(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chapter comments: %w", err)
	}
	if err := s.chapterRepo.Delete(ctx, id); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Chapter deleted", slog.String("chapter_id", id), slog.String("story_id", chapter.StoryID))
	return nil
}
