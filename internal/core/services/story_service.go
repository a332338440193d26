package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
)

type StoryService struct {
	storyRepo   portsrepo.StoryRepository
	chapterRepo portsrepo.ChapterRepository
	commentRepo portsrepo.CommentRepository
	userRepo    portsrepo.UserRepository
}

func NewStoryService(storyRepo portsrepo.StoryRepository, chapterRepo portsrepo.ChapterRepository, commentRepo portsrepo.CommentRepository, userRepo portsrepo.UserRepository) *StoryService {
	return &StoryService{storyRepo: storyRepo, chapterRepo: chapterRepo, commentRepo: commentRepo, userRepo: userRepo}
}

func (s *StoryService) CreateStory(ctx context.Context, req dto.CreateStoryRequest, actor *domain.User) (*domain.Story, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	story := domain.Story{
		Title:               req.Title,
		Description:         req.Description,
		CoverImage:          req.CoverImage,
		Tags:                req.Tags,
		MatureContent:       req.MatureContent,
		AuthorID:            actor.UserID,
		AuthorAnonymousName: actor.AnonymousName,
		Status:              domain.StatusDraft,
		LikedBy:             []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if story.Tags == nil {
		story.Tags = []string{}
	}

	id, err := s.storyRepo.Create(ctx, story)
	if err != nil {
		logger.Error("Failed to create story", slog.String("error", err.Error()))
		return nil, err
	}
	story.ID = id

	logger.Info("Story created", slog.String("story_id", id), slog.String("author_id", actor.UserID))
	return &story, nil
}

func (s *StoryService) GetStory(ctx context.Context, id string, viewer *domain.User) (*domain.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(story.Status, story.AuthorID, viewer); err != nil {
		return nil, err
	}
	count, err := s.chapterRepo.CountByStory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count chapters: %w", err)
	}
	story.ChapterCount = count
	return story, nil
}

// fillChapterCounts decorates listed stories with their chapter counts.
func (s *StoryService) fillChapterCounts(ctx context.Context, stories []domain.Story) error {
	for i := range stories {
		count, err := s.chapterRepo.CountByStory(ctx, stories[i].ID)
		if err != nil {
			return fmt.Errorf("failed to count chapters: %w", err)
		}
		stories[i].ChapterCount = count
	}
	return nil
}

func (s *StoryService) UpdateStory(ctx context.Context, id string, req dto.UpdateStoryRequest, actor *domain.User) (*domain.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(story.AuthorID, actor); err != nil {
		return nil, err
	}

	upd := portsrepo.StoryUpdate{
		Title:         req.Title,
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		Tags:          req.Tags,
		MatureContent: req.MatureContent,
	}
	if err := s.storyRepo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.storyRepo.FindByID(ctx, id)
}

// DeleteStory removes the story together with its chapters and every comment
// thread attached to the story or its chapters.
func (s *StoryService) DeleteStory(ctx context.Context, id string, actor *domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(story.AuthorID, actor); err != nil {
		return err
	}

	chapters, err := s.chapterRepo.ListByStory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list chapters: %w", err)
	}
	for _, ch := range chapters {
		if err := s.commentRepo.DeleteByChapter(ctx, ch.ID); err != nil {
			return fmt.Errorf("failed to delete chapter comments: %w", err)
		}
	}
	if err := s.chapterRepo.DeleteByStory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chapters: %w", err)
	}
	if err := s.commentRepo.DeleteByStory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	if err := s.storyRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Story deleted", slog.String("story_id", id), slog.Int("chapters", len(chapters)))
	return nil
}

func (s *StoryService) Submit(ctx context.Context, id string, actor *domain.User) error {
	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeSubmit(story.AuthorID, story.Status, actor); err != nil {
		return err
	}

	matched, err := s.storyRepo.SubmitForReview(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		// Status changed underneath us between the read and the update.
		return fmt.Errorf("%w: story is no longer submittable", apperrors.ErrInvalidTransition)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Story submitted for review", slog.String("story_id", id))
	return nil
}

func (s *StoryService) Moderate(ctx context.Context, id string, req dto.ModerationRequest, actor *domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeModerate(story.Status, actor); err != nil {
		return err
	}

	approved := *req.Approved
	matched, err := s.storyRepo.Moderate(ctx, id, approved, moderationReason(req), time.Now())
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: story is not pending review", apperrors.ErrInvalidTransition)
	}

	if approved {
		// Approved stories are worth one point to their author.
		if err := s.userRepo.AddPoints(ctx, story.AuthorID, 1); err != nil {
			logger.Error("Failed to add approval point", slog.String("error", err.Error()), slog.String("author_id", story.AuthorID))
		}
	}

	logger.Info("Story moderated", slog.String("story_id", id), slog.Bool("approved", approved), slog.String("moderator_id", actor.UserID))
	return nil
}

func (s *StoryService) ToggleLike(ctx context.Context, id string, actor *domain.User) (*dto.LikeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	story, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(story.Status, story.AuthorID, actor); err != nil {
		return nil, err
	}

	likes, changed, err := s.storyRepo.AddLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Already liked: the toggle removes it.
		likes, _, err = s.storyRepo.RemoveLike(ctx, id, actor.UserID)
		if err != nil {
			return nil, err
		}
		return &dto.LikeResponse{Liked: false, Likes: likes}, nil
	}

	if likes > 0 && likes%likeMilestone == 0 {
		if err := s.userRepo.AddPoints(ctx, story.AuthorID, 1); err != nil {
			logger.Error("Failed to award like milestone point", slog.String("error", err.Error()), slog.String("author_id", story.AuthorID))
		} else {
			logger.Info("Like milestone reached", slog.String("story_id", id), slog.Int("likes", likes))
		}
	}
	return &dto.LikeResponse{Liked: true, Likes: likes}, nil
}

func (s *StoryService) ListFeed(ctx context.Context, params dto.FeedParams) (*dto.StoryListResponse, error) {
	filter := feedFilter(params)
	stories, total, err := s.storyRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	if err := s.fillChapterCounts(ctx, stories); err != nil {
		return nil, err
	}
	return &dto.StoryListResponse{Stories: stories, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// ListByAuthor returns an author's approved stories for public profile pages.
func (s *StoryService) ListByAuthor(ctx context.Context, authorID string, params dto.PaginationQuery) (*dto.StoryListResponse, error) {
	page, size := normalizePage(params)
	filter := portsrepo.ContentFilter{AuthorID: authorID, Status: domain.StatusApproved, Page: page, PageSize: size, SortField: "published_at", SortDesc: true}
	stories, total, err := s.storyRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list author stories: %w", err)
	}
	if err := s.fillChapterCounts(ctx, stories); err != nil {
		return nil, err
	}
	return &dto.StoryListResponse{Stories: stories, Total: total, Page: page, PageSize: size}, nil
}

func (s *StoryService) ListMine(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.StoryListResponse, error) {
	page, size := normalizePage(params)
	filter := portsrepo.ContentFilter{AuthorID: actor.UserID, Page: page, PageSize: size, SortField: "created_at", SortDesc: true}
	stories, total, err := s.storyRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list own stories: %w", err)
	}
	if err := s.fillChapterCounts(ctx, stories); err != nil {
		return nil, err
	}
	return &dto.StoryListResponse{Stories: stories, Total: total, Page: page, PageSize: size}, nil
}

func (s *StoryService) ListPending(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.StoryListResponse, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", apperrors.ErrForbidden)
	}
	page, size := normalizePage(params)
	filter := portsrepo.ContentFilter{Status: domain.StatusPending, Page: page, PageSize: size, SortField: "created_at"}
	stories, total, err := s.storyRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending stories: %w", err)
	}
	return &dto.StoryListResponse{Stories: stories, Total: total, Page: page, PageSize: size}, nil
}
