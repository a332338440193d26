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

type CommentService struct {
	commentRepo portsrepo.CommentRepository
	storyRepo   portsrepo.StoryRepository
	videoRepo   portsrepo.VideoRepository
	chapterRepo portsrepo.ChapterRepository
}

func NewCommentService(commentRepo portsrepo.CommentRepository, storyRepo portsrepo.StoryRepository, videoRepo portsrepo.VideoRepository, chapterRepo portsrepo.ChapterRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, storyRepo: storyRepo, videoRepo: videoRepo, chapterRepo: chapterRepo}
}

// requireTargetVisible checks that the comment target exists and is visible to
// the viewer. The visibility gate lives here; individual comments inherit it.
func (s *CommentService) requireTargetVisible(ctx context.Context, target domain.CommentTarget, targetID string, viewer *domain.User) error {
	switch target {
	case domain.CommentOnStory:
		story, err := s.storyRepo.FindByID(ctx, targetID)
		if err != nil {
			return err
		}
		return requireVisible(story.Status, story.AuthorID, viewer)
	case domain.CommentOnVideo:
		video, err := s.videoRepo.FindByID(ctx, targetID)
		if err != nil {
			return err
		}
		return requireVisible(video.Status, video.AuthorID, viewer)
	case domain.CommentOnChapter:
		chapter, err := s.chapterRepo.FindByID(ctx, targetID)
		if err != nil {
			return err
		}
		story, err := s.storyRepo.FindByID(ctx, chapter.StoryID)
		if err != nil {
			return err
		}
		if err := requireVisible(story.Status, story.AuthorID, viewer); err != nil {
			return err
		}
		if !chapter.Published {
			if viewer == nil || (viewer.UserID != story.AuthorID && !viewer.IsAdmin()) {
				return apperrors.ErrNotFound
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown comment target %q", apperrors.ErrValidation, target)
	}
}

func (s *CommentService) CreateComment(ctx context.Context, target domain.CommentTarget, targetID string, req dto.CreateCommentRequest, actor *domain.User) (*domain.Comment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireTargetVisible(ctx, target, targetID, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := domain.Comment{
		Content:       req.Content,
		UserID:        actor.UserID,
		AnonymousName: actor.AnonymousName,
		LikedBy:       []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch target {
	case domain.CommentOnStory:
		comment.StoryID = targetID
	case domain.CommentOnVideo:
		comment.VideoID = targetID
	case domain.CommentOnChapter:
		comment.ChapterID = targetID
		// Text anchors only make sense on chapter text.
		comment.SelectedText = req.SelectedText
		comment.TextPosition = req.TextPosition
	}

	if req.ParentCommentID != "" {
		parent, err := s.commentRepo.FindByID(ctx, req.ParentCommentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent comment not found", apperrors.ErrValidation)
		}
		if !sameTarget(parent, target, targetID) {
			return nil, fmt.Errorf("%w: parent comment belongs to a different target", apperrors.ErrValidation)
		}
		comment.ParentCommentID = parent.ID
	}

	id, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		logger.Error("Failed to create comment", slog.String("error", err.Error()))
		return nil, err
	}
	comment.ID = id

	logger.Info("Comment created", slog.String("comment_id", id), slog.String("target", string(target)), slog.String("target_id", targetID))
	return &comment, nil
}

func sameTarget(c *domain.Comment, target domain.CommentTarget, targetID string) bool {
	switch target {
	case domain.CommentOnStory:
		return c.StoryID == targetID
	case domain.CommentOnVideo:
		return c.VideoID == targetID
	case domain.CommentOnChapter:
		return c.ChapterID == targetID
	}
	return false
}

func (s *CommentService) GetCommentTree(ctx context.Context, target domain.CommentTarget, targetID string, viewer *domain.User) (*dto.CommentTreeResponse, error) {
	if err := s.requireTargetVisible(ctx, target, targetID, viewer); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTarget(ctx, target, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &dto.CommentTreeResponse{
		Comments: domain.BuildCommentTree(comments),
		Total:    len(comments),
	}, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, id string, req dto.UpdateCommentRequest, actor *domain.User) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil || comment.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: not the comment author", apperrors.ErrForbidden)
	}

	if err := s.commentRepo.UpdateContent(ctx, id, req.Content); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(ctx, id)
}

func (s *CommentService) Vote(ctx context.Context, id string, up bool) (*domain.Comment, error) {
	if _, err := s.commentRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Vote(ctx, id, up); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(ctx, id)
}

// DeleteComment removes the comment and all of its descendants. The reply tree
// is walked breadth-first level by level, so depth is bounded by the widest
// level, not the recursion stack.
func (s *CommentService) DeleteComment(ctx context.Context, id string, actor *domain.User) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if actor == nil || (comment.UserID != actor.UserID && !actor.IsAdmin()) {
		return 0, fmt.Errorf("%w: not the comment author", apperrors.ErrForbidden)
	}

	toDelete := []string{id}
	frontier := []string{id}
	for len(frontier) > 0 {
		children, err := s.commentRepo.ListChildIDs(ctx, frontier)
		if err != nil {
			return 0, fmt.Errorf("failed to collect replies: %w", err)
		}
		toDelete = append(toDelete, children...)
		frontier = children
	}

	if err := s.commentRepo.DeleteMany(ctx, toDelete); err != nil {
		return 0, fmt.Errorf("failed to delete comments: %w", err)
	}

	logger.Info("Comment thread deleted", slog.String("comment_id", id), slog.Int("deleted", len(toDelete)))
	return len(toDelete), nil
}
