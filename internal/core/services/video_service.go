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

type VideoService struct {
	videoRepo   portsrepo.VideoRepository
	commentRepo portsrepo.CommentRepository
	userRepo    portsrepo.UserRepository
}

func NewVideoService(videoRepo portsrepo.VideoRepository, commentRepo portsrepo.CommentRepository, userRepo portsrepo.UserRepository) *VideoService {
	return &VideoService{videoRepo: videoRepo, commentRepo: commentRepo, userRepo: userRepo}
}

func (s *VideoService) CreateVideo(ctx context.Context, req dto.CreateVideoRequest, actor *domain.User) (*domain.Video, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	video := domain.Video{
		VideoURL:            req.VideoURL,
		Caption:             req.Caption,
		Tags:                req.Tags,
		MatureContent:       req.MatureContent,
		AuthorID:            actor.UserID,
		AuthorAnonymousName: actor.AnonymousName,
		Status:              domain.StatusDraft,
		LikedBy:             []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}

	id, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		logger.Error("Failed to create video", slog.String("error", err.Error()))
		return nil, err
	}
	video.ID = id

	logger.Info("Video created", slog.String("video_id", id), slog.String("author_id", actor.UserID))
	return &video, nil
}

// GetVideo applies the visibility rule and counts a view on approved videos.
func (s *VideoService) GetVideo(ctx context.Context, id string, viewer *domain.User) (*domain.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(video.Status, video.AuthorID, viewer); err != nil {
		return nil, err
	}

	if video.Status == domain.StatusApproved {
		if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to count view", slog.String("error", err.Error()), slog.String("video_id", id))
		} else {
			video.Views++
		}
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, id string, req dto.UpdateVideoRequest, actor *domain.User) (*domain.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(video.AuthorID, actor); err != nil {
		return nil, err
	}

	upd := portsrepo.VideoUpdate{
		Caption:       req.Caption,
		Tags:          req.Tags,
		MatureContent: req.MatureContent,
	}
	if err := s.videoRepo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.videoRepo.FindByID(ctx, id)
}

func (s *VideoService) DeleteVideo(ctx context.Context, id string, actor *domain.User) error {
	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(video.AuthorID, actor); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByVideo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Video deleted", slog.String("video_id", id))
	return nil
}

func (s *VideoService) Submit(ctx context.Context, id string, actor *domain.User) error {
	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeSubmit(video.AuthorID, video.Status, actor); err != nil {
		return err
	}

	matched, err := s.videoRepo.SubmitForReview(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: video is no longer submittable", apperrors.ErrInvalidTransition)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Video submitted for review", slog.String("video_id", id))
	return nil
}

func (s *VideoService) Moderate(ctx context.Context, id string, req dto.ModerationRequest, actor *domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeModerate(video.Status, actor); err != nil {
		return err
	}

	approved := *req.Approved
	matched, err := s.videoRepo.Moderate(ctx, id, approved, moderationReason(req), time.Now())
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: video is not pending review", apperrors.ErrInvalidTransition)
	}

	logger.Info("Video moderated", slog.String("video_id", id), slog.Bool("approved", approved), slog.String("moderator_id", actor.UserID))
	return nil
}

func (s *VideoService) ToggleLike(ctx context.Context, id string, actor *domain.User) (*dto.LikeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(video.Status, video.AuthorID, actor); err != nil {
		return nil, err
	}

	likes, changed, err := s.videoRepo.AddLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !changed {
		likes, _, err = s.videoRepo.RemoveLike(ctx, id, actor.UserID)
		if err != nil {
			return nil, err
		}
		return &dto.LikeResponse{Liked: false, Likes: likes}, nil
	}

	if likes > 0 && likes%likeMilestone == 0 {
		if err := s.userRepo.AddPoints(ctx, video.AuthorID, 1); err != nil {
			logger.Error("Failed to award like milestone point", slog.String("error", err.Error()), slog.String("author_id", video.AuthorID))
		} else {
			logger.Info("Like milestone reached", slog.String("video_id", id), slog.Int("likes", likes))
		}
	}
	return &dto.LikeResponse{Liked: true, Likes: likes}, nil
}

func (s *VideoService) ListFeed(ctx context.Context, params dto.FeedParams) (*dto.VideoListResponse, error) {
	filter := feedFilter(params)
	videos, total, err := s.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return &dto.VideoListResponse{Videos: videos, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (s *VideoService) ListMine(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.VideoListResponse, error) {
	page, size := normalizePage(params)
	filter := portsrepo.ContentFilter{AuthorID: actor.UserID, Page: page, PageSize: size, SortField: "created_at", SortDesc: true}
	videos, total, err := s.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list own videos: %w", err)
	}
	return &dto.VideoListResponse{Videos: videos, Total: total, Page: page, PageSize: size}, nil
}

func (s *VideoService) ListPending(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.VideoListResponse, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", apperrors.ErrForbidden)
	}
	page, size := normalizePage(params)
	filter := portsrepo.ContentFilter{Status: domain.StatusPending, Page: page, PageSize: size, SortField: "created_at"}
	videos, total, err := s.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending videos: %w", err)
	}
	return &dto.VideoListResponse{Videos: videos, Total: total, Page: page, PageSize: size}, nil
}
