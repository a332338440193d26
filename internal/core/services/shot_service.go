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
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
)

type ShotService struct {
	shotRepo portsrepo.ShotRepository
	userRepo portsrepo.UserRepository
	cfg      *config.Config
}

func NewShotService(shotRepo portsrepo.ShotRepository, userRepo portsrepo.UserRepository, cfg *config.Config) *ShotService {
	return &ShotService{shotRepo: shotRepo, userRepo: userRepo, cfg: cfg}
}

func (s *ShotService) CreateShot(ctx context.Context, req dto.CreateShotRequest, actor *domain.User) (*domain.Shot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	shot := domain.Shot{
		ImageURL:            req.ImageURL,
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
	if shot.Tags == nil {
		shot.Tags = []string{}
	}

	id, err := s.shotRepo.Create(ctx, shot)
	if err != nil {
		logger.Error("Failed to create shot", slog.String("error", err.Error()))
		return nil, err
	}
	shot.ID = id

	logger.Info("Shot created", slog.String("shot_id", id), slog.String("author_id", actor.UserID))
	return &shot, nil
}

func (s *ShotService) GetShot(ctx context.Context, id string, viewer *domain.User) (*domain.Shot, error) {
	shot, err := s.shotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(shot.Status, shot.AuthorID, viewer); err != nil {
		return nil, err
	}
	return shot, nil
}

// GetShareLink builds the frontend URL for a shot the viewer may see.
func (s *ShotService) GetShareLink(ctx context.Context, id string, viewer *domain.User) (*dto.ShareLinkResponse, error) {
	shot, err := s.shotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(shot.Status, shot.AuthorID, viewer); err != nil {
		return nil, err
	}
	return &dto.ShareLinkResponse{ShareURL: fmt.Sprintf("%s/shots/%s", s.cfg.FrontendBaseURL, shot.ID)}, nil
}

func (s *ShotService) UpdateShot(ctx context.Context, id string, req dto.UpdateShotRequest, actor *domain.User) (*domain.Shot, error) {
	shot, err := s.shotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(shot.AuthorID, actor); err != nil {
		return nil, err
	}

	upd := portsrepo.ShotUpdate{
		Caption:       req.Caption,
		Tags:          req.Tags,
		MatureContent: req.MatureContent,
	}
	if err := s.shotRepo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.shotRepo.FindByID(ctx, id)
}

func (s *ShotService) DeleteShot(ctx context.Context, id string, actor *domain.User) error {
	shot, err := s.shotRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(shot.AuthorID, actor); err != nil {
		return err
	}

	if err := s.shotRepo.Delete(ctx, id); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Shot deleted", slog.String("shot_id", id))
	return nil
}

func (s *ShotService) Submit(ctx context.Context, id string, actor *domain.User) error {
	shot, err := s.shotRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeSubmit(shot.AuthorID, shot.Status, actor); err != nil {
		return err
	}

	matched, err := s.shotRepo.SubmitForReview(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: shot is no longer submittable", apperrors.ErrInvalidTransition)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Shot submitted for review", slog.String("shot_id", id))
	return nil
}

func (s *ShotService) Moderate(ctx context.Context, id string, req dto.ModerationRequest, actor *domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	shot, err := s.shotRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeModerate(shot.Status, actor); err != nil {
		return err
	}

	approved := *req.Approved
	matched, err := s.shotRepo.Moderate(ctx, id, approved, moderationReason(req), time.Now())
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: shot is not pending review", apperrors.ErrInvalidTransition)
	}

	logger.Info("Shot moderated", slog.String("shot_id", id), slog.Bool("approved", approved), slog.String("moderator_id", actor.UserID))
	return nil
}

func (s *ShotService) ToggleLike(ctx context.Context, id string, actor *domain.User) (*dto.LikeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	shot, err := s.shotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(shot.Status, shot.AuthorID, actor); err != nil {
		return nil, err
	}

	likes, changed, err := s.shotRepo.AddLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !changed {
		likes, _, err = s.shotRepo.RemoveLike(ctx, id, actor.UserID)
		if err != nil {
			return nil, err
		}
		return &dto.LikeResponse{Liked: false, Likes: likes}, nil
	}

	if likes > 0 && likes%likeMilestone == 0 {
		if err := s.userRepo.AddPoints(ctx, shot.AuthorID, 1); err != nil {
			logger.Error("Failed to award like milestone point", slog.String("error", err.Error()), slog.String("author_id", shot.AuthorID))
		} else {
			logger.Info("Like milestone reached", slog.String("shot_id", id), slog.Int("likes", likes))
		}
	}
	return &dto.LikeResponse{Liked: true, Likes: likes}, nil
}

func (s *ShotService) ListFeed(ctx context.Context, params dto.FeedParams) (*dto.ShotListResponse, error) {
	filter := feedFilter(params)
	shots, total, err := s.shotRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shots: %w", err)
	}
	return &dto.ShotListResponse{Shots: shots, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (s *ShotService) ListMine(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.ShotListResponse, error) {
	page, size := normalizePage(params)
	filter := portsrepo.ContentFilter{AuthorID: actor.UserID, Page: page, PageSize: size, SortField: "created_at", SortDesc: true}
	shots, total, err := s.shotRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list own shots: %w", err)
	}
	return &dto.ShotListResponse{Shots: shots, Total: total, Page: page, PageSize: size}, nil
}

func (s *ShotService) ListPending(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.ShotListResponse, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", apperrors.ErrForbidden)
	}
	page, size := normalizePage(params)
	filter := portsrepo.ContentFilter{Status: domain.StatusPending, Page: page, PageSize: size, SortField: "created_at"}
	shots, total, err := s.shotRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending shots: %w", err)
	}
	return &dto.ShotListResponse{Shots: shots, Total: total, Page: page, PageSize: size}, nil
}
