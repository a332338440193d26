package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
	"github.com/inkpad-app/inkpad-backend/internal/utils"
)

// likesPerPoint converts accumulated likes into points.
const likesPerPoint = 1000

type UserService struct {
	userRepo    portsrepo.UserRepository
	storyRepo   portsrepo.StoryRepository
	videoRepo   portsrepo.VideoRepository
	shotRepo    portsrepo.ShotRepository
	commentRepo portsrepo.CommentRepository
	cfg         *config.Config
}

func NewUserService(userRepo portsrepo.UserRepository, storyRepo portsrepo.StoryRepository, videoRepo portsrepo.VideoRepository, shotRepo portsrepo.ShotRepository, commentRepo portsrepo.CommentRepository, cfg *config.Config) *UserService {
	return &UserService{
		userRepo:    userRepo,
		storyRepo:   storyRepo,
		videoRepo:   videoRepo,
		shotRepo:    shotRepo,
		commentRepo: commentRepo,
		cfg:         cfg,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *UserService) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	storyCount, err := s.storyRepo.CountByAuthor(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count stories: %w", err)
	}
	videoCount, err := s.videoRepo.CountByAuthor(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}
	storyLikes, err := s.storyRepo.SumLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum story likes: %w", err)
	}
	videoLikes, err := s.videoRepo.SumLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum video likes: %w", err)
	}
	shotLikes, err := s.shotRepo.SumLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum shot likes: %w", err)
	}
	commentLikes, err := s.commentRepo.SumLikesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum comment likes: %w", err)
	}

	stats := &domain.UserStats{
		UserID:             user.UserID,
		Username:           user.Username,
		AnonymousName:      user.AnonymousName,
		Points:             user.Points,
		ReferralCode:       user.ReferralCode,
		ReferralCount:      user.ReferralCount,
		StoryCount:         storyCount,
		VideoCount:         videoCount,
		TotalLikesReceived: storyLikes + videoLikes + shotLikes + commentLikes,
		StoryLikes:         storyLikes,
		VideoLikes:         videoLikes,
		ShotLikes:          shotLikes,
		CommentLikes:       commentLikes,
	}
	logger.Debug("User stats computed", slog.String("user_id", userID))
	return stats, nil
}

// RecalculatePoints derives the points total from current counts and overwrites
// the stored value, so repeated calls converge on the same number.
func (s *UserService) RecalculatePoints(ctx context.Context, userID string) (*dto.PointsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	approvedStories, err := s.storyRepo.CountByAuthor(ctx, userID, domain.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to count approved stories: %w", err)
	}
	storyLikes, err := s.storyRepo.SumLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum story likes: %w", err)
	}
	videoLikes, err := s.videoRepo.SumLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum video likes: %w", err)
	}
	shotLikes, err := s.shotRepo.SumLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum shot likes: %w", err)
	}
	commentLikes, err := s.commentRepo.SumLikesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum comment likes: %w", err)
	}

	breakdown := domain.PointsBreakdown{
		ReferralPoints: user.ReferralCount * referralBonus,
		StoryPoints:    approvedStories,
		LikePoints:     (storyLikes + videoLikes + shotLikes + commentLikes) / likesPerPoint,
	}
	breakdown.TotalPoints = breakdown.ReferralPoints + breakdown.StoryPoints + breakdown.LikePoints

	if err := s.userRepo.SetPoints(ctx, userID, breakdown.TotalPoints); err != nil {
		return nil, fmt.Errorf("failed to store points: %w", err)
	}

	logger.Info("Points recalculated", slog.String("user_id", userID), slog.Int("points", breakdown.TotalPoints))
	return &dto.PointsResponse{UserID: userID, Points: breakdown.TotalPoints, Breakdown: breakdown}, nil
}

// GetReferralInfo returns the user's referral code, generating one on first use.
func (s *UserService) GetReferralInfo(ctx context.Context, userID string) (*dto.ReferralInfoResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	code := user.ReferralCode
	if code == "" {
		code, err = s.assignReferralCode(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ReferralInfoResponse{
		ReferralCode:  code,
		ReferralLink:  fmt.Sprintf("%s/register?ref=%s", s.cfg.FrontendBaseURL, code),
		ReferralCount: user.ReferralCount,
		PointsEarned:  user.ReferralCount * referralBonus,
	}, nil
}

func (s *UserService) assignReferralCode(ctx context.Context, userID string) (string, error) {
	for i := 0; i < 5; i++ {
		code := utils.GenerateReferralCode(referralCodeLength)
		_, err := s.userRepo.FindUserByReferralCode(ctx, code)
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := s.userRepo.SetReferralCode(ctx, userID, code); err != nil {
				return "", fmt.Errorf("failed to store referral code: %w", err)
			}
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code")
}

func (s *UserService) GetLeaderboard(ctx context.Context, limit int, viewerID string) (*dto.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	users, err := s.userRepo.ListTopByPoints(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top users: %w", err)
	}
	total, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        u.UserID,
			Username:      u.Username,
			AnonymousName: u.AnonymousName,
			Points:        u.Points,
			ReferralCount: u.ReferralCount,
			IsCurrentUser: u.UserID == viewerID,
		})
	}

	return &dto.LeaderboardResponse{Leaderboard: entries, TotalUsers: total}, nil
}

func (s *UserService) GetLikedPosts(ctx context.Context, userID string) (*dto.LikedPostsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp := &dto.LikedPostsResponse{
		Stories: []domain.Story{},
		Videos:  []domain.Video{},
		Shots:   []domain.Shot{},
	}

	storyIDs, err := s.storyRepo.ListLikedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked stories: %w", err)
	}
	for _, id := range storyIDs {
		story, err := s.storyRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		resp.Stories = append(resp.Stories, *story)
	}

	videoIDs, err := s.videoRepo.ListLikedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	for _, id := range videoIDs {
		video, err := s.videoRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		resp.Videos = append(resp.Videos, *video)
	}

	shotIDs, err := s.shotRepo.ListLikedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked shots: %w", err)
	}
	for _, id := range shotIDs {
		shot, err := s.shotRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		resp.Shots = append(resp.Shots, *shot)
	}

	logger.Debug("Liked posts listed", slog.String("user_id", userID),
		slog.Int("stories", len(resp.Stories)), slog.Int("videos", len(resp.Videos)), slog.Int("shots", len(resp.Shots)))
	return resp, nil
}
