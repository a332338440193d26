package services

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
)

// ContentModerationSvc covers the review workflow shared by all content kinds.
// Implementations enforce the draft -> pending -> approved/rejected transitions.
type ContentModerationSvc interface {
	// Submit moves a draft or rejected item to pending. Author only.
	Submit(ctx context.Context, id string, actor *domain.User) error

	// Moderate approves or rejects a pending item. Admin only. Approval stamps
	// the publication time; rejection stores a reason.
	Moderate(ctx context.Context, id string, req dto.ModerationRequest, actor *domain.User) error
}

// ContentEngagementSvc covers the like toggle shared by all content kinds.
type ContentEngagementSvc interface {
	// ToggleLike likes the item if the actor has not liked it, otherwise
	// removes the like. Returns the resulting state.
	ToggleLike(ctx context.Context, id string, actor *domain.User) (*dto.LikeResponse, error)
}

// StorySvcFacade covers stories and their feed.
type StorySvcFacade interface {
	ContentModerationSvc
	ContentEngagementSvc

	CreateStory(ctx context.Context, req dto.CreateStoryRequest, actor *domain.User) (*domain.Story, error)
	// GetStory applies the visibility rule: non-approved items are only shown
	// to their author or an admin. viewer may be nil.
	GetStory(ctx context.Context, id string, viewer *domain.User) (*domain.Story, error)
	UpdateStory(ctx context.Context, id string, req dto.UpdateStoryRequest, actor *domain.User) (*domain.Story, error)
	// DeleteStory removes the story with its chapters and comments.
	DeleteStory(ctx context.Context, id string, actor *domain.User) error

	// ListFeed returns approved stories.
	ListFeed(ctx context.Context, params dto.FeedParams) (*dto.StoryListResponse, error)
	// ListMine returns the actor's own stories in every status.
	ListMine(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.StoryListResponse, error)
	// ListByAuthor returns an author's approved stories.
	ListByAuthor(ctx context.Context, authorID string, params dto.PaginationQuery) (*dto.StoryListResponse, error)
	// ListPending returns items awaiting review. Admin only.
	ListPending(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.StoryListResponse, error)
}

// VideoSvcFacade covers videos and their feed.
type VideoSvcFacade interface {
	ContentModerationSvc
	ContentEngagementSvc

	CreateVideo(ctx context.Context, req dto.CreateVideoRequest, actor *domain.User) (*domain.Video, error)
	// GetVideo applies the visibility rule and counts a view for approved items.
	GetVideo(ctx context.Context, id string, viewer *domain.User) (*domain.Video, error)
	UpdateVideo(ctx context.Context, id string, req dto.UpdateVideoRequest, actor *domain.User) (*domain.Video, error)
	DeleteVideo(ctx context.Context, id string, actor *domain.User) error

	ListFeed(ctx context.Context, params dto.FeedParams) (*dto.VideoListResponse, error)
	ListMine(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.VideoListResponse, error)
	ListPending(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.VideoListResponse, error)
}

// ShotSvcFacade covers image shots and their feed.
type ShotSvcFacade interface {
	ContentModerationSvc
	ContentEngagementSvc

	CreateShot(ctx context.Context, req dto.CreateShotRequest, actor *domain.User) (*domain.Shot, error)
	GetShot(ctx context.Context, id string, viewer *domain.User) (*domain.Shot, error)
	// GetShareLink returns the shot's public frontend URL, subject to visibility.
	GetShareLink(ctx context.Context, id string, viewer *domain.User) (*dto.ShareLinkResponse, error)
	UpdateShot(ctx context.Context, id string, req dto.UpdateShotRequest, actor *domain.User) (*domain.Shot, error)
	DeleteShot(ctx context.Context, id string, actor *domain.User) error

	ListFeed(ctx context.Context, params dto.FeedParams) (*dto.ShotListResponse, error)
	ListMine(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.ShotListResponse, error)
	ListPending(ctx context.Context, actor *domain.User, params dto.PaginationQuery) (*dto.ShotListResponse, error)
}
