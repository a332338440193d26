package dto

import "github.com/inkpad-app/inkpad-backend/internal/core/domain"

// CreateStoryRequest starts a new story in draft.
type CreateStoryRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Description   string   `json:"description" binding:"max=2000"`
	CoverImage    string   `json:"cover_image"`
	Tags          []string `json:"tags" binding:"max=10"`
	MatureContent bool     `json:"mature_content"`
}

// UpdateStoryRequest patches story fields. Absent fields are left unchanged.
type UpdateStoryRequest struct {
	Title         *string   `json:"title" binding:"omitempty,max=200"`
	Description   *string   `json:"description" binding:"omitempty,max=2000"`
	CoverImage    *string   `json:"cover_image"`
	Tags          *[]string `json:"tags" binding:"omitempty,max=10"`
	MatureContent *bool     `json:"mature_content"`
}

// StoryListResponse is a paginated story listing.
type StoryListResponse struct {
	Stories  []domain.Story `json:"stories"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// CreateVideoRequest records a video post against an already uploaded file.
type CreateVideoRequest struct {
	VideoURL      string   `json:"video_url" binding:"required"`
	Caption       string   `json:"caption" binding:"max=500"`
	Tags          []string `json:"tags" binding:"max=10"`
	MatureContent bool     `json:"mature_content"`
}

// UpdateVideoRequest patches video fields.
type UpdateVideoRequest struct {
	Caption       *string   `json:"caption" binding:"omitempty,max=500"`
	Tags          *[]string `json:"tags" binding:"omitempty,max=10"`
	MatureContent *bool     `json:"mature_content"`
}

// VideoListResponse is a paginated video listing.
type VideoListResponse struct {
	Videos   []domain.Video `json:"videos"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// CreateShotRequest records an image post against an already uploaded file.
type CreateShotRequest struct {
	ImageURL      string   `json:"image_url" binding:"required"`
	Caption       string   `json:"caption" binding:"max=500"`
	Tags          []string `json:"tags" binding:"max=10"`
	MatureContent bool     `json:"mature_content"`
}

// UpdateShotRequest patches shot fields.
type UpdateShotRequest struct {
	Caption       *string   `json:"caption" binding:"omitempty,max=500"`
	Tags          *[]string `json:"tags" binding:"omitempty,max=10"`
	MatureContent *bool     `json:"mature_content"`
}

// ShotListResponse is a paginated shot listing.
type ShotListResponse struct {
	Shots    []domain.Shot `json:"shots"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ModerationRequest approves or rejects a pending item. Approved is a pointer so
// that an absent field fails validation instead of silently rejecting.
type ModerationRequest struct {
	Approved        *bool  `json:"approved" binding:"required"`
	RejectionReason string `json:"rejection_reason" binding:"max=1000"`
}

// LikeResponse reports the post-toggle like state.
type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ShareLinkResponse carries a shot's public frontend URL.
type ShareLinkResponse struct {
	ShareURL string `json:"share_url"`
}

// UploadResponse returns the stored object's key and a resolvable URL.
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
