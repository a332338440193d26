package dto

import "github.com/inkpad-app/inkpad-backend/internal/core/domain"

// CreateChapterRequest adds a chapter to a story. ChapterNumber is optional;
// when omitted the chapter is appended after the current highest number.
type CreateChapterRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	Content       string `json:"content" binding:"required"`
	ChapterNumber *int   `json:"chapter_number" binding:"omitempty,min=1"`
}

// UpdateChapterRequest patches chapter fields.
type UpdateChapterRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=200"`
	Content       *string `json:"content"`
	ChapterNumber *int    `json:"chapter_number" binding:"omitempty,min=1"`
}

// PublishChapterRequest flips a chapter's published flag.
type PublishChapterRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// ChapterListResponse lists a story's chapters in reading order.
type ChapterListResponse struct {
	StoryID  string           `json:"story_id"`
	Chapters []domain.Chapter `json:"chapters"`
}
