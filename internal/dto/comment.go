package dto

import "github.com/inkpad-app/inkpad-backend/internal/core/domain"

// CreateCommentRequest attaches a comment to a story, video or chapter (the
// target comes from the route). SelectedText and TextPosition anchor chapter
// comments to a text selection; ParentCommentID makes the comment a reply.
type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required,max=5000"`
	SelectedText    string `json:"selected_text" binding:"max=500"`
	TextPosition    *int   `json:"text_position" binding:"omitempty,min=0"`
	ParentCommentID string `json:"parent_comment_id"`
}

// UpdateCommentRequest replaces a comment's text.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// VoteRequest casts an up or down vote.
type VoteRequest struct {
	Vote string `json:"vote" binding:"required,oneof=up down"`
}

// CommentTreeResponse returns a target's comments as nested threads.
type CommentTreeResponse struct {
	Comments []*domain.CommentNode `json:"comments"`
	Total    int                   `json:"total"`
}

// DeletedCommentsResponse reports how many comments a cascade delete removed.
type DeletedCommentsResponse struct {
	Deleted int `json:"deleted"`
}
