package services

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
)

// CommentSvcFacade manages comment threads on stories, videos and chapters.
type CommentSvcFacade interface {
	// CreateComment attaches a comment to the target, checking the target's
	// visibility for the actor and validating ParentCommentID against it.
	CreateComment(ctx context.Context, target domain.CommentTarget, targetID string, req dto.CreateCommentRequest, actor *domain.User) (*domain.Comment, error)

	// GetCommentTree returns the target's comments as nested threads.
	GetCommentTree(ctx context.Context, target domain.CommentTarget, targetID string, viewer *domain.User) (*dto.CommentTreeResponse, error)

	// UpdateComment edits the comment text. Author only.
	UpdateComment(ctx context.Context, id string, req dto.UpdateCommentRequest, actor *domain.User) (*domain.Comment, error)

	// Vote casts an up or down vote on a comment.
	Vote(ctx context.Context, id string, up bool) (*domain.Comment, error)

	// DeleteComment removes the comment and every descendant reply, reporting
	// the number of comments removed. Author or admin.
	DeleteComment(ctx context.Context, id string, actor *domain.User) (int, error)
}
