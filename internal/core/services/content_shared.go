package services

import (
	"fmt"
	"strings"

	"github.com/inkpad-app/inkpad-backend/internal/apperrors"
	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
)

// likeMilestone is the like total granularity that awards the author a point.
const likeMilestone = 1000

func normalizePage(p dto.PaginationQuery) (int, int) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

// feedFilter builds the repository filter for a public feed query.
func feedFilter(params dto.FeedParams) portsrepo.ContentFilter {
	page, size := normalizePage(params.PaginationQuery)
	filter := portsrepo.ContentFilter{
		Status:   domain.StatusApproved,
		Search:   strings.TrimSpace(params.Search),
		Page:     page,
		PageSize: size,
		SortDesc: true,
	}
	switch params.Sort {
	case "popular":
		filter.SortField = "likes"
	default:
		filter.SortField = "published_at"
	}
	return filter
}

// authorizeOwner allows the author or an admin to act on an item.
func authorizeOwner(authorID string, actor *domain.User) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	if actor.UserID != authorID && !actor.IsAdmin() {
		return fmt.Errorf("%w: not the author", apperrors.ErrForbidden)
	}
	return nil
}

// authorizeSubmit checks that the actor owns the item and that its status
// admits submission.
func authorizeSubmit(authorID string, status domain.ModerationStatus, actor *domain.User) error {
	if err := authorizeOwner(authorID, actor); err != nil {
		return err
	}
	if !status.CanSubmit() {
		return fmt.Errorf("%w: cannot submit from status %q", apperrors.ErrInvalidTransition, status)
	}
	return nil
}

// authorizeModerate checks that the actor is an admin and the item is pending.
func authorizeModerate(status domain.ModerationStatus, actor *domain.User) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin only", apperrors.ErrForbidden)
	}
	if status != domain.StatusPending {
		return fmt.Errorf("%w: item is not pending review", apperrors.ErrInvalidTransition)
	}
	return nil
}

// moderationReason resolves the stored rejection reason.
func moderationReason(req dto.ModerationRequest) string {
	if *req.Approved {
		return ""
	}
	reason := strings.TrimSpace(req.RejectionReason)
	if reason == "" {
		reason = domain.DefaultRejectionReason
	}
	return reason
}

// requireVisible applies the shared visibility rule to a fetched item.
func requireVisible(status domain.ModerationStatus, authorID string, viewer *domain.User) error {
	if !domain.VisibleTo(status, authorID, viewer) {
		// Hidden items look absent rather than forbidden.
		return apperrors.ErrNotFound
	}
	return nil
}
