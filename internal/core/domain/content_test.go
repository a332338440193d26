package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

func TestModerationStatus_CanSubmit(t *testing.T) {
	assert.True(t, domain.StatusDraft.CanSubmit())
	assert.True(t, domain.StatusRejected.CanSubmit())
	assert.False(t, domain.StatusPending.CanSubmit())
	assert.False(t, domain.StatusApproved.CanSubmit())
}

func TestVisibleTo(t *testing.T) {
	author := &domain.User{UserID: "author-1", Role: domain.RoleUser}
	stranger := &domain.User{UserID: "other-1", Role: domain.RoleUser}
	admin := &domain.User{UserID: "admin-1", Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		status  domain.ModerationStatus
		viewer  *domain.User
		visible bool
	}{
		{"approved is public", domain.StatusApproved, nil, true},
		{"approved visible to stranger", domain.StatusApproved, stranger, true},
		{"draft hidden from anonymous", domain.StatusDraft, nil, false},
		{"draft hidden from stranger", domain.StatusDraft, stranger, false},
		{"draft visible to author", domain.StatusDraft, author, true},
		{"pending visible to admin", domain.StatusPending, admin, true},
		{"rejected visible to author", domain.StatusRejected, author, true},
		{"rejected hidden from stranger", domain.StatusRejected, stranger, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, domain.VisibleTo(tt.status, "author-1", tt.viewer))
		})
	}
}
