package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

func TestBuildCommentTree_NestsReplies(t *testing.T) {
	comments := []domain.Comment{
		{ID: "c1"},
		{ID: "c2", ParentCommentID: "c1"},
		{ID: "c3", ParentCommentID: "c1"},
		{ID: "c4", ParentCommentID: "c2"},
		{ID: "c5"},
	}

	roots := domain.BuildCommentTree(comments)

	require.Len(t, roots, 2)
	assert.Equal(t, "c1", roots[0].ID)
	assert.Equal(t, "c5", roots[1].ID)

	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, "c2", roots[0].Replies[0].ID)
	assert.Equal(t, "c3", roots[0].Replies[1].ID)

	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "c4", roots[0].Replies[0].Replies[0].ID)
}

func TestBuildCommentTree_OrphanBecomesRoot(t *testing.T) {
	comments := []domain.Comment{
		{ID: "c1", ParentCommentID: "deleted-parent"},
		{ID: "c2"},
	}

	roots := domain.BuildCommentTree(comments)

	require.Len(t, roots, 2)
	assert.Equal(t, "c1", roots[0].ID)
	assert.Equal(t, "c2", roots[1].ID)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	assert.Empty(t, domain.BuildCommentTree(nil))
}
