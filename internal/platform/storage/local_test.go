package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

func TestLocalStore_PutAndResolve(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	key, err := store.Put(ctx, []byte("hello"), "cover.png", "image/png", "images")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "/uploads/"), "key %q", key)
	assert.True(t, strings.HasSuffix(key, ".png"), "key %q", key)

	// Local keys are already servable paths.
	url, err := store.ResolveURL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, key, url)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", strings.TrimPrefix(key, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestLocalStore_PutIntoFolder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	key, err := store.Put(ctx, []byte("clip"), "clip.mp4", "video/mp4", "videos")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "/uploads/videos/"), "key %q", key)

	_, err = os.Stat(filepath.Join(dir, "videos"))
	assert.NoError(t, err)
}

func TestLocalStore_Delete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	key, err := store.Put(ctx, []byte("bye"), "note.txt", "text/plain", "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))
	_, statErr := os.Stat(filepath.Join(dir, strings.TrimPrefix(key, "/uploads/")))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting a missing or foreign key is a no-op.
	assert.NoError(t, store.Delete(ctx, key))
	assert.NoError(t, store.Delete(ctx, "https://cdn.example.com/external.png"))
}

func TestLocalStore_Healthy(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Healthy(ctx))
}
