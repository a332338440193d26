package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

// mediaResolver rewrites stored `s3://` media keys into presigned URLs at
// response time. Local `/uploads/` keys and external URLs pass through
// untouched.
type mediaResolver struct {
	blobs storage.BlobStore
}

func (m mediaResolver) resolve(ctx context.Context, key string) string {
	if !strings.HasPrefix(key, storage.S3KeyPrefix) {
		return key
	}
	url, err := m.blobs.ResolveURL(ctx, key)
	if err != nil {
		// Serve the raw key rather than failing the whole response.
		middleware.GetLoggerFromCtx(ctx).Error("Failed to presign media URL", slog.String("key", key), slog.String("error", err.Error()))
		return key
	}
	return url
}

func (m mediaResolver) story(ctx context.Context, story *domain.Story) {
	story.CoverImage = m.resolve(ctx, story.CoverImage)
}

func (m mediaResolver) stories(ctx context.Context, stories []domain.Story) {
	for i := range stories {
		m.story(ctx, &stories[i])
	}
}

func (m mediaResolver) video(ctx context.Context, video *domain.Video) {
	video.VideoURL = m.resolve(ctx, video.VideoURL)
}

func (m mediaResolver) videos(ctx context.Context, videos []domain.Video) {
	for i := range videos {
		m.video(ctx, &videos[i])
	}
}

func (m mediaResolver) shot(ctx context.Context, shot *domain.Shot) {
	shot.ImageURL = m.resolve(ctx, shot.ImageURL)
}

func (m mediaResolver) shots(ctx context.Context, shots []domain.Shot) {
	for i := range shots {
		m.shot(ctx, &shots[i])
	}
}
