package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/inkpad-app/inkpad-backend/internal/platform/config"
)

// S3Store stores blobs in an S3-compatible bucket. Objects stay private;
// reads go through presigned GET URLs.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store connects a minio client from config.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return &S3Store{client: client, bucket: cfg.S3Bucket}, nil
}

func (s *S3Store) Put(ctx context.Context, content []byte, filename, contentType, folder string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), extension(filename))
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return S3KeyPrefix + key, nil
}

func (s *S3Store) ResolveURL(ctx context.Context, key string) (string, error) {
	if !strings.HasPrefix(key, S3KeyPrefix) {
		// Local or already-resolved keys pass through untouched.
		return key, nil
	}
	objectKey := strings.TrimPrefix(key, S3KeyPrefix)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, PresignedURLTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", objectKey, err)
	}
	return u.String(), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if !strings.HasPrefix(key, S3KeyPrefix) {
		return nil
	}
	objectKey := strings.TrimPrefix(key, S3KeyPrefix)
	return s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}

func (s *S3Store) Healthy(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket check failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}

func extension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return strings.ToLower(filename[idx:])
	}
	return ""
}
