// Package storage abstracts media blob storage. Keys are stored on content
// documents with a scheme prefix: "s3://<key>" for the S3-compatible backend
// (resolved to presigned URLs at response time) and "/uploads/<name>" for the
// local-disk backend (served statically).
package storage

import (
	"context"
	"time"
)

// S3KeyPrefix marks keys held in the S3-compatible backend.
const S3KeyPrefix = "s3://"

// PresignedURLTTL is how long resolved media URLs stay valid.
const PresignedURLTTL = 24 * time.Hour

// BlobStore is the contract the handlers and services depend on.
type BlobStore interface {
	// Put stores content and returns the scheme-prefixed key to persist.
	Put(ctx context.Context, content []byte, filename, contentType, folder string) (string, error)
	// ResolveURL turns a stored key into a URL the client can fetch.
	ResolveURL(ctx context.Context, key string) (string, error)
	// Delete removes a stored object. Unknown keys are not an error.
	Delete(ctx context.Context, key string) error
	// Healthy reports whether the backing store is reachable.
	Healthy(ctx context.Context) error
}
