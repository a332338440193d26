package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps blobs on the local filesystem under a base directory that the
// HTTP layer serves at /uploads. Meant for development.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Put(ctx context.Context, content []byte, filename, contentType, folder string) (string, error) {
	dir := s.baseDir
	if folder != "" && folder != "images" {
		dir = filepath.Join(s.baseDir, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create folder %s: %w", dir, err)
		}
	}
	name := uuid.NewString() + extension(filename)
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", name, err)
	}
	if dir != s.baseDir {
		return "/uploads/" + folder + "/" + name, nil
	}
	return "/uploads/" + name, nil
}

func (s *LocalStore) ResolveURL(ctx context.Context, key string) (string, error) {
	return key, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	rel, ok := localPath(key)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, rel))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) Healthy(ctx context.Context) error {
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return fmt.Errorf("upload dir unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("upload path %s is not a directory", s.baseDir)
	}
	return nil
}

func localPath(key string) (string, bool) {
	const prefix = "/uploads/"
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return "", false
	}
	return key[len(prefix):], true
}
