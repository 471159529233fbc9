package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicStore publishes synthesized audio under a directory served at
// /public and returns the URL callers (browsers, Twilio) fetch it from.
type PublicStore interface {
	Save(data []byte, suffix string) (string, error)
}

type LocalPublicStore struct {
	dir     string
	baseURL string
}

// NewLocalPublicStore creates the public directory if needed.
func NewLocalPublicStore(dir, baseURL string) (*LocalPublicStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create public dir: %w", err)
	}
	return &LocalPublicStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the bytes under a random name and returns the public URL.
func (s *LocalPublicStore) Save(data []byte, suffix string) (string, error) {
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + suffix
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write public file: %w", err)
	}
	return fmt.Sprintf("%s/public/%s", s.baseURL, name), nil
}

// Dir returns the directory the store writes into (mounted by the router).
func (s *LocalPublicStore) Dir() string {
	return s.dir
}
