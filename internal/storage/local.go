package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local implements KV on the local filesystem, one file per key.
// This is the default durability mechanism for single-node deployments.
type Local struct {
	basePath string
}

// NewLocal creates a filesystem-backed key-value store rooted at basePath.
// The directory is created if it does not exist.
func NewLocal(basePath string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Local{basePath: basePath}, nil
}

// Get returns the contents of the file for key, or ErrNotFound.
func (s *Local) Get(key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return string(data), nil
}

// Set writes value to the file for key. The write goes through a temp file
// and rename so a crash mid-write cannot leave a truncated value behind.
func (s *Local) Set(key string, value string) error {
	path := s.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit key %q: %w", key, err)
	}

	return nil
}

// path maps a key to a file path, flattening separators so keys cannot
// escape the base directory.
func (s *Local) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.basePath, name+".json")
}
