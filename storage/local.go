package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes uploaded media under a single directory, the same
// directory the router serves statically at /uploads. Filenames are
// prefixed with a millisecond timestamp to avoid collisions between
// uploads sharing an original name.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the uploads directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save streams the upload to disk and returns the relative path that gets
// recorded on the tweet, e.g. "uploads/1724976000000-cat.png".
func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return dst, nil
}
