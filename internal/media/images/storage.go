// Package images stores uploaded recipe images on the filesystem and
// derives BlurHash placeholders from them.
package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Storage persists image files under a base directory. Filenames are
// random, so a stored name never collides and never reveals the uploader.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates storage rooted at basePath/recipes.
func NewStorage(basePath string) (*Storage, error) {
	dir := filepath.Join(basePath, "recipes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &Storage{basePath: dir}, nil
}

// Save writes image data under a fresh random name with the given
// extension and returns the stored filename.
func (s *Storage) Save(data []byte, ext string) (string, error) {
	name := uuid.New().String() + "." + strings.TrimPrefix(ext, ".")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.basePath, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return name, nil
}

// Get reads a stored image by filename.
func (s *Storage) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return os.ReadFile(s.Path(name))
}

// Exists reports whether a stored image is present.
func (s *Storage) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Delete removes a stored image. Deleting an absent file is not an error.
func (s *Storage) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

// Path returns the absolute path of a stored image. The name is reduced to
// its base so a stored value can never escape the image directory.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.basePath, filepath.Base(name))
}
