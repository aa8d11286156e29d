// internal/pkg/storage/local.go
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

// Storage saves and deletes media files and resolves their public paths.
// Implementations must return paths relative to the media root so the
// serialization layer can absolutize them.
type Storage interface {
	Save(subdir, originalName string, src io.Reader) (string, error)
	Delete(path string) error
}

// Local stores files on the local filesystem under the configured media root.
type Local struct {
	root string
}

// NewLocal creates a local storage backed by cfg.Media.LocalPath.
func NewLocal(cfg *config.Config) *Local {
	return &Local{
		root: cfg.Media.LocalPath,
	}
}

// Save writes src under root/subdir with a collision-free name and returns
// the stored path relative to the media root.
func (l *Local) Save(subdir, originalName string, src io.Reader) (string, error) {
	dir := filepath.Join(l.root, filepath.FromSlash(subdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := uniqueName(originalName)
	relPath := filepath.ToSlash(filepath.Join(subdir, name))

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return relPath, nil
}

// Delete removes a stored file by its media-relative path.
func (l *Local) Delete(path string) error {
	if path == "" {
		return nil
	}
	full := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

// uniqueName keeps the original extension but replaces the base name with a
// UUID so concurrent uploads of identically named files never collide.
func uniqueName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
