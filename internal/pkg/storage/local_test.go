// internal/pkg/storage/local_test.go
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

func testLocal(t *testing.T) (*Local, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{Media: config.MediaConfig{LocalPath: root}}
	return NewLocal(cfg), root
}

func TestSaveReturnsRelativePath(t *testing.T) {
	store, root := testLocal(t)

	path, err := store.Save("products", "photo.JPG", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(path, "products/"))
	require.True(t, strings.HasSuffix(path, ".jpg"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(data))
}

func TestSaveNeverCollides(t *testing.T) {
	store, _ := testLocal(t)

	first, err := store.Save("products", "photo.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save("products", "photo.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestDelete(t *testing.T) {
	store, root := testLocal(t)

	path, err := store.Save("products", "photo.jpg", strings.NewReader("a"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	require.True(t, os.IsNotExist(err))

	// Empty paths are a no-op.
	require.NoError(t, store.Delete(""))
}
