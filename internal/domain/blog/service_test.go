// internal/domain/blog/service_test.go
package blog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/storage"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Blog{}, &Image{}))
	return db
}

func testService(t *testing.T) *Service {
	t.Helper()

	cfg := &config.Config{
		Media: config.MediaConfig{URLPrefix: "/media/", LocalPath: t.TempDir()},
	}
	return NewService(setupTestDB(t), cfg)
}

func TestCreateDerivesSlug(t *testing.T) {
	svc := testService(t)

	view, err := svc.Create(&CreateRequest{
		Title:   "Caring For Leather Goods",
		Content: "<p>Wipe gently.</p>",
	}, "http://example.com")
	require.NoError(t, err)
	require.Equal(t, "caring-for-leather-goods", view.Slug)
	require.Equal(t, TypeManual, view.BlogType)
	require.True(t, view.IsPublished)
}

func TestCreatePDFBlogAndAttachPDF(t *testing.T) {
	cfg := &config.Config{
		Media: config.MediaConfig{URLPrefix: "/media/", LocalPath: t.TempDir()},
	}
	svc := NewService(setupTestDB(t), cfg)
	store := storage.NewLocal(cfg)

	created, err := svc.Create(&CreateRequest{
		Title:    "Quarterly Lookbook",
		BlogType: TypePDF,
		Excerpt:  "Highlights from the new season.",
	}, "http://example.com")
	require.NoError(t, err)
	require.Equal(t, TypePDF, created.BlogType)
	require.Equal(t, "Highlights from the new season.", created.Excerpt)
	require.Nil(t, created.PDFFile)

	view, err := svc.AttachPDF(
		store, created.ID,
		"lookbook.pdf", strings.NewReader("%PDF-1.4"),
		"cover.jpg", strings.NewReader("cover"),
		"http://example.com",
	)
	require.NoError(t, err)
	require.NotNil(t, view.PDFFile)
	require.Contains(t, *view.PDFFile, "http://example.com/media/blogs/pdfs/")
	require.NotNil(t, view.PDFThumbnail)
	require.Contains(t, *view.PDFThumbnail, "/media/blogs/pdf_thumbnails/")
}

func TestAttachPDFUnknownBlog(t *testing.T) {
	cfg := &config.Config{
		Media: config.MediaConfig{URLPrefix: "/media/", LocalPath: t.TempDir()},
	}
	svc := NewService(setupTestDB(t), cfg)
	store := storage.NewLocal(cfg)

	_, err := svc.AttachPDF(store, 42, "a.pdf", strings.NewReader("x"), "", nil, "http://example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDuplicateTitle(t *testing.T) {
	svc := testService(t)

	_, err := svc.Create(&CreateRequest{Title: "Hello World", Content: "x"}, "http://example.com")
	require.NoError(t, err)

	_, err = svc.Create(&CreateRequest{Title: "HELLO world!", Content: "y"}, "http://example.com")
	var ve *product.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "title", ve.Field)
}

func TestUpdateKeepsSlug(t *testing.T) {
	svc := testService(t)

	created, err := svc.Create(&CreateRequest{Title: "Hello World", Content: "x"}, "http://example.com")
	require.NoError(t, err)

	title := "Goodbye World"
	updated, err := svc.Update(created.ID, &UpdateRequest{Title: &title}, "http://example.com")
	require.NoError(t, err)
	require.Equal(t, "Goodbye World", updated.Title)
	require.Equal(t, "hello-world", updated.Slug)

	// Still reachable under the original slug.
	got, err := svc.GetBySlug("hello-world", "http://example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	svc := testService(t)

	_, err := svc.Create(&CreateRequest{Title: "Published Post", Content: "x"}, "http://example.com")
	require.NoError(t, err)

	draft := false
	_, err = svc.Create(&CreateRequest{Title: "Draft Post", Content: "y", IsPublished: &draft}, "http://example.com")
	require.NoError(t, err)

	views, err := svc.ListPublished("http://example.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Published Post", views[0].Title)

	// Drafts are hidden from the slug lookup too.
	_, err = svc.GetBySlug("draft-post", "http://example.com")
	require.ErrorIs(t, err, ErrNotFound)

	all, err := svc.ListAll("http://example.com")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
