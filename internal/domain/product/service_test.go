// internal/domain/product/service_test.go
package product

import (
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront-backend/internal/config"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&Category{}, &Product{}, &ProductImage{}, &ProductDiscount{},
	))

	return db
}

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	cfg := &config.Config{
		Media: config.MediaConfig{URLPrefix: "/media/", LocalPath: t.TempDir()},
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewService(db, cfg, log), db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *Category {
	t.Helper()
	c := &Category{Name: name, Slug: Slugify(name), IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Leather Wallet":        "leather-wallet",
		"  Spaced  Out  ":       "spaced-out",
		"Caps AND symbols! #1":  "caps-and-symbols-1",
		"under_scores_and-dash": "under-scores-and-dash",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in))
	}
}

func TestCreateProduct(t *testing.T) {
	svc, _ := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	dp := "19.99"
	view, err := svc.CreateProduct(&CreateRequest{
		CategoryID:    cat.ID,
		Name:          "Leather Wallet",
		Description:   "Hand stitched",
		Price:         decimal.RequireFromString("25.50"),
		SKU:           "WAL-001",
		Stock:         12,
		DiscountPrice: &dp,
	}, "http://example.com")
	require.NoError(t, err)

	require.Equal(t, "leather-wallet", view.Slug)
	require.Equal(t, "Accessories", view.Category.Name)
	require.True(t, view.Price.Equal(decimal.RequireFromString("25.50")))

	// Discount keys are hoisted to the top level.
	require.NotNil(t, view.DiscountPrice)
	require.True(t, view.DiscountPrice.Equal(decimal.RequireFromString("19.99")))
	require.NotNil(t, view.OriginalPrice)
	require.True(t, view.OriginalPrice.Equal(decimal.RequireFromString("25.50")))
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, _ := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	_, err := svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "First", Price: decimal.NewFromInt(10), SKU: "SKU-1",
	}, "http://example.com")
	require.NoError(t, err)

	_, err = svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "Second", Price: decimal.NewFromInt(10), SKU: "SKU-1",
	}, "http://example.com")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "sku", ve.Field)
}

func TestCreateProductDuplicateName(t *testing.T) {
	svc, _ := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	_, err := svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "Leather Wallet", Price: decimal.NewFromInt(10), SKU: "SKU-1",
	}, "http://example.com")
	require.NoError(t, err)

	// Different name, same derived slug.
	_, err = svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "LEATHER wallet!", Price: decimal.NewFromInt(10), SKU: "SKU-2",
	}, "http://example.com")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "name", ve.Field)
}

func TestUpdateProductKeepsSlug(t *testing.T) {
	svc, _ := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	created, err := svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "Leather Wallet", Price: decimal.NewFromInt(10), SKU: "SKU-1",
	}, "http://example.com")
	require.NoError(t, err)

	name := "Canvas Wallet"
	updated, err := svc.UpdateProduct(created.ID, &UpdateRequest{Name: &name}, "http://example.com")
	require.NoError(t, err)

	require.Equal(t, "Canvas Wallet", updated.Name)
	require.Equal(t, "leather-wallet", updated.Slug)
}

func TestUpdateProductClearsDiscount(t *testing.T) {
	svc, db := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	dp := "5.00"
	created, err := svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "Thing", Price: decimal.NewFromInt(10), SKU: "SKU-1",
		DiscountPrice: &dp,
	}, "http://example.com")
	require.NoError(t, err)
	require.NotNil(t, created.DiscountPrice)

	empty := ""
	updated, err := svc.UpdateProduct(created.ID, &UpdateRequest{DiscountPrice: &empty}, "http://example.com")
	require.NoError(t, err)
	require.Nil(t, updated.DiscountPrice)
	require.Nil(t, updated.OriginalPrice)

	var count int64
	require.NoError(t, db.Model(&ProductDiscount{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDiscountUpsertKeepsSingleRow(t *testing.T) {
	svc, db := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	dp := "5.00"
	created, err := svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "Thing", Price: decimal.NewFromInt(10), SKU: "SKU-1",
		DiscountPrice: &dp,
	}, "http://example.com")
	require.NoError(t, err)

	dp2 := "7.50"
	updated, err := svc.UpdateProduct(created.ID, &UpdateRequest{DiscountPrice: &dp2}, "http://example.com")
	require.NoError(t, err)
	require.True(t, updated.DiscountPrice.Equal(decimal.RequireFromString("7.50")))

	var count int64
	require.NoError(t, db.Model(&ProductDiscount{}).Where("product_id = ?", created.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetProductsUnknownCategorySlug(t *testing.T) {
	svc, _ := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	_, err := svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "Thing", Price: decimal.NewFromInt(10), SKU: "SKU-1",
	}, "http://example.com")
	require.NoError(t, err)

	views, err := svc.GetProducts("no-such-category", "http://example.com")
	require.NoError(t, err)
	require.Empty(t, views)

	views, err = svc.GetProducts("accessories", "http://example.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestGetProductsExcludesInactive(t *testing.T) {
	svc, db := testService(t)
	cat := seedCategory(t, svc.db, "Accessories")

	created, err := svc.CreateProduct(&CreateRequest{
		CategoryID: cat.ID, Name: "Thing", Price: decimal.NewFromInt(10), SKU: "SKU-1",
	}, "http://example.com")
	require.NoError(t, err)

	require.NoError(t, db.Model(&Product{}).Where("id = ?", created.ID).
		Update("is_active", false).Error)

	views, err := svc.GetProducts("", "http://example.com")
	require.NoError(t, err)
	require.Empty(t, views)

	// Still retrievable by direct ID.
	view, err := svc.GetProduct(created.ID, "http://example.com")
	require.NoError(t, err)
	require.False(t, view.IsActive)
}

func TestResolveMediaURL(t *testing.T) {
	require.Nil(t, ResolveMediaURL("http://example.com", "/media/", ""))

	got := ResolveMediaURL("http://example.com", "/media/", "products/a.jpg")
	require.NotNil(t, got)
	require.Equal(t, "http://example.com/media/products/a.jpg", *got)

	passthrough := ResolveMediaURL("http://example.com", "/media/", "https://cdn.example.com/a.jpg")
	require.NotNil(t, passthrough)
	require.Equal(t, "https://cdn.example.com/a.jpg", *passthrough)

	// A path already carrying the media prefix is not prefixed again.
	prefixed := ResolveMediaURL("http://example.com", "/media/", "/media/products/a.jpg")
	require.NotNil(t, prefixed)
	require.Equal(t, "http://example.com/media/products/a.jpg", *prefixed)
}

func TestGetCategoriesTree(t *testing.T) {
	svc, db := testService(t)

	parent := seedCategory(t, db, "Clothing")
	child := &Category{Name: "Shirts", Slug: "shirts", IsActive: true, ParentID: &parent.ID}
	require.NoError(t, db.Create(child).Error)
	hidden := &Category{Name: "Hidden", Slug: "hidden", IsActive: false, ParentID: &parent.ID}
	require.NoError(t, db.Create(hidden).Error)
	inactiveTop := &Category{Name: "Retired", Slug: "retired", IsActive: false}
	require.NoError(t, db.Create(inactiveTop).Error)

	views, err := svc.GetCategories("http://example.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Clothing", views[0].Name)
	require.Len(t, views[0].Children, 1)
	require.Equal(t, "Shirts", views[0].Children[0].Name)
}

func TestValidateParentTwoLevels(t *testing.T) {
	svc, db := testService(t)

	parent := seedCategory(t, db, "Clothing")
	childView, err := svc.CreateCategory(&CategoryCreateRequest{
		Name: "Shirts", ParentID: &parent.ID,
	}, "http://example.com")
	require.NoError(t, err)

	// A child cannot itself become a parent.
	_, err = svc.CreateCategory(&CategoryCreateRequest{
		Name: "Dress Shirts", ParentID: &childView.ID,
	}, "http://example.com")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "parent_id", ve.Field)
}
