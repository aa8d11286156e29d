// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
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
		&product.Category{}, &product.Product{}, &product.ProductImage{}, &product.ProductDiscount{},
		&Cart{}, &Item{},
	))
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_one_active ON carts(user_id) WHERE is_active",
	).Error)

	return db
}

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	cfg := &config.Config{
		Media: config.MediaConfig{URLPrefix: "/media/", LocalPath: t.TempDir()},
	}
	return NewService(db, cfg), db
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku, price string) *product.Product {
	t.Helper()

	cat := product.Category{Name: name + " cat", Slug: product.Slugify(name + " cat"), IsActive: true}
	require.NoError(t, db.Create(&cat).Error)

	p := &product.Product{
		CategoryID: cat.ID,
		Name:       name,
		Slug:       product.Slugify(name),
		Price:      decimal.RequireFromString(price),
		SKU:        sku,
		Stock:      100,
		IsActive:   true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestGetOrCreateActiveCartReusesCart(t *testing.T) {
	svc, _ := testService(t)

	first, err := svc.GetOrCreateActiveCart(1)
	require.NoError(t, err)

	second, err := svc.GetOrCreateActiveCart(1)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	other, err := svc.GetOrCreateActiveCart(2)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, other.ID)
}

func TestOneActiveCartPerUserIndex(t *testing.T) {
	svc, db := testService(t)

	existing, err := svc.GetOrCreateActiveCart(1)
	require.NoError(t, err)

	// A direct duplicate insert hits the partial unique index; the
	// service recovers by rereading the winner's row.
	err = db.Create(&Cart{UserID: 1, IsActive: true}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	again, err := svc.GetOrCreateActiveCart(1)
	require.NoError(t, err)
	require.Equal(t, existing.ID, again.ID)

	// Archived carts don't block new active ones.
	require.NoError(t, db.Model(&Cart{}).Where("id = ?", existing.ID).
		Update("is_active", false).Error)
	fresh, err := svc.GetOrCreateActiveCart(1)
	require.NoError(t, err)
	require.NotEqual(t, existing.ID, fresh.ID)
}

func TestAddItemIncrementsQuantity(t *testing.T) {
	svc, db := testService(t)
	p := seedProduct(t, db, "Mug", "MUG-1", "4.50")

	view, err := svc.AddItem(1, &AddItemRequest{ProductID: p.ID, Quantity: 2}, "http://example.com")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 2, view.Items[0].Quantity)

	view, err = svc.AddItem(1, &AddItemRequest{ProductID: p.ID, Quantity: 3}, "http://example.com")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 5, view.Items[0].Quantity)
	require.Equal(t, 5, view.TotalItems)
	require.True(t, view.TotalAmount.Equal(decimal.RequireFromString("22.50")))
}

func TestAddItemDistinctColors(t *testing.T) {
	svc, db := testService(t)
	p := seedProduct(t, db, "Shirt", "SHT-1", "15.00")

	_, err := svc.AddItem(1, &AddItemRequest{ProductID: p.ID, Color: "Red"}, "http://example.com")
	require.NoError(t, err)

	view, err := svc.AddItem(1, &AddItemRequest{ProductID: p.ID, Color: "Blue"}, "http://example.com")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
}

func TestAddItemDefaultsQuantityAndColor(t *testing.T) {
	svc, db := testService(t)
	p := seedProduct(t, db, "Mug", "MUG-1", "4.50")

	view, err := svc.AddItem(1, &AddItemRequest{ProductID: p.ID}, "http://example.com")
	require.NoError(t, err)
	require.Equal(t, 1, view.Items[0].Quantity)
	require.Equal(t, "Default", view.Items[0].Color)
}

func TestAddInactiveProduct(t *testing.T) {
	svc, db := testService(t)
	p := seedProduct(t, db, "Mug", "MUG-1", "4.50")
	require.NoError(t, db.Model(&product.Product{}).Where("id = ?", p.ID).
		Update("is_active", false).Error)

	_, err := svc.AddItem(1, &AddItemRequest{ProductID: p.ID}, "http://example.com")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, db := testService(t)
	p := seedProduct(t, db, "Mug", "MUG-1", "4.50")

	view, err := svc.AddItem(1, &AddItemRequest{ProductID: p.ID}, "http://example.com")
	require.NoError(t, err)
	itemID := view.Items[0].ID

	view, err = svc.RemoveItem(1, itemID, "http://example.com")
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestRemoveItemFromOtherUsersCart(t *testing.T) {
	svc, db := testService(t)
	p := seedProduct(t, db, "Mug", "MUG-1", "4.50")

	view, err := svc.AddItem(1, &AddItemRequest{ProductID: p.ID}, "http://example.com")
	require.NoError(t, err)

	_, err = svc.RemoveItem(2, view.Items[0].ID, "http://example.com")
	require.ErrorIs(t, err, ErrItemNotFound)
}
