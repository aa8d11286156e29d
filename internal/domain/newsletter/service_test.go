// internal/domain/newsletter/service_test.go
package newsletter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Subscriber{}))
	return db
}

func TestSubscribe(t *testing.T) {
	svc := NewService(setupTestDB(t))

	sub, created, err := svc.Subscribe("Reader@Example.com")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "reader@example.com", sub.Email)
	require.True(t, sub.IsActive)
	require.False(t, sub.SubscribedAt.IsZero())

	payload, err := json.Marshal(sub)
	require.NoError(t, err)
	require.Contains(t, string(payload), `"subscribed_at"`)
}

func TestSubscribeTwiceKeepsOneRow(t *testing.T) {
	svc := NewService(setupTestDB(t))

	_, created, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)
	require.True(t, created)

	sub, created, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)
	require.False(t, created)
	require.True(t, sub.IsActive)

	var count int64
	require.NoError(t, svc.db.Model(&Subscriber{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSubscribeRecoversFromInsertRace(t *testing.T) {
	svc := NewService(setupTestDB(t))

	// Simulate losing the insert race: the row appears after the
	// lookup but before our insert.
	require.NoError(t, svc.db.Create(&Subscriber{Email: "reader@example.com", IsActive: true}).Error)

	err := svc.db.Create(&Subscriber{Email: "reader@example.com", IsActive: true}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	sub, created, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)
	require.False(t, created)
	require.True(t, sub.IsActive)
}

func TestUnsubscribeAndResubscribe(t *testing.T) {
	svc := NewService(setupTestDB(t))

	_, _, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe("reader@example.com"))

	var sub Subscriber
	require.NoError(t, svc.db.Where("email = ?", "reader@example.com").First(&sub).Error)
	require.False(t, sub.IsActive)

	// Resubscribing reactivates the same row.
	revived, created, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)
	require.False(t, created)
	require.True(t, revived.IsActive)
	require.Equal(t, sub.ID, revived.ID)
	// The first-subscription timestamp survives the round trip.
	require.True(t, revived.SubscribedAt.Equal(sub.SubscribedAt))
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	svc := NewService(setupTestDB(t))

	err := svc.Unsubscribe("ghost@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListActiveExcludesUnsubscribed(t *testing.T) {
	svc := NewService(setupTestDB(t))

	_, _, err := svc.Subscribe("a@example.com")
	require.NoError(t, err)
	_, _, err = svc.Subscribe("b@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe("a@example.com"))

	active, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "b@example.com", active[0].Email)

	all, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
}
