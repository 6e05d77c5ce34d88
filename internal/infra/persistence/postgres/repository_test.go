package postgres

import (
	"fmt"
	"testing"

	"orderdesk/internal/infra/persistence/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory sqlite database per test. The shared
// cache keeps all pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.AccountModel{},
		&model.RefreshTokenModel{},
		&model.PasswordResetModel{},
		&model.ProviderModel{},
		&model.CategoryModel{},
		&model.ProductModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
		&model.OrderCounterModel{},
		&model.NotificationModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
