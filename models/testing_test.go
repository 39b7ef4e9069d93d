package models

import (
	"testing"

	"github.com/shopspring/decimal"
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
	require.NoError(t, err, "failed to open test database")

	// a second connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, AutoMigrate(db), "failed to migrate test database")
	return db
}

func strPtr(s string) *string { return &s }

func mustCategory(t *testing.T, db *gorm.DB, name, code string) *Category {
	t.Helper()
	c := &Category{Name: name, Code: code}
	require.NoError(t, db.Create(c).Error)
	return c
}

func mustTechnique(t *testing.T, db *gorm.DB, name string) *PrintingTechnique {
	t.Helper()
	pt := &PrintingTechnique{Name: name}
	require.NoError(t, db.Create(pt).Error)
	return pt
}

func price(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

func mustProductID(t *testing.T, db *gorm.DB, code string) string {
	t.Helper()
	var p Product
	require.NoError(t, db.Where("code = ?", code).First(&p).Error)
	return p.ID
}

func noPrice() decimal.NullDecimal {
	return decimal.NullDecimal{}
}
