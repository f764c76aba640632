// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"readquest/backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each new connection to ":memory:" would open a fresh, empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// CreateUser inserts a reader with the given XP and a consistent level.
func CreateUser(t *testing.T, db *gorm.DB, id string, xp int) *models.User {
	t.Helper()
	u := &models.User{ID: id, XP: xp, Level: models.LevelForXP(xp)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// FixedClock returns a clock pinned to the given instant.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
