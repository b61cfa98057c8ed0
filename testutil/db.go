// Package testutil opens throwaway in-memory databases for tests. The
// sqlite driver speaks the same GORM API as the production mysql driver.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studyroom-backend/models"
)

var dbSeq int64

// OpenDB returns a fresh migrated in-memory database. Each call gets its
// own database; cache=shared plus a single connection keeps it alive for
// the whole test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.AdminToken{},
		&models.Room{},
		&models.Reservation{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
