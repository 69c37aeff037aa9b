package repo

import (
	"SmartDocs/internal/model"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB initializes an in-memory SQLite (modernc.org/sqlite) for
// repository tests. The DSN is derived from the test name so tests do not
// share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Document{}, &model.AccessGrant{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}
