package repo

import (
	"SmartDocs/internal/model"

	gormpg "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB opens the database and runs migrations. A non-empty DSN selects
// Postgres; otherwise a local SQLite file is used (pure-Go driver, no cgo).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if dsn != "" {
		dial = gormpg.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: "smartdocs.db"}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.Document{}, &model.AccessGrant{}); err != nil {
		return nil, err
	}
	return db, nil
}
