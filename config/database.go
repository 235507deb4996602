package config

import (
	"os"

	"pharmaflow-backend/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Records is the record-store port every service talks to. Wired to
// the gorm-backed store on startup; tests swap in a memory store.
var Records store.Store

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
	Records = store.NewGormStore(db)
}
