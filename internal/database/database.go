// Package database opens the entity store selected by DATABASE_URL and keeps
// its schema current.
package database

import (
	"fmt"
	"log"
	"strings"

	"userstore/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the store selected by the databaseURL and brings the
// schema up to date. PostgreSQL URLs get the versioned SQL migrations;
// anything else is treated as a SQLite path and auto-migrated, which keeps
// local development and tests free of an external server.
func Open(databaseURL string) (*gorm.DB, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := RunMigrations(databaseURL); err != nil {
			return nil, err
		}
		return db, nil
	}

	path := strings.TrimPrefix(databaseURL, "sqlite://")
	log.Printf("DATABASE_URL is not postgres, using sqlite at %s", path)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates the schema straight from the models.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
