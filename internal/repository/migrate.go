package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ev-charging/api/internal/models"
)

// Models returns every model that needs a table.
func Models() []any {
	return []any{
		&models.User{},
		&models.Station{},
	}
}

// Migrate creates or updates the tables for Models, then applies the
// indexes AutoMigrate cannot express. Safe to run repeatedly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	for _, m := range customMigrations {
		if err := m.run(db); err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}
	}
	return nil
}

type migration struct {
	name string
	run  func(*gorm.DB) error
}

var customMigrations = []migration{
	{"stations_status_connector_idx", addStationFilterIndex},
}

// addStationFilterIndex backs the combined status + connector type filter.
func addStationFilterIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_stations_status_connector
		ON stations(status, connector_type)
	`).Error
}
