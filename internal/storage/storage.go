// Package storage opens the configured database and hands out the
// repositories backed by it.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ev-charging/api/internal/repository"
	"github.com/ev-charging/api/internal/repository/mongodb"
	"github.com/ev-charging/api/pkg/config"
	"github.com/ev-charging/api/pkg/database"
)

// Store bundles the repositories of one database connection.
type Store struct {
	Users    repository.UserRepository
	Stations repository.StationRepository

	driver  string
	migrate func(context.Context) error
	ping    func(context.Context) error
	close   func(context.Context) error
}

// Open connects to the database named by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	switch cfg.DBDriver {
	case "mongo":
		client, err := database.OpenMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewMongo(client, cfg.DatabaseName), nil
	case "postgres", "sqlite":
		verbose := cfg.AppEnv == "development" || cfg.AppEnv == "test"
		db, err := database.OpenSQL(ctx, cfg.DBDriver, cfg.DatabaseURL, log, verbose)
		if err != nil {
			return nil, err
		}
		return NewSQL(cfg.DBDriver, db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// NewSQL wraps an open gorm connection.
func NewSQL(driver string, db *gorm.DB) *Store {
	return &Store{
		Users:    repository.NewUserRepository(db),
		Stations: repository.NewStationRepository(db),
		driver:   driver,
		migrate:  func(ctx context.Context) error { return repository.Migrate(ctx, db) },
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// NewMongo wraps a connected client using database name.
func NewMongo(client *mongo.Client, name string) *Store {
	db := client.Database(name)
	return &Store{
		Users:    mongodb.NewUserRepository(db),
		Stations: mongodb.NewStationRepository(db),
		driver:   "mongo",
		migrate:  func(ctx context.Context) error { return mongodb.Migrate(ctx, db) },
		ping:     func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		close:    client.Disconnect,
	}
}

// Driver names the backend in use.
func (s *Store) Driver() string { return s.driver }

// Migrate creates tables or indexes. Safe to run on every start.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", s.driver, err)
	}
	return nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }
