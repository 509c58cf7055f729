package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/repository"
	"github.com/ev-charging/api/internal/repository/repotest"
	"github.com/ev-charging/api/pkg/database"
)

func TestSQLiteRepositories(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repotest.Harness {
		ctx := context.Background()
		db, err := database.OpenSQL(ctx, "sqlite", ":memory:", zap.NewNop(), false)
		require.NoError(t, err)
		require.NoError(t, repository.Migrate(ctx, db))
		t.Cleanup(func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		return repotest.Harness{
			Users:    repository.NewUserRepository(db),
			Stations: repository.NewStationRepository(db),
			NewID:    uuid.NewString,
		}
	})
}
