package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/repository"
	"github.com/ev-charging/api/internal/repository/repotest"
	"github.com/ev-charging/api/pkg/database"
)

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ev_charging"),
		tcpostgres.WithUsername("ev"),
		tcpostgres.WithPassword("ev"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.OpenSQL(ctx, "postgres", dsn, zap.NewNop(), false)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(ctx, db))

	repotest.Run(t, func(t *testing.T) repotest.Harness {
		require.NoError(t, db.Exec("TRUNCATE stations, users").Error)
		return repotest.Harness{
			Users:    repository.NewUserRepository(db),
			Stations: repository.NewStationRepository(db),
			NewID:    uuid.NewString,
		}
	})
}
