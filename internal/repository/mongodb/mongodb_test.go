package mongodb_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ev-charging/api/internal/repository/mongodb"
	"github.com/ev-charging/api/internal/repository/repotest"
	"github.com/ev-charging/api/pkg/database"
)

func TestMongoRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	ctr, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := database.OpenMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repotest.Run(t, func(t *testing.T) repotest.Harness {
		db := client.Database("ev_" + uuid.NewString()[:8])
		require.NoError(t, mongodb.Migrate(ctx, db))
		t.Cleanup(func() { _ = db.Drop(context.Background()) })
		return repotest.Harness{
			Users:    mongodb.NewUserRepository(db),
			Stations: mongodb.NewStationRepository(db),
			NewID:    func() string { return bson.NewObjectID().Hex() },
		}
	})
}
