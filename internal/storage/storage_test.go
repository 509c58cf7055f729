package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/pkg/config"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, &config.Config{AppEnv: "test", DBDriver: "sqlite", DatabaseURL: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(ctx) })

	require.Equal(t, "sqlite", st.Driver())
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.Ping(ctx))

	u := &models.User{Email: "ada@example.com", Name: "Ada", PasswordHash: "x"}
	require.NoError(t, st.Users.Create(ctx, u))
	list, err := st.Stations.List(ctx, models.StationFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{DBDriver: "redis"}, zap.NewNop())
	require.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestPingAfterClose(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, &config.Config{AppEnv: "test", DBDriver: "sqlite", DatabaseURL: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, st.Close(ctx))
	require.Error(t, st.Ping(ctx))
}
