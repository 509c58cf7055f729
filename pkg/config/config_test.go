package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "5050")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:5050", c.HTTPAddr)
	require.Equal(t, "mongo", c.DBDriver)
	require.Equal(t, "ev-charging", c.DatabaseName)
	require.Equal(t, 24*time.Hour, c.JWTTTL)
	require.Equal(t, 15*time.Second, c.ShutdownTimeout)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, c.CORSAllowedOrigins)
	require.False(t, c.EnforceOwnership)
	require.False(t, c.TrustProxy)
	require.False(t, c.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_ADDR", "127.0.0.1:8081")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:stations.db")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ev.example.com, https://admin.example.com ,")
	t.Setenv("ENFORCE_OWNERSHIP", "true")
	t.Setenv("TRUST_PROXY", "true")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8081", c.HTTPAddr)
	require.Equal(t, "sqlite", c.DBDriver)
	require.Equal(t, "file:stations.db", c.DatabaseURL)
	require.Equal(t, 90*time.Minute, c.JWTTTL)
	require.Equal(t, []string{"https://ev.example.com", "https://admin.example.com"}, c.CORSAllowedOrigins)
	require.True(t, c.EnforceOwnership)
	require.True(t, c.TrustProxy)
	require.True(t, c.IsProduction())
}

func TestLoadMongoURIAlias(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGODB_URI", "mongodb://mongo.internal:27017/ev")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb://mongo.internal:27017/ev", c.DatabaseURL)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string][2]string{
		"short secret":   {"JWT_SECRET", "tiny"},
		"unknown driver": {"DB_DRIVER", "cassandra"},
		"bad env":        {"APP_ENV", "qa"},
		"bad ttl":        {"JWT_TTL", "soon"},
		"bad log format": {"LOG_FORMAT", "xml"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
		})
	}
}
