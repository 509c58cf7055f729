package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := InitWriter("debug", "json", &buf)
	require.NoError(t, err)

	l.Info("station created", zap.String("station_id", "s-1"))
	Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "station created", entry["message"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "s-1", entry["station_id"])
	require.Same(t, l, L())
}

func TestCallerIsTheLoggingSite(t *testing.T) {
	var buf bytes.Buffer
	_, err := InitWriter("info", "json", &buf)
	require.NoError(t, err)

	L().Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Contains(t, entry["caller"], "logger/logger_test.go:")
}

func TestInitRejectsBadInput(t *testing.T) {
	_, err := Init("loud", "json")
	require.Error(t, err)

	_, err = Init("info", "xml")
	require.Error(t, err)
}
