package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpenSQLSqliteMemory(t *testing.T) {
	db, err := OpenSQL(context.Background(), "sqlite", "file::memory:", zap.NewNop(), false)
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	require.Equal(t, 1, one)
}

func TestOpenSQLRejectsUnknownDriver(t *testing.T) {
	_, err := OpenSQL(context.Background(), "oracle", "x", zap.NewNop(), false)
	require.ErrorContains(t, err, "unsupported sql driver")
}

func TestGormLoggerRespectsLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Warn)

	l.Info(context.Background(), "hidden %d", 1)
	l.Warn(context.Background(), "shown %d", 2)
	l.LogMode(gormlogger.Silent).Error(context.Background(), "silenced")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "shown 2", logs.All()[0].Message)
}
