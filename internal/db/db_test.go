package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteRunsMigrations(t *testing.T) {
	database, err := Connect(context.Background(), DriverSQLite, ":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"users", "chatrooms", "chatroom_members", "messages"} {
		var count int
		err := database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}
}

func TestConnectIsIdempotent(t *testing.T) {
	database, err := Connect(context.Background(), DriverSQLite, ":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, runMigrations(context.Background(), database))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), "mysql", "dsn", zerolog.Nop())
	require.Error(t, err)
}

func TestDialectPostgres(t *testing.T) {
	ddl := dialect(DriverPostgres, `id INTEGER PRIMARY KEY AUTOINCREMENT, admin_id INTEGER, created_at DATETIME`)
	assert.Equal(t, `id BIGSERIAL PRIMARY KEY, admin_id BIGINT, created_at TIMESTAMPTZ`, ddl)

	assert.Equal(t, "x INTEGER", dialect(DriverSQLite, "x INTEGER"))
}
