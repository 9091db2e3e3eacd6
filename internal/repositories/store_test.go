package repositories

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"chatroom-service/internal/db"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Connect(context.Background(), db.DriverSQLite, ":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func createUser(t *testing.T, repo *UserRepo, username string) int64 {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), username, "hash-"+username)
	require.NoError(t, err)
	return user.ID
}
