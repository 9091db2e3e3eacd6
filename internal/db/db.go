package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Connect opens the database for the given driver and runs migrations.
func Connect(ctx context.Context, driver, dsn string, logger zerolog.Logger) (*sqlx.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if driver == DriverSQLite {
		// one writer; also keeps a :memory: database alive on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info().Str("driver", driver).Msg("database migrations applied")
	return db, nil
}

func runMigrations(ctx context.Context, db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            online BOOLEAN NOT NULL DEFAULT FALSE,
            avatar TEXT,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS chatrooms (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            admin_id INTEGER NOT NULL REFERENCES users(id),
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS chatroom_members (
            chatroom_id INTEGER NOT NULL REFERENCES chatrooms(id),
            user_id INTEGER NOT NULL REFERENCES users(id),
            joined_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (chatroom_id, user_id)
        );`,
		`CREATE TABLE IF NOT EXISTS messages (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            chatroom_id INTEGER NOT NULL REFERENCES chatrooms(id),
            user_id INTEGER NOT NULL REFERENCES users(id),
            content TEXT NOT NULL,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_chatroom ON messages (chatroom_id, id);`,
		`CREATE INDEX IF NOT EXISTS idx_chatroom_members_user ON chatroom_members (user_id);`,
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, dialect(db.DriverName(), m)); err != nil {
			return err
		}
	}
	return nil
}

// dialect adjusts the SQLite-flavoured DDL for Postgres.
func dialect(driver, ddl string) string {
	if driver != DriverPostgres {
		return ddl
	}
	ddl = strings.ReplaceAll(ddl, "INTEGER PRIMARY KEY AUTOINCREMENT", "BIGSERIAL PRIMARY KEY")
	ddl = strings.ReplaceAll(ddl, "INTEGER", "BIGINT")
	ddl = strings.ReplaceAll(ddl, "DATETIME", "TIMESTAMPTZ")
	return ddl
}
