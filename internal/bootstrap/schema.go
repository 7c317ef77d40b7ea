package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const createUsersTableSQL = `CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	portal TEXT NOT NULL CHECK(portal IN ('client', 'broker')),
	created_at TEXT DEFAULT (datetime('now')),
	UNIQUE(email, portal)
)`

// EnsureSchema creates the users table on startup if it does not exist yet.
func EnsureSchema(lc fx.Lifecycle, db *sql.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := Migrate(ctx, db); err != nil {
				return err
			}
			if logger != nil {
				logger.Info("database schema ready")
			}
			return nil
		},
	})
}

// Migrate applies the schema to the given database handle.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createUsersTableSQL); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}
