package db

import (
	"context"
	"database/sql"
)

const sessionsMigration = `
CREATE TABLE IF NOT EXISTS sessions (
    session_id text PRIMARY KEY,
    email text NOT NULL,
    nickname text NOT NULL,
    client_ip text NOT NULL DEFAULT '',
    client_mac text NOT NULL DEFAULT '',
    server_ip text NOT NULL DEFAULT '',
    server_mac text NOT NULL DEFAULT '',
    status text NOT NULL DEFAULT 'Active',
    created_at text NOT NULL,
    last_accessed text NOT NULL,
    updated_at text NOT NULL
);

CREATE INDEX IF NOT EXISTS sessions_status_idx
ON sessions (status);
`

func RunSessionsMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, sessionsMigration)
	return err
}
