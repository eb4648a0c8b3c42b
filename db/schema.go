// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The payload column holds the JSON encoded ballot.Snapshot. TEXT and BIGINT
// keep the schema valid on both sqlite and postgres.
const schema = `
CREATE TABLE IF NOT EXISTS ballot_snapshot (
    id BIGINT PRIMARY KEY,
    version BIGINT NOT NULL,
    snapshot_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    saved_at BIGINT NOT NULL
);
`
