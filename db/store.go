// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballot-ledger/ballot"
	"github.com/danielhkuo/ballot-ledger/cliparse"
)

// Open connects to the snapshot database and verifies the connection.
func Open(ctx context.Context, databaseType, url string) (*sql.DB, error) {
	var driver string
	switch databaseType {
	case cliparse.DatabaseSQLite:
		driver = "sqlite"
	case cliparse.DatabasePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", databaseType, err)
	}
	if driver == "sqlite" {
		// sqlite allows a single writer
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", databaseType, err)
	}
	return conn, nil
}

// Store persists ballot snapshots, one row per ballot.
type Store struct {
	db       *sql.DB
	postgres bool
}

func NewStore(db *sql.DB, databaseType string) *Store {
	return &Store{db: db, postgres: databaseType == cliparse.DatabasePostgres}
}

// rebind rewrites ? placeholders as $n for postgres.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Save writes the snapshot unless a newer version of the same ballot is
// already stored, so out-of-order saves cannot roll a ballot back.
func (s *Store) Save(ctx context.Context, snap ballot.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode ballot %d: %w", snap.ID, err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO ballot_snapshot (id, version, snapshot_id, payload, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			version = excluded.version,
			snapshot_id = excluded.snapshot_id,
			payload = excluded.payload,
			saved_at = excluded.saved_at
		WHERE ballot_snapshot.version < excluded.version
	`), int64(snap.ID), int64(snap.Version), uuid.NewString(), string(payload), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save ballot %d: %w", snap.ID, err)
	}
	return nil
}

// LoadAll returns every stored snapshot ordered by ballot id.
func (s *Store) LoadAll(ctx context.Context) ([]ballot.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, payload FROM ballot_snapshot ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []ballot.Snapshot
	for rows.Next() {
		var (
			id      int64
			payload string
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var snap ballot.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, fmt.Errorf("decode ballot %d: %w", id, err)
		}
		if int64(snap.ID) != id {
			return nil, fmt.Errorf("ballot %d: payload carries id %d", id, snap.ID)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

// Version returns the stored version of a ballot.
func (s *Store) Version(ctx context.Context, id ballot.ID) (uint64, bool, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT version FROM ballot_snapshot WHERE id = ?`), int64(id)).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query ballot %d version: %w", id, err)
	}
	return uint64(v), true, nil
}

// RestoreInto loads every stored ballot into an empty registry and returns
// how many were restored.
func (s *Store) RestoreInto(ctx context.Context, reg *ballot.Registry) (int, error) {
	snaps, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := reg.Restore(snaps); err != nil {
		return 0, fmt.Errorf("restore registry: %w", err)
	}
	return len(snaps), nil
}
