// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists ballot snapshots so a ledger survives restarts.

# Connecting

Open picks the driver from the configured database type and pings it:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

sqlite uses modernc.org/sqlite (no cgo); postgres uses lib/pq.

# Schema

A single table holds one row per ballot:

  - id: ballot id
  - version: the ballot's mutation counter at save time
  - snapshot_id: random id of the write, for tracing
  - payload: JSON encoded ballot.Snapshot
  - saved_at: unix milliseconds

CreateSchema is safe to call multiple times.

# Saving

Save upserts a snapshot only when its version is newer than the stored one.
Handlers may save concurrently, and a slow writer holding an older snapshot
must not roll the row back.

# Restoring

At startup the server loads every row into an empty registry:

	n, err := store.RestoreInto(ctx, registry)
*/
package db
