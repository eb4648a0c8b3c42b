// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command ballotd serves a delegable-voting ballot ledger over HTTP.

A creator opens a ballot with a fixed list of options and enrolls voters.
Each enrolled voter holds one vote, which they can cast or hand to another
identity. The creator closes the ballot; results can be limited to
enrolled identities.

# Starting the Server

	CALLER_KEY_SALT=... ballotd serve

Or with flags:

	ballotd serve -p 3318 -d ledger.db --caller-salt ...

Without DATABASE_URL the ledger is kept in memory only. With it, every
ballot is saved after each change and restored at startup (sqlite by
default, postgres with -t postgres).

# Caller Tokens

Requests name their caller in X-Caller and prove it with X-Caller-Token:

	ballotd token alice

prints alice's token for the configured salt.

# Configuration

Required settings:

  - CALLER_KEY_SALT (--caller-salt): Secret for caller token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): snapshot store
  - IP_HASH_SALT, LOG_LEVEL, LOG_FORMAT, METRICS_ENABLED

A .env file in the working directory is read first; see package cliparse.

# Architecture

  - ballot: the ledger itself (ballots, registry, errors, snapshots)
  - handlers: HTTP request handlers (ballots, voters, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Caller tokens and IP hashing
  - db: Snapshot store
  - metrics: Prometheus counters
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
