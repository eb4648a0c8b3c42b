// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands built with cobra register the same flags on their own flag set and
resolve them with Load:

	cliparse.RegisterFlags(cmd.Flags())
	cfg, err := cliparse.Load(cmd.Flags())

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Snapshot store connection string (empty: memory only)
  - DatabaseType: sqlite (default) or postgres
  - CallerKeySalt: Secret for caller token HMAC (required)
  - IPHashSalt: Secret for request log IP hashing (default: CallerKeySalt)
  - LogLevel, LogFormat: slog level and text/json handler
  - MetricsEnabled: serve GET /metrics (default: true)

# CLI Flags

	-p, --port          Server port
	-d, --database-url  Database URL
	-t, --database-type Database type
	--caller-salt       Caller token salt
	--ip-salt           IP hash salt
	--log-level         debug, info, warn, error
	--log-format        text or json
	--metrics           Expose /metrics
	--env-file          Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables, which fall back to the dotenv
file:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CALLER_KEY_SALT → --caller-salt
	IP_HASH_SALT    → --ip-salt
	LOG_LEVEL       → --log-level
	LOG_FORMAT      → --log-format
	METRICS_ENABLED → --metrics

CLI flags take precedence over environment variables. A missing dotenv file
is not an error.

# Validation

Load returns an error if CALLER_KEY_SALT is missing, the port is out of
range, or the database type, log level or log format is unknown.
*/
package cliparse
