package cliparse

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port           int    `env:"PORT" envDefault:"3318"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DatabaseType   string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	CallerKeySalt  string `env:"CALLER_KEY_SALT"`
	IPHashSalt     string `env:"IP_HASH_SALT"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
}

// RegisterFlags defines the server flags. Flags left unset fall back
// to the environment.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.IntP("port", "p", 0, "Server port")
	flags.StringP("database-url", "d", "", "Database URL (empty keeps the ledger in memory)")
	flags.StringP("database-type", "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.String("caller-salt", "", "Caller token salt (prefer env)")
	flags.String("ip-salt", "", "IP hash salt (prefer env)")

	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text or json)")
	flags.Bool("metrics", true, "Expose /metrics")
	flags.String("env-file", ".env", "Optional dotenv file")
}

// ParseFlags parses args and resolves the full configuration
func ParseFlags(args []string) (Config, error) {
	flags := pflag.NewFlagSet("ballotd", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	return Load(flags)
}

// Load resolves configuration from the dotenv file, the environment and the
// flags, in increasing order of precedence.
func Load(flags *pflag.FlagSet) (Config, error) {
	var cfg Config

	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	// CLI overrides env
	var flagErr error
	flags.Visit(func(f *pflag.Flag) {
		var err error
		switch f.Name {
		case "port":
			cfg.Port, err = flags.GetInt("port")
		case "database-url":
			cfg.DatabaseURL = f.Value.String()
		case "database-type":
			cfg.DatabaseType = f.Value.String()
		case "caller-salt":
			cfg.CallerKeySalt = f.Value.String()
		case "ip-salt":
			cfg.IPHashSalt = f.Value.String()
		case "log-level":
			cfg.LogLevel = f.Value.String()
		case "log-format":
			cfg.LogFormat = f.Value.String()
		case "metrics":
			cfg.MetricsEnabled, err = flags.GetBool("metrics")
		}
		if err != nil && flagErr == nil {
			flagErr = err
		}
	})
	if flagErr != nil {
		return Config{}, flagErr
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	c.DatabaseType = strings.ToLower(c.DatabaseType)
	if c.DatabaseType != DatabaseSQLite && c.DatabaseType != DatabasePostgres {
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}

	// Secrets - MUST be provided
	if c.CallerKeySalt == "" {
		return errors.New("CALLER_KEY_SALT required")
	}
	if c.IPHashSalt == "" {
		c.IPHashSalt = c.CallerKeySalt
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger builds the process logger described by the config.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, _ := c.Level()
	opts := &slog.HandlerOptions{Level: lvl}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
