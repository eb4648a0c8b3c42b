package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/ballot-ledger/ballot"
	"github.com/danielhkuo/ballot-ledger/cliparse"
	"github.com/danielhkuo/ballot-ledger/db"
	"github.com/danielhkuo/ballot-ledger/handlers"
	"github.com/danielhkuo/ballot-ledger/metrics"
	"github.com/danielhkuo/ballot-ledger/middleware"
	"github.com/danielhkuo/ballot-ledger/router"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ballot ledger API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.Load(cmd.Flags())
			if err != nil {
				return err
			}
			slog.SetDefault(cfg.NewLogger(os.Stderr))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cliparse.RegisterFlags(cmd.Flags())
	return cmd
}

func serve(ctx context.Context, cfg cliparse.Config) error {
	registry := ballot.NewRegistry(ballot.WithLogger(slog.Default()))

	var store *db.Store
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.CreateSchema(ctx, conn); err != nil {
			return err
		}
		store = db.NewStore(conn, cfg.DatabaseType)

		n, err := store.RestoreInto(ctx, registry)
		if err != nil {
			return err
		}
		slog.Info("ledger restored", "database", cfg.DatabaseType, "ballots", n)
	} else {
		slog.Warn("no DATABASE_URL set, ledger is kept in memory only")
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
	}

	mux := router.NewRouter(handlers.Ledger{
		Registry: registry,
		Store:    store,
		Metrics:  recorder,
	}, cfg)

	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "ballots", registry.Len())
	}
	return err
}
