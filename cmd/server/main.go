package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/daliev/quizroom/internal/config"
	"github.com/daliev/quizroom/internal/database"
	"github.com/daliev/quizroom/internal/room"
	"github.com/daliev/quizroom/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	// Local development convenience; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Stores ---
	store, err := room.NewSQLiteStore(ctx, db)
	if err != nil {
		return fmt.Errorf("init room store: %w", err)
	}

	hosts, err := server.NewHostStore(ctx, db)
	if err != nil {
		return fmt.Errorf("init host store: %w", err)
	}

	if err := server.Seed(ctx, logger, hosts, cfg.HostEmail, cfg.HostPassword); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	rooms := room.NewRegistry(room.Mode(cfg.DefaultMode), store)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, rooms, hosts, db, cfg.SPADir)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
