package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/memochat/internal/archive"
	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/backend/localdb"
	"github.com/iudanet/memochat/internal/backend/rest"
	"github.com/iudanet/memochat/internal/client/auth"
	"github.com/iudanet/memochat/internal/client/cli"
	"github.com/iudanet/memochat/internal/client/iocli"
	"github.com/iudanet/memochat/internal/client/storage/boltdb"
	"github.com/iudanet/memochat/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	io := iocli.NewStdio()

	if len(args) == 0 {
		cli.New(io, nil, nil, nil, logger).PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	// Локальная база клиента хранит сессию между запусками
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	b, cleanup, err := newBackend(ctx, cfg, io, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize backend: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	authService := auth.NewService(b, boltStorage, logger)
	archiver := archive.NewService(b, logger)
	c := cli.New(io, b, authService, archiver, logger)

	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newBackend выбирает hosted backend или локальную базу демо-режима
func newBackend(ctx context.Context, cfg *config.Config, io iocli.IO, logger *slog.Logger) (backend.Backend, func(), error) {
	if !cfg.DemoMode() {
		return rest.New(cfg.ServerURL, cfg.AnonKey, logger), func() {}, nil
	}

	io.Println("⚠ Demo mode: server is not configured, data stays on this machine.")
	io.Println("  Set MEMOCHAT_SERVER_URL and MEMOCHAT_ANON_KEY to use a server.")
	io.Println()

	store, err := localdb.New(ctx, cfg.DemoDB, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close demo database", "error", err)
		}
	}
	return store, cleanup, nil
}

func printVersion() {
	fmt.Printf("MemoChat Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
