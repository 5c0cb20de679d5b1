package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/campushealth/clinicsync/internal/client/api"
	"github.com/campushealth/clinicsync/internal/client/cli"
	"github.com/campushealth/clinicsync/internal/client/queue/boltdb"
	syncsvc "github.com/campushealth/clinicsync/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "clinicsync-client.db", "Path to local database")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		fmt.Printf("ClinicSync Client\n")
		fmt.Printf("Version:    %s\n", Version)
		fmt.Printf("Build Date: %s\n", BuildDate)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)

	tokenFunc := func(ctx context.Context) (string, error) {
		auth, err := store.GetAuth(ctx)
		if err != nil {
			return "", fmt.Errorf("not logged in, run 'clinicsync login' first")
		}
		if auth.Expired() {
			return "", fmt.Errorf("session expired, run 'clinicsync login' again")
		}
		return auth.AccessToken, nil
	}

	syncService := syncsvc.NewService(apiClient, store, tokenFunc, syncsvc.Options{
		Logger: logger,
	})

	c := cli.New(apiClient, store, syncService)
	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
