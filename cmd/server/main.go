package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/cache"
	"github.com/campushealth/clinicsync/internal/server/config"
	"github.com/campushealth/clinicsync/internal/server/filestore"
	"github.com/campushealth/clinicsync/internal/server/handlers"
	"github.com/campushealth/clinicsync/internal/server/jwt"
	"github.com/campushealth/clinicsync/internal/server/middleware"
	"github.com/campushealth/clinicsync/internal/server/reconcile"
	"github.com/campushealth/clinicsync/internal/server/router"
	"github.com/campushealth/clinicsync/internal/server/storage"
	"github.com/campushealth/clinicsync/internal/server/storage/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return err
	}

	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()
	logger.Info("sqlite storage ready", "path", cfg.Database.Path)

	if err := bootstrapAdmin(ctx, logger, store, cfg.Auth); err != nil {
		return err
	}

	files, err := filestore.New(cfg.Files.Dir)
	if err != nil {
		return err
	}

	var statsCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		statsCache, err = cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return err
		}
		logger.Info("redis cache ready", "addr", cfg.Cache.RedisAddress())
	default:
		statsCache = cache.NewMemoryCache()
	}
	defer func() {
		if err := statsCache.Close(); err != nil {
			logger.Error("failed to close cache", "error", err)
		}
	}()

	tokens := jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	reconciler := reconcile.New(store, files, logger)

	r := router.New(router.Config{
		Auth:      handlers.NewAuthHandler(logger, store, tokens),
		Sync:      handlers.NewSyncHandler(logger, reconciler),
		Health:    handlers.NewHealthHandler(logger),
		Dashboard: handlers.NewDashboardHandler(logger, store, statsCache, cfg.Cache.TTL),
		Medicines: handlers.NewMedicineHandler(logger, store),

		AuthMiddleware:    middleware.Auth(logger, tokens),
		LoggingMiddleware: middleware.Logging(logger),
		RecoverMiddleware: middleware.Recovery(logger),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// bootstrapAdmin creates the configured admin account on first start so a
// fresh deployment can be logged into without manual database surgery.
func bootstrapAdmin(ctx context.Context, logger *slog.Logger, users storage.UserStorage, cfg config.AuthConfig) error {
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	_, err := users.GetUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return err
	}

	logger.Info("admin account created", "email", cfg.AdminEmail)
	return nil
}
