// @title           Serwer tabel API
// @version         1.0
// @description     Upload delimited files and query sorted, filtered views of them.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"serwer-tabel/internal/api"
	"serwer-tabel/internal/config"
	"serwer-tabel/internal/database"
	"serwer-tabel/internal/database/postgres"
	"serwer-tabel/internal/database/sqlite"
	"serwer-tabel/internal/files"
	"serwer-tabel/internal/logging"
	"serwer-tabel/internal/storage"
	"serwer-tabel/internal/websocket"

	_ "serwer-tabel/docs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "serwer-tabel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("nie można wczytać konfiguracji: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) must be set")
	}

	log := logging.New(os.Stdout, cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info(ctx, "Pomyślnie połączono z bazą danych", "driver", cfg.DB.Driver)

	fileStore, err := openFileStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	log.Info(ctx, "Pliki będą przechowywane", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "bucket", cfg.Storage.S3.Bucket)

	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	svc := files.NewService(store, fileStore, wsHub, log, files.Options{
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		MaxUploadBytes:    cfg.Upload.MaxBytes,
	})
	server := api.NewServer(cfg, store, svc, wsHub, log)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "Uruchamianie serwera", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("nie można uruchomić serwera: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "Zamykanie serwera")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.DBConfig) (database.Store, error) {
	switch cfg.Driver {
	case database.DialectPostgres:
		store, err := postgres.Open(ctx, cfg.Source)
		if err != nil {
			return nil, err
		}
		return store, nil
	case database.DialectSQLite:
		if dir := filepath.Dir(cfg.Source); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.Source)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown db.driver %q", cfg.Driver)
}

func openFileStore(ctx context.Context, cfg config.StorageConfig) (storage.FileStore, error) {
	switch cfg.Backend {
	case "local":
		ls, err := storage.NewLocalStorage(cfg.Path)
		if err != nil {
			return nil, err
		}
		return ls, nil
	case "s3":
		s3s, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return s3s, nil
	}
	return nil, fmt.Errorf("unknown storage.backend %q", cfg.Backend)
}
