package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sheetviz/adapters/postgres"
	"sheetviz/adapters/storage"
	"sheetviz/app"
	"sheetviz/internal"
	"sheetviz/internal/config"
	"sheetviz/internal/errors"
	"sheetviz/internal/ingest"
	"sheetviz/internal/migration"
	"sheetviz/internal/ops"
	"sheetviz/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and applies the schema
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetMaxIdleConns(appConfig.Database.MaxIdleConns)
	db.SetConnMaxLifetime(appConfig.Database.ConnMaxLifetime)

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(ctx, appConfig)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	parserOpts := ingest.DefaultOptions()
	parserOpts.MaxBytes = appConfig.Upload.MaxBytes
	parserOpts.Sheet = appConfig.Upload.Sheet
	pipeline := app.NewDefaultPipeline(parserOpts, logger)

	cache := app.NewTableCache(appConfig.Upload.CacheTTL)
	go cache.RunJanitor(ctx, appConfig.Upload.CacheTTL)
	uploads := app.NewUploadService(
		postgres.NewFileRepository(db),
		storage.NewLocalFileStorage(appConfig.Storage.BasePath),
		pipeline,
		cache,
		app.UploadConfig{MaxBytes: appConfig.Upload.MaxBytes, SampleRows: appConfig.Upload.SampleRows},
		logger,
	)
	charts := app.NewChartService(uploads, postgres.NewChartRepository(db), pipeline, logger)

	server := ui.NewServer(uploads, charts, ui.Config{
		GinMode:        appConfig.Server.GinMode,
		MaxUploadBytes: appConfig.Upload.MaxBytes,
	}, logger)

	errCh := make(chan error, 2)
	go func() {
		errCh <- server.Start(":" + appConfig.Server.Port)
	}()

	opsServer := ops.NewServer(db, appConfig.Ops.Profiler, logger)
	go func() {
		errCh <- opsServer.Start(":" + appConfig.Ops.Port)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("API shutdown: %v", err)
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Ops shutdown: %v", err)
	}
}
