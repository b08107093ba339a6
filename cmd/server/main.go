package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dhairyash-1/videotube-api/internal/database"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/worker"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = 10 * time.Minute
)

func main() {
	cfg := initConfig()
	initLogger(cfg)
	defer logger.Close()
	log := logger.GetAppLogger()

	client := initDatabase(cfg)
	db := client.Database(cfg.MongoDB_DBName)

	if _, err := InitCollections(db); err != nil {
		log.Fatalf("Failed to initialize collections: %v", err)
	}

	deps, err := initDependencies(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	app, err := InitFiberApp(cfg, client, deps)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go worker.NewUploadSweeper(cfg.UploadTmpDir, cfg.UploadTmpMaxAge, sweepInterval).Start(workerCtx)

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Address).Info("Starting server")
		serverErr <- app.Listen(cfg.Address)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("Server stopped")
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}

	stopWorkers()
	deps.close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = database.CloseInstance(ctx, client)
	log.Info("Server exited")
}
