package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dhairyash-1/videotube-api/config"
	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/database"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// initConfig loads the env file and parses the environment. It runs before the logger so
// LOG_* variables from the env file are visible to it.
func initConfig() *config.Configuration {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	return cfg
}

// initLogger configures the log outputs and the error envelope for GO_ENV.
func initLogger(cfg *config.Configuration) {
	if err := logger.Init(nil); err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	basehdl.SetExposeInternalErrors(!cfg.IsProduction())
	logger.GetAppLogger().WithField("environment", cfg.Environment).Info("Logger initialized")
}

func initDatabase(cfg *config.Configuration) *mongo.Client {
	client, err := database.GetInstance(cfg)
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to connect to MongoDB: %v", err)
	}
	return client
}
