package main

import (
	"context"

	"goldapple/parser/internal/config"
	"goldapple/parser/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting Gold Apple parser...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", cfg.Log.Level, err)
	}
	log.SetLevel(level)
	log.Info("Configuration loaded successfully")

	ctx := context.Background()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	stats, err := app.Run(ctx)
	if closeErr := app.Close(); closeErr != nil {
		log.Errorf("Failed to shut down cleanly: %v", closeErr)
	}
	if err != nil {
		log.Fatalf("Run %s stopped after %d products: %v", stats.RunID, stats.Items, err)
	}

	log.Info("Application finished successfully")
}
