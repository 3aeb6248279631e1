package main

import (
	"flag"
	"fmt"
	"os"

	"order_bot/internal/config"
	"order_bot/internal/database"
	"order_bot/internal/logger"
	"order_bot/internal/migrations"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "drop the products and orders tables before migrating")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Initialize(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := migrations.RunMigrations(db, *reset, log); err != nil {
		log.Fatal("database initialization failed", zap.Error(err))
	}
	log.Info("database initialization completed")
}
