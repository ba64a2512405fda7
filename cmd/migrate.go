package main

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/migrations"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

func runMigrate(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.Apply(ctx, db)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, name := range applied {
		log.Info("Migration applied: %s", name)
	}
	log.Info("Database schema is up to date (db=%s)", cfg.Database.DBName)
	return nil
}
