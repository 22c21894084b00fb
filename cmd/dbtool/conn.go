package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"freight-matching-service/internal/app"
	"freight-matching-service/internal/config"
	"freight-matching-service/internal/platform/db"
	"freight-matching-service/internal/platform/logger"
)

// withDB loads the configuration, opens Postgres and runs fn.
func withDB(ctx context.Context, fn func(context.Context, logger.Logger, *sql.DB) error) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app.ConfigureLogging(cfg.Logging)
	log := logger.New("dbtool")

	if strings.TrimSpace(cfg.Database.URL) == "" {
		return errors.New("database url is required (set database.url or DFM_DATABASE__URL)")
	}

	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, log, conn)
}
