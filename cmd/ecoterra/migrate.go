package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhaysingh-22/EcoTerra/internal/config"
	"github.com/abhaysingh-22/EcoTerra/internal/repository"
)

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create database tables and indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := initLogger(cfg.Debug)
			defer func() { _ = logger.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := repository.New(ctx, cfg.DatabaseURL, 1)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if err := db.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			logger.Info("Database migrated successfully", zap.Int("statements", len(repository.Migrations)))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "migration timeout")
	return cmd
}
