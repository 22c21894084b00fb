package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"freight-matching-service/internal/adapters/repositories"
	"freight-matching-service/internal/config"
	"freight-matching-service/internal/platform/logger"
)

var (
	cfgPath  string
	seedPath string
)

var rootCmd = &cobra.Command{
	Use:          "dbtool",
	Short:        "Manage the fleet snapshot database",
	SilenceUsage: true,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, log logger.Logger, conn *sql.DB) error {
			log.Infof("Initializing database schema...")
			if err := repositories.InitSchema(ctx, conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			log.Infof("Schema ready.")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load a snapshot JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, log logger.Logger, conn *sql.DB) error {
			if err := repositories.InitSchema(ctx, conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			log.Infof("Seeding database from %s...", seedPath)
			if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			log.Infof("Seeding complete.")
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.Get("DFM_CONFIG", ""), "configuration file (yaml or json)")
	seedCmd.Flags().StringVarP(&seedPath, "file", "f", config.Get("SEED_PATH", "data/seeds/fleet.json"), "snapshot JSON file")
	rootCmd.AddCommand(initCmd, seedCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.New("dbtool").Infof("no .env file found (using environment variables)")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
