package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"freight-matching-service/internal/app"
	"freight-matching-service/internal/config"
	"freight-matching-service/internal/platform/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "server",
	Short:        "Freight matching HTTP service",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.Get("DFM_CONFIG", ""), "configuration file (yaml or json)")
}

// main is the application composition root.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.New("main").Infof("no .env file found (using environment variables)")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app.ConfigureLogging(cfg.Logging)

	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	return svc.Run(ctx)
}
