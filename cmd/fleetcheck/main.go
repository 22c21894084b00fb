package main

import (
	"os"

	"github.com/joho/godotenv"

	"freight-matching-service/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.New("fleetcheck").Debugf("no .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
