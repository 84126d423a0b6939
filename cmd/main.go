package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/packdex/internal/services"
	"github.com/desertthunder/packdex/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	svc := services.NewPackService(config.API.BaseURL, nil, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: svc,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "packdex",
		Usage:    "Admin console & customer catalog for the pack listing service",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
