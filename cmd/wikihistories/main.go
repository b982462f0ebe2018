package main

import (
	"context"
	"flag"
	"os"

	"wikihistories/internal/app"
	"wikihistories/internal/config"
	"wikihistories/internal/logging"
)

func main() {
	title := flag.String("title", "", "article title to fetch (overrides configured titles)")
	format := flag.String("format", "", "output format: csv or table (overrides config)")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	if *title != "" {
		cfg.Titles = []string{*title}
	}
	if *format != "" {
		cfg.Output.Format = *format
	}

	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
