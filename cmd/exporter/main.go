package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/einhellcentralasia/public-price-stock/internal/app"
	"github.com/einhellcentralasia/public-price-stock/internal/config"
	"github.com/einhellcentralasia/public-price-stock/internal/graph"
	"github.com/einhellcentralasia/public-price-stock/internal/infrastructure"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	outDir := flag.String("out", "", "output directory override (defaults to configured docs dir)")
	force := flag.Bool("force", false, "run even if the published artifacts are still fresh")
	maxAge := flag.Duration("max-age", 0, "freshness gate override (e.g. 24h); 0 keeps the configured value")
	sourceMode := flag.String("source", "auto", "table source: auto | table | download")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outDir != "" {
		cfg.Export.OutDir = *outDir
	}
	if *maxAge > 0 {
		cfg.Export.MaxAge = *maxAge
	}

	mode, err := app.ParseSourceMode(*sourceMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "Price/stock exporter starting",
		slog.String("out_dir", cfg.Export.OutDir),
		slog.Duration("max_age", cfg.Export.MaxAge),
		slog.String("source", string(mode)),
		slog.Bool("force", *force))

	client := graph.NewClient(cfg.Graph)
	source := app.NewGraphSource(client, cfg.Graph.TableName, mode)
	runner := app.NewRunner(cfg.Export, source)
	if *force {
		runner.DisableGate()
	}

	start := time.Now()
	result, err := runner.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Run failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		os.Exit(1)
	}

	if result.Skipped {
		logger.InfoContext(ctx, "Run skipped, artifacts still fresh",
			slog.Duration("duration", time.Since(start)))
		return
	}

	logger.InfoContext(ctx, "Run succeeded",
		slog.Int("rows", result.Rows),
		slog.String("updated_at", result.UpdatedAt),
		slog.String("csv", result.CSVPath),
		slog.String("xml", result.XMLPath),
		slog.Duration("duration", time.Since(start)))
}
