package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/strain/internal/config"
	"github.com/meltforce/strain/internal/ingest"
	"github.com/meltforce/strain/internal/ingest/alpha"
	"github.com/meltforce/strain/internal/storage"
	"github.com/meltforce/strain/internal/workout"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("file", "", "path to an Alpha Progression CSV export (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without writing history")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: strain-import -config config.yaml -file export.csv [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Error("failed to open export", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *dryRun {
		log.Info("DRY RUN mode: no history will be written")
	}

	kv, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	engine := workout.New(storage.NewStateStore(kv, cfg.Storage.Key, log), log)
	if err := engine.Restore(ctx); err != nil {
		log.Error("failed to restore state", "error", err)
		os.Exit(1)
	}
	loop := workout.NewLoop(engine)
	go loop.Run(ctx)

	result, err := alpha.NewProvider(loop, log).Ingest(ctx, f, *dryRun)
	if err != nil {
		log.Error("import failed", "error", err)
		if result != nil {
			printResult(log, result)
		}
		os.Exit(1)
	}

	printResult(log, result)
	log.Info("import complete")
}

func printResult(log *slog.Logger, r *ingest.Result) {
	log.Info("import stats",
		"sessions_received", r.SessionsReceived,
		"sessions_inserted", r.SessionsInserted,
		"sessions_skipped", r.SessionsSkipped,
		"sessions_dropped", r.SessionsDropped,
		"sets_received", r.SetsReceived,
		"sets_dropped", r.SetsDropped,
		"dry_run", r.DryRun,
	)
	if r.Message != "" {
		log.Info(r.Message)
	}
}
