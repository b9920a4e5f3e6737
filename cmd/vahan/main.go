package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	corecfg "github.com/sonijitendra/vehicle-registrations/internal/core/config"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage/memory"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage/postgres"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage/sqlite"
	"github.com/sonijitendra/vehicle-registrations/internal/export"
	"github.com/sonijitendra/vehicle-registrations/internal/growth"
	"github.com/sonijitendra/vehicle-registrations/internal/ingestion"
	"github.com/sonijitendra/vehicle-registrations/internal/insight"
	"github.com/sonijitendra/vehicle-registrations/internal/migrations"
	"github.com/sonijitendra/vehicle-registrations/internal/pipeline"
	"github.com/sonijitendra/vehicle-registrations/internal/projection"
	"github.com/sonijitendra/vehicle-registrations/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (defaults and VAHAN_ env vars apply without one)")
	once := flag.Bool("once", false, "Run the pipeline once, print insights and exit")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence in run.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Signal received, shutting down...")
		cancel()
	}()

	if err := run(ctx, *configPath, *once, os.Stdout, logger); err != nil {
		logger.Error("Exiting", "error", err)
		cancel()
		os.Exit(1)
	}
}

// run wires the service and blocks until ctx is cancelled, or returns after the
// first pipeline run in one-shot mode. Resources are released before it returns.
func run(ctx context.Context, configPath string, once bool, out io.Writer, logger *slog.Logger) error {
	// 1. Load Configuration
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Info("Loaded config", "database", cfg.Database.Type, "csv_path", cfg.Ingestion.CSVPath)

	level, _ := insight.ParseLevel(cfg.Insights.Level) // validated by Load
	refresh, _ := cfg.Pipeline.EffectiveRefreshInterval()

	// 2. Initialize Storage
	backend, health, err := openBackend(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("initialize %s storage: %w", cfg.Database.Type, err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	// 3. Initialize ledger source
	if err := seedLedgerFile(cfg.Ingestion, logger); err != nil {
		logger.Warn("Failed to write sample ledger file", "error", err)
	}
	source, err := buildSource(cfg.Ingestion, logger)
	if err != nil {
		return fmt.Errorf("initialize ledger source: %w", err)
	}

	// 4. Initialize pipeline
	engine := growth.NewEngine(backend, logger)
	processor := pipeline.NewProcessor(source, backend, backend, engine, logger)

	// 5. First run
	res, err := processor.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	if cfg.Export.Dir != "" {
		exporter := export.Exporter{Dir: cfg.Export.Dir, Format: cfg.Export.Format, Logger: logger}
		if _, err := exporter.Export(res.Growth); err != nil {
			logger.Error("Failed to export growth metrics", "error", err)
		}
	}

	if once || !cfg.Server.Enabled {
		printInsights(out, insight.New(level, logger).Generate(res.Records))
		return nil
	}

	// 6. Initialize HTTP services
	ingestionSvc := ingestion.NewService(processor, cfg.Server.MaxBodySizeMB, logger)
	projectionSvc := projection.NewService(processor, processor, level, logger)

	srv := server.New(cfg.Server.Addr(), health, cfg.Server.Mode, logger)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
	scheduler := pipeline.NewScheduler(refresh, processor, logger)
	go func() {
		if err := scheduler.Start(ctx); err != nil {
			logger.Error("Scheduler stopped with error", "error", err)
		}
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}

// openBackend opens the configured store. The health checker is nil for the
// in-memory backend.
func openBackend(cfg corecfg.DatabaseConfig, logger *slog.Logger) (storage.Backend, server.HealthChecker, error) {
	switch cfg.Type {
	case corecfg.DatabaseMemory:
		return memory.New(), nil, nil

	case corecfg.DatabaseSQLite:
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		store, err := sqlite.New(cfg.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case corecfg.DatabasePostgres:
		db, err := postgres.Connect(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunMigrations(db, cfg.AutoMigrate, logger); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		adapter, err := postgres.Open(db, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return adapter, adapter, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// buildSource reads the CSV ledger and, when enabled, falls back to the synthetic catalog.
func buildSource(cfg corecfg.IngestionConfig, logger *slog.Logger) (ingestion.Source, error) {
	var primary ingestion.Source
	if cfg.CSVPath != "" {
		primary = ingestion.CSVSource{Path: cfg.CSVPath}
	}
	if !cfg.FallbackToSample {
		return primary, nil
	}

	sample, err := sampleSource(cfg)
	if err != nil {
		return nil, err
	}
	if primary == nil {
		return sample, nil
	}
	return &ingestion.FallbackSource{Primary: primary, Fallback: sample, Logger: logger}, nil
}

func sampleSource(cfg corecfg.IngestionConfig) (*ingestion.SampleSource, error) {
	catalog, err := ingestion.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	src := ingestion.NewSampleSource(cfg.SampleSeed)
	src.Catalog = catalog
	return src, nil
}

// seedLedgerFile writes the synthetic ledger to the CSV path when no file exists yet,
// so later runs and external tools read the same data.
func seedLedgerFile(cfg corecfg.IngestionConfig, logger *slog.Logger) error {
	if cfg.CSVPath == "" || !cfg.WriteSample || !cfg.FallbackToSample {
		return nil
	}
	if _, err := os.Stat(cfg.CSVPath); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	src, err := sampleSource(cfg)
	if err != nil {
		return err
	}
	records, err := src.Fetch(context.Background())
	if err != nil {
		return err
	}
	if err := ingestion.SaveCSV(cfg.CSVPath, records); err != nil {
		return err
	}
	logger.Info("Sample ledger written", "path", cfg.CSVPath, "records", len(records))
	return nil
}

func printInsights(w io.Writer, insights []string) {
	fmt.Fprintln(w, "Key insights:")
	for _, text := range insights {
		fmt.Fprintf(w, "- %s\n", text)
	}
}
