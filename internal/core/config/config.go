package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sonijitendra/vehicle-registrations/internal/insight"
)

// EnvPrefix prefixes every environment override, e.g. VAHAN_DATABASE__DSN.
const EnvPrefix = "VAHAN_"

// Supported database.type values.
const (
	DatabaseMemory   = "memory"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Supported export.format values.
const (
	ExportCSV     = "csv"
	ExportParquet = "parquet"
)

// Config represents the top-level application config.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Ingestion IngestionConfig `koanf:"ingestion"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Export    ExportConfig    `koanf:"export"`
	Insights  InsightsConfig  `koanf:"insights"`
}

type ServerConfig struct {
	Enabled       bool   `koanf:"enabled"`
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | test | release
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type IngestionConfig struct {
	CSVPath          string `koanf:"csv_path"`
	CatalogPath      string `koanf:"catalog_path"` // empty uses the built-in catalog
	SampleSeed       int64  `koanf:"sample_seed"`
	FallbackToSample bool   `koanf:"fallback_to_sample"`
	WriteSample      bool   `koanf:"write_sample"` // save the synthesized ledger to csv_path when it is absent
}

type PipelineConfig struct {
	RefreshInterval string `koanf:"refresh_interval"` // "0" disables periodic re-runs
}

// EffectiveRefreshInterval parses the refresh interval. Empty means disabled.
func (c PipelineConfig) EffectiveRefreshInterval() (time.Duration, error) {
	if strings.TrimSpace(c.RefreshInterval) == "" {
		return 0, nil
	}
	return time.ParseDuration(c.RefreshInterval)
}

type ExportConfig struct {
	Dir    string `koanf:"dir"` // empty disables export
	Format string `koanf:"format"`
}

type InsightsConfig struct {
	Level string `koanf:"level"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	switch c.Server.Mode {
	case "debug", "test", "release":
	default:
		return fmt.Errorf("invalid server.mode %q (must be debug, test or release)", c.Server.Mode)
	}

	switch c.Database.Type {
	case DatabaseMemory:
	case DatabasePostgres, DatabaseSQLite:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for %s", c.Database.Type)
		}
	default:
		return fmt.Errorf("unsupported database.type %q (must be memory, postgres or sqlite)", c.Database.Type)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	if strings.TrimSpace(c.Ingestion.CSVPath) == "" && !c.Ingestion.FallbackToSample {
		return fmt.Errorf("ingestion.csv_path is required when fallback_to_sample is disabled")
	}

	interval, err := c.Pipeline.EffectiveRefreshInterval()
	if err != nil {
		return fmt.Errorf("invalid pipeline.refresh_interval %q: %w", c.Pipeline.RefreshInterval, err)
	}
	if interval < 0 {
		return fmt.Errorf("pipeline.refresh_interval must be >= 0")
	}

	if c.Export.Format != ExportCSV && c.Export.Format != ExportParquet {
		return fmt.Errorf("invalid export.format %q (must be csv or parquet)", c.Export.Format)
	}

	if _, err := insight.ParseLevel(c.Insights.Level); err != nil {
		return fmt.Errorf("invalid insights.level: %w", err)
	}

	return nil
}

// Load parses config from defaults, then the optional file, then VAHAN_ env vars, and validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.enabled":               true,
		"server.port":                  8080,
		"server.host":                  "0.0.0.0",
		"server.max_body_size_mb":      8,
		"server.mode":                  "release",
		"database.type":                DatabaseSQLite,
		"database.dsn":                 "data/vehicle_registrations.db",
		"database.max_open_conns":      25,
		"database.max_idle_conns":      25,
		"database.auto_migrate":        true,
		"ingestion.csv_path":           "data/vahan_vehicle_data.csv",
		"ingestion.catalog_path":       "",
		"ingestion.sample_seed":        42,
		"ingestion.fallback_to_sample": true,
		"ingestion.write_sample":       true,
		"pipeline.refresh_interval":    "0",
		"export.dir":                   "",
		"export.format":                ExportCSV,
		"insights.level":               "manufacturer",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
