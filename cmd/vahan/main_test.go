package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	corecfg "github.com/sonijitendra/vehicle-registrations/internal/core/config"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
	"github.com/sonijitendra/vehicle-registrations/internal/ingestion"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenBackend(t *testing.T) {
	t.Run("memory has no health checker", func(t *testing.T) {
		backend, health, err := openBackend(corecfg.DatabaseConfig{Type: corecfg.DatabaseMemory}, discardLogger())
		require.NoError(t, err)
		require.NotNil(t, backend)
		require.Nil(t, health)
	})

	t.Run("sqlite creates the directory", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "nested", "vahan.db")
		backend, health, err := openBackend(corecfg.DatabaseConfig{Type: corecfg.DatabaseSQLite, DSN: dsn}, discardLogger())
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, health.Ping(context.Background()))
		_, err = os.Stat(dsn)
		require.NoError(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := openBackend(corecfg.DatabaseConfig{Type: "mysql"}, discardLogger())
		require.ErrorContains(t, err, "unsupported database type")
	})
}

func TestBuildSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.csv")

	t.Run("csv only reports missing ledger", func(t *testing.T) {
		src, err := buildSource(corecfg.IngestionConfig{CSVPath: missing}, discardLogger())
		require.NoError(t, err)

		_, err = src.Fetch(context.Background())
		require.ErrorIs(t, err, storage.ErrNoData)
	})

	t.Run("falls back to sample", func(t *testing.T) {
		src, err := buildSource(corecfg.IngestionConfig{CSVPath: missing, FallbackToSample: true, SampleSeed: 1}, discardLogger())
		require.NoError(t, err)
		require.IsType(t, &ingestion.FallbackSource{}, src)

		records, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 180)
	})

	t.Run("sample only", func(t *testing.T) {
		src, err := buildSource(corecfg.IngestionConfig{FallbackToSample: true}, discardLogger())
		require.NoError(t, err)
		require.IsType(t, &ingestion.SampleSource{}, src)
	})

	t.Run("bad catalog path", func(t *testing.T) {
		_, err := buildSource(corecfg.IngestionConfig{FallbackToSample: true, CatalogPath: missing}, discardLogger())
		require.ErrorContains(t, err, "read catalog")
	})
}

func TestSeedLedgerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "vahan_vehicle_data.csv")
	cfg := corecfg.IngestionConfig{CSVPath: path, FallbackToSample: true, WriteSample: true, SampleSeed: 3}

	require.NoError(t, seedLedgerFile(cfg, discardLogger()))
	first, err := ingestion.LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, first, 180)

	// An existing file is never overwritten.
	require.NoError(t, ingestion.SaveCSV(path, first[:1]))
	require.NoError(t, seedLedgerFile(cfg, discardLogger()))
	again, err := ingestion.LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, again, 1)

	disabled := filepath.Join(t.TempDir(), "off.csv")
	require.NoError(t, seedLedgerFile(corecfg.IngestionConfig{CSVPath: disabled, FallbackToSample: true}, discardLogger()))
	_, err = os.Stat(disabled)
	require.True(t, os.IsNotExist(err))
}

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer
	printInsights(&buf, []string{"first", "second"})
	require.Equal(t, "Key insights:\n- first\n- second\n", buf.String())
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "vahan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_OnceWithSampleFallback(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data", "ledger.csv")
	exportDir := filepath.Join(dir, "out")
	cfgPath := writeConfig(t, dir, fmt.Sprintf(`
database:
  type: memory
ingestion:
  csv_path: %q
  fallback_to_sample: true
  write_sample: true
export:
  dir: %q
  format: csv
`, csvPath, exportDir))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfgPath, true, &out, discardLogger()))

	require.Contains(t, out.String(), "Key insights:")
	_, err := os.Stat(csvPath)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(exportDir, "growth_metrics.csv"))
	require.NoError(t, err)
}

func TestRun_FailedFirstRunClosesStorage(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "db", "vahan.db")
	cfgPath := writeConfig(t, dir, fmt.Sprintf(`
database:
  type: sqlite
  dsn: %q
ingestion:
  csv_path: %q
  fallback_to_sample: false
`, dsn, filepath.Join(dir, "absent.csv")))

	var out bytes.Buffer
	err := run(context.Background(), cfgPath, true, &out, discardLogger())
	require.ErrorIs(t, err, storage.ErrNoData)
	require.Empty(t, out.String())

	// SQLite removes the WAL file once the last connection is closed.
	_, err = os.Stat(dsn)
	require.NoError(t, err)
	_, err = os.Stat(dsn + "-wal")
	require.True(t, os.IsNotExist(err), "wal file left behind: %v", err)
}

func TestRun_BadConfig(t *testing.T) {
	err := run(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), true, io.Discard, discardLogger())
	require.ErrorContains(t, err, "load config")
}
