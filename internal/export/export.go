package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// Supported formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// GrowthFileBase is the file name, without extension, of the growth export.
const GrowthFileBase = "growth_metrics"

// Exporter writes the growth table into Dir in the configured format.
type Exporter struct {
	Dir    string
	Format string
	Logger *slog.Logger
}

// Export writes rows and returns the path of the file written.
func (e Exporter) Export(rows []registration.GrowthRow) (string, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if e.Dir == "" {
		return "", fmt.Errorf("export directory is not set")
	}

	var path string
	switch e.Format {
	case FormatCSV, "":
		path = filepath.Join(e.Dir, GrowthFileBase+".csv")
		if err := writeCSVFile(path, rows); err != nil {
			return "", err
		}
	case FormatParquet:
		path = filepath.Join(e.Dir, GrowthFileBase+".parquet")
		if err := WriteGrowthParquet(path, rows); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported export format %q", e.Format)
	}

	logger.Info("[Export] Growth metrics exported", "path", path, "rows", len(rows))
	return path, nil
}

func writeCSVFile(path string, rows []registration.GrowthRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := WriteGrowthCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
