package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// GrowthRecord is the parquet row layout of the growth table.
// Growth columns are optional; nil is an undefined growth value.
type GrowthRecord struct {
	Manufacturer    string   `parquet:"manufacturer,zstd"`
	VehicleCategory string   `parquet:"vehicle_category,zstd"`
	Year            int32    `parquet:"year"`
	Quarter         int32    `parquet:"quarter"`
	Registrations   int64    `parquet:"registrations"`
	YoYGrowth       *float64 `parquet:"yoy_growth,optional"`
	QoQGrowth       *float64 `parquet:"qoq_growth,optional"`
}

func toRecord(r registration.GrowthRow) GrowthRecord {
	return GrowthRecord{
		Manufacturer:    r.Series.Manufacturer,
		VehicleCategory: r.Series.VehicleCategory,
		Year:            int32(r.Period.Year),
		Quarter:         int32(r.Period.Quarter),
		Registrations:   r.Registrations,
		YoYGrowth:       optional(r.YoYGrowth),
		QoQGrowth:       optional(r.QoQGrowth),
	}
}

func optional(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// WriteGrowthParquet writes rows to a zstd-compressed parquet file at path.
func WriteGrowthParquet(path string, rows []registration.GrowthRow) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close file: %w", cerr)
		}
	}()

	writer := parquet.NewGenericWriter[GrowthRecord](f, parquet.Compression(&parquet.Zstd))

	records := make([]GrowthRecord, len(rows))
	for i, r := range rows {
		records[i] = toRecord(r)
	}
	if _, err := writer.Write(records); err != nil {
		writer.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}

// ReadGrowthParquet reads every row of a growth parquet file.
func ReadGrowthParquet(path string) ([]GrowthRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[GrowthRecord](f)
	defer reader.Close()

	out := make([]GrowthRecord, reader.NumRows())
	n, err := reader.Read(out)
	if err != nil && n < len(out) {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return out[:n], nil
}
