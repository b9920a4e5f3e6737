package sqlstore

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord scans one ledger row.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanRecord(row scanner) (registration.Record, error) {
	var r registration.Record
	err := row.Scan(
		&r.Date,
		&r.Year,
		&r.Quarter,
		&r.VehicleCategory,
		&r.Manufacturer,
		&r.Registrations,
	)
	if err != nil {
		return registration.Record{}, fmt.Errorf("failed to scan registration row: %w", err)
	}
	r.Date = r.Date.UTC()
	return r, nil
}

// scanAlignedPoint scans a (current, predecessor) pair. The predecessor column
// is NULL when the LEFT JOIN found no matching period.
func scanAlignedPoint(row scanner) (registration.AlignedPoint, error) {
	var ap registration.AlignedPoint
	var prev sql.NullInt64

	err := row.Scan(
		&ap.Series.Manufacturer,
		&ap.Series.VehicleCategory,
		&ap.Period.Year,
		&ap.Period.Quarter,
		&ap.Registrations,
		&prev,
	)
	if err != nil {
		return registration.AlignedPoint{}, fmt.Errorf("failed to scan period row: %w", err)
	}
	if prev.Valid {
		v := prev.Int64
		ap.Previous = &v
	}
	return ap, nil
}

// scanGrowthRow scans one growth_metrics row. Growth columns map onto
// decimal.NullDecimal, which handles NUMERIC, TEXT and REAL storage.
func scanGrowthRow(row scanner) (registration.GrowthRow, error) {
	var g registration.GrowthRow
	err := row.Scan(
		&g.Series.Manufacturer,
		&g.Series.VehicleCategory,
		&g.Period.Year,
		&g.Period.Quarter,
		&g.Registrations,
		&g.YoYGrowth,
		&g.QoQGrowth,
	)
	if err != nil {
		return registration.GrowthRow{}, fmt.Errorf("failed to scan growth row: %w", err)
	}
	return g, nil
}

// growthValue renders a growth value with fixed scale so every engine stores
// the same text a NUMERIC(12,2) column would return. NULL stays NULL.
func growthValue(g decimal.NullDecimal) driver.Value {
	if !g.Valid {
		return nil
	}
	return g.Decimal.StringFixed(registration.GrowthPlaces)
}
