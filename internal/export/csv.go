package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// GrowthHeader is the column order of the growth CSV export.
var GrowthHeader = []string{
	"manufacturer", "vehicle_category", "year", "quarter", "registrations", "yoy_growth", "qoq_growth",
}

// WriteGrowthCSV writes rows with GrowthHeader first. Undefined growth is an empty cell.
func WriteGrowthCSV(w io.Writer, rows []registration.GrowthRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(GrowthHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Series.Manufacturer,
			r.Series.VehicleCategory,
			strconv.Itoa(r.Period.Year),
			strconv.Itoa(r.Period.Quarter),
			strconv.FormatInt(r.Registrations, 10),
			cell(r.YoYGrowth),
			cell(r.QoQGrowth),
		}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(registration.GrowthPlaces)
}
