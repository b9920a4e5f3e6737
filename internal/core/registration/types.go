package registration

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownMetric is returned when a ranking is requested for a metric that is not tracked.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric names a column that performers can be ranked by.
type Metric string

// Supported ranking metrics.
const (
	MetricRegistrations Metric = "registrations"
	MetricYoYGrowth     Metric = "yoy_growth"
	MetricQoQGrowth     Metric = "qoq_growth"
)

// ParseMetric validates a metric name. Empty input defaults to registrations.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case "":
		return MetricRegistrations, nil
	case MetricRegistrations, MetricYoYGrowth, MetricQoQGrowth:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// Record is one row of the raw registration ledger.
// Identity is not a key: rows sharing (manufacturer, category, year, quarter) are summed.
type Record struct {
	Date            time.Time `json:"date"`
	Year            int       `json:"year"`
	Quarter         int       `json:"quarter"`
	VehicleCategory string    `json:"vehicle_category"`
	Manufacturer    string    `json:"manufacturer"`
	Registrations   int64     `json:"registrations"`
}

// Validate ensures the record carries a usable period, series and count.
func (r Record) Validate() error {
	if r.Manufacturer == "" {
		return fmt.Errorf("manufacturer is required")
	}
	if r.VehicleCategory == "" {
		return fmt.Errorf("vehicle_category is required")
	}
	if r.Quarter < 1 || r.Quarter > 4 {
		return fmt.Errorf("quarter must be in [1,4], got %d", r.Quarter)
	}
	if r.Registrations < 0 {
		return fmt.Errorf("registrations must be non-negative, got %d", r.Registrations)
	}
	return nil
}

// Series returns the (manufacturer, category) grain the record belongs to.
func (r Record) Series() SeriesKey {
	return SeriesKey{Manufacturer: r.Manufacturer, VehicleCategory: r.VehicleCategory}
}

// Period returns the (year, quarter) the record was counted in.
func (r Record) Period() Period {
	return Period{Year: r.Year, Quarter: r.Quarter}
}

// SeriesKey is the grain at which growth is computed.
// Growth comparisons never cross series.
type SeriesKey struct {
	Manufacturer    string
	VehicleCategory string
}

func (k SeriesKey) Less(o SeriesKey) bool {
	if k.Manufacturer != o.Manufacturer {
		return k.Manufacturer < o.Manufacturer
	}
	return k.VehicleCategory < o.VehicleCategory
}

// PeriodPoint is the aggregated registration total for one series in one quarter.
type PeriodPoint struct {
	Series        SeriesKey
	Period        Period
	Registrations int64
}

// AlignedPoint pairs a period point with the total of its predecessor period.
// Previous is nil when the predecessor does not exist in the series.
type AlignedPoint struct {
	PeriodPoint
	Previous *int64
}

// GrowthRow is one row of the growth-metrics table.
// A null growth value means "undefined": no predecessor, or a predecessor of zero.
type GrowthRow struct {
	Series        SeriesKey
	Period        Period
	Registrations int64
	YoYGrowth     decimal.NullDecimal
	QoQGrowth     decimal.NullDecimal
}

// Growth returns the growth value tracked under metric.
func (g GrowthRow) Growth(metric Metric) decimal.NullDecimal {
	switch metric {
	case MetricYoYGrowth:
		return g.YoYGrowth
	case MetricQoQGrowth:
		return g.QoQGrowth
	default:
		return decimal.NullDecimal{}
	}
}

// YearRange is an inclusive [Start, End] filter on record years.
type YearRange struct {
	Start int
	End   int
}

// Contains reports whether year falls inside the range. A nil range contains every year.
func (yr *YearRange) Contains(year int) bool {
	if yr == nil {
		return true
	}
	return year >= yr.Start && year <= yr.End
}

// CategoryTotal is one row of the by-category aggregate.
type CategoryTotal struct {
	VehicleCategory   string `json:"vehicle_category"`
	Registrations     int64  `json:"registrations"`
	ManufacturerCount int    `json:"manufacturer_count"`
}

// ManufacturerTotal is one row of the by-manufacturer aggregate.
type ManufacturerTotal struct {
	Manufacturer     string  `json:"manufacturer"`
	VehicleCategory  string  `json:"vehicle_category"`
	Registrations    int64   `json:"registrations"`
	AvgRegistrations float64 `json:"avg_registrations"`
}

// Summary holds headline numbers for the whole ledger.
type Summary struct {
	TotalRecords        int64
	TotalRegistrations  int64
	UniqueManufacturers int
	UniqueCategories    int
	EarliestYear        int
	LatestYear          int
}

// Map flattens the summary into the key/value shape callers display directly.
func (s Summary) Map() map[string]int64 {
	return map[string]int64{
		"total_records":        s.TotalRecords,
		"total_registrations":  s.TotalRegistrations,
		"unique_manufacturers": int64(s.UniqueManufacturers),
		"unique_categories":    int64(s.UniqueCategories),
		"earliest_year":        int64(s.EarliestYear),
		"latest_year":          int64(s.LatestYear),
	}
}

// Performer is one entry of a top-performers ranking.
// Registrations rankings fill Registrations and CategoriesServed and leave VehicleCategory empty;
// growth rankings fill VehicleCategory, AvgGrowth and MaxGrowth.
type Performer struct {
	Manufacturer     string          `json:"manufacturer"`
	VehicleCategory  string          `json:"vehicle_category,omitempty"`
	Registrations    int64           `json:"registrations,omitempty"`
	CategoriesServed int             `json:"categories_served,omitempty"`
	AvgGrowth        decimal.Decimal `json:"avg_growth"`
	MaxGrowth        decimal.Decimal `json:"max_growth"`
}
