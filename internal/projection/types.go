package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/growth"
)

// GrowthQuery holds the optional filters of GET /v1/growth.
type GrowthQuery struct {
	Year         int    `form:"year"`
	Quarter      int    `form:"quarter"`
	Category     string `form:"category"`
	Manufacturer string `form:"manufacturer"`
}

// TopQuery holds the parameters of GET /v1/growth/top and GET /v1/top-performers.
type TopQuery struct {
	Metric string `form:"metric"`
	Limit  int    `form:"limit"`
}

// RangeQuery is an optional inclusive year filter.
type RangeQuery struct {
	StartYear int `form:"start_year"`
	EndYear   int `form:"end_year"`
}

// InsightQuery holds the parameters of GET /v1/insights.
// Category and manufacturer accept repeated or comma-separated values.
type InsightQuery struct {
	RangeQuery
	Categories    []string `form:"category"`
	Manufacturers []string `form:"manufacturer"`
	Level         string   `form:"level"`
}

// GrowthRowResponse is the wire shape of one growth row. Undefined growth is null.
type GrowthRowResponse struct {
	Manufacturer    string   `json:"manufacturer"`
	VehicleCategory string   `json:"vehicle_category"`
	Year            int      `json:"year"`
	Quarter         int      `json:"quarter"`
	Registrations   int64    `json:"registrations"`
	YoYGrowth       *float64 `json:"yoy_growth"`
	QoQGrowth       *float64 `json:"qoq_growth"`
}

// GrowthResponse wraps a list of growth rows.
type GrowthResponse struct {
	Count int                 `json:"count"`
	Rows  []GrowthRowResponse `json:"rows"`
}

// DistributionResponse is the wire shape of growth.Distribution.
type DistributionResponse struct {
	Metric string   `json:"metric"`
	Count  int64    `json:"count"`
	Mean   *float64 `json:"mean"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Median *float64 `json:"median"`
	P90    *float64 `json:"p90"`
}

// GrowthSummaryResponse is the body of GET /v1/growth/summary.
type GrowthSummaryResponse struct {
	YoY DistributionResponse `json:"yoy_growth"`
	QoQ DistributionResponse `json:"qoq_growth"`
}

// InsightResponse is the body of GET /v1/insights.
type InsightResponse struct {
	Level    string   `json:"level"`
	Insights []string `json:"insights"`
}

// PerformerResponse is one entry of GET /v1/top-performers.
type PerformerResponse struct {
	Manufacturer     string   `json:"manufacturer"`
	VehicleCategory  string   `json:"vehicle_category,omitempty"`
	Registrations    int64    `json:"registrations,omitempty"`
	CategoriesServed int      `json:"categories_served,omitempty"`
	AvgGrowth        *float64 `json:"avg_growth,omitempty"`
	MaxGrowth        *float64 `json:"max_growth,omitempty"`
}

// RunResponse is the body of POST /v1/runs.
type RunResponse struct {
	RunID        string    `json:"run_id"`
	CalculatedAt time.Time `json:"calculated_at"`
	Records      int       `json:"records"`
	GrowthRows   int       `json:"growth_rows"`
}

func toFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func toGrowthResponse(rows []registration.GrowthRow) GrowthResponse {
	out := make([]GrowthRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, GrowthRowResponse{
			Manufacturer:    r.Series.Manufacturer,
			VehicleCategory: r.Series.VehicleCategory,
			Year:            r.Period.Year,
			Quarter:         r.Period.Quarter,
			Registrations:   r.Registrations,
			YoYGrowth:       toFloat(r.YoYGrowth),
			QoQGrowth:       toFloat(r.QoQGrowth),
		})
	}
	return GrowthResponse{Count: len(out), Rows: out}
}

func toDistributionResponse(d growth.Distribution) DistributionResponse {
	return DistributionResponse{
		Metric: string(d.Metric),
		Count:  d.Count,
		Mean:   toFloat(d.Mean),
		Min:    toFloat(d.Min),
		Max:    toFloat(d.Max),
		Median: d.Median,
		P90:    d.P90,
	}
}

func toPerformerResponses(metric registration.Metric, ps []registration.Performer) []PerformerResponse {
	out := make([]PerformerResponse, 0, len(ps))
	for _, p := range ps {
		r := PerformerResponse{
			Manufacturer:     p.Manufacturer,
			VehicleCategory:  p.VehicleCategory,
			Registrations:    p.Registrations,
			CategoriesServed: p.CategoriesServed,
		}
		if metric != registration.MetricRegistrations {
			r.AvgGrowth = toFloat(decimal.NewNullDecimal(p.AvgGrowth))
			r.MaxGrowth = toFloat(decimal.NewNullDecimal(p.MaxGrowth))
		}
		out = append(out, r)
	}
	return out
}
