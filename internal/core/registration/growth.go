package registration

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GrowthPlaces is the number of decimal places growth percentages are rounded to.
const GrowthPlaces = 2

var hundred = decimal.NewFromInt(100)

// PercentChange returns round((curr-prev)/prev*100, 2).
// The result is null when prev is absent or not positive: a zero predecessor is
// undefined growth, never zero or infinite.
//
// Arithmetic is exact decimal with half-away-from-zero rounding, the same
// semantics as NUMERIC ROUND in SQL, so every storage backend produces
// bit-identical values.
func PercentChange(curr int64, prev *int64) decimal.NullDecimal {
	if prev == nil || *prev <= 0 {
		return decimal.NullDecimal{}
	}
	base := decimal.NewFromInt(*prev)
	pct := decimal.NewFromInt(curr).Sub(base).Mul(hundred).Div(base).Round(GrowthPlaces)
	return decimal.NewNullDecimal(pct)
}

// AggregatePeriods groups records by (series, year, quarter) and sums registrations.
// The result holds at most one point per key and is sorted by series then period.
func AggregatePeriods(records []Record) []PeriodPoint {
	type pointKey struct {
		series SeriesKey
		period Period
	}

	sums := make(map[pointKey]int64, len(records))
	for _, r := range records {
		sums[pointKey{series: r.Series(), period: r.Period()}] += r.Registrations
	}

	points := make([]PeriodPoint, 0, len(sums))
	for k, total := range sums {
		points = append(points, PeriodPoint{Series: k.series, Period: k.period, Registrations: total})
	}
	SortPoints(points)
	return points
}

// Align joins every point to its predecessor under a within the same series.
// The join key is exact: no fuzzy matching across quarters.
func Align(points []PeriodPoint, a Alignment) []AlignedPoint {
	type pointKey struct {
		series SeriesKey
		period Period
	}

	index := make(map[pointKey]int64, len(points))
	for _, p := range points {
		index[pointKey{series: p.Series, period: p.Period}] = p.Registrations
	}

	aligned := make([]AlignedPoint, 0, len(points))
	for _, p := range points {
		ap := AlignedPoint{PeriodPoint: p}
		if prev, ok := index[pointKey{series: p.Series, period: a.Predecessor(p.Period)}]; ok {
			prev := prev
			ap.Previous = &prev
		}
		aligned = append(aligned, ap)
	}
	return aligned
}

// SortPoints orders points by series then period.
func SortPoints(points []PeriodPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Series != points[j].Series {
			return points[i].Series.Less(points[j].Series)
		}
		return points[i].Period.Less(points[j].Period)
	})
}

// SortGrowth orders growth rows by series then period.
func SortGrowth(rows []GrowthRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Series != rows[j].Series {
			return rows[i].Series.Less(rows[j].Series)
		}
		return rows[i].Period.Less(rows[j].Period)
	})
}
