package registration

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultPerformerLimit is used when a ranking is requested with a non-positive limit.
const DefaultPerformerLimit = 10

// RankPerformers ranks the stored growth table by metric.
//
// For registrations the rank is total registrations per manufacturer across all
// categories and periods. For growth metrics it is the per-(manufacturer, category)
// average of non-null values. Ties break on manufacturer then category ascending.
func RankPerformers(rows []GrowthRow, metric Metric, limit int) ([]Performer, error) {
	if limit <= 0 {
		limit = DefaultPerformerLimit
	}

	var out []Performer
	switch metric {
	case MetricRegistrations:
		out = rankByRegistrations(rows)
	case MetricYoYGrowth, MetricQoQGrowth:
		out = rankByGrowth(rows, metric)
	default:
		return nil, ErrUnknownMetric
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func rankByRegistrations(rows []GrowthRow) []Performer {
	type acc struct {
		total      int64
		categories map[string]struct{}
	}

	byMaker := make(map[string]*acc)
	for _, r := range rows {
		a, ok := byMaker[r.Series.Manufacturer]
		if !ok {
			a = &acc{categories: make(map[string]struct{})}
			byMaker[r.Series.Manufacturer] = a
		}
		a.total += r.Registrations
		a.categories[r.Series.VehicleCategory] = struct{}{}
	}

	out := make([]Performer, 0, len(byMaker))
	for maker, a := range byMaker {
		out = append(out, Performer{
			Manufacturer:     maker,
			Registrations:    a.total,
			CategoriesServed: len(a.categories),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Registrations != out[j].Registrations {
			return out[i].Registrations > out[j].Registrations
		}
		return out[i].Manufacturer < out[j].Manufacturer
	})
	return out
}

func rankByGrowth(rows []GrowthRow, metric Metric) []Performer {
	type acc struct {
		sum   decimal.Decimal
		max   decimal.Decimal
		count int64
	}

	bySeries := make(map[SeriesKey]*acc)
	for _, r := range rows {
		g := r.Growth(metric)
		if !g.Valid {
			continue
		}
		a, ok := bySeries[r.Series]
		if !ok {
			bySeries[r.Series] = &acc{sum: g.Decimal, max: g.Decimal, count: 1}
			continue
		}
		a.sum = a.sum.Add(g.Decimal)
		if g.Decimal.GreaterThan(a.max) {
			a.max = g.Decimal
		}
		a.count++
	}

	out := make([]Performer, 0, len(bySeries))
	for key, a := range bySeries {
		out = append(out, Performer{
			Manufacturer:    key.Manufacturer,
			VehicleCategory: key.VehicleCategory,
			AvgGrowth:       a.sum.Div(decimal.NewFromInt(a.count)),
			MaxGrowth:       a.max,
		})
	}
	SortPerformersByGrowth(out)
	return out
}

// SortPerformersByGrowth orders growth performers by average DESC, then series ASC.
func SortPerformersByGrowth(out []Performer) {
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].AvgGrowth.Equal(out[j].AvgGrowth) {
			return out[i].AvgGrowth.GreaterThan(out[j].AvgGrowth)
		}
		if out[i].Manufacturer != out[j].Manufacturer {
			return out[i].Manufacturer < out[j].Manufacturer
		}
		return out[i].VehicleCategory < out[j].VehicleCategory
	})
}
