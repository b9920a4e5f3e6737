package growth

import (
	"fmt"
	"sort"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// Top returns the "top N" presentation view of rows for a growth metric.
// Rows whose metric is null are dropped. The rest are ordered by
// (year DESC, quarter DESC, growth DESC), then manufacturer and category ASC.
// n <= 0 returns every non-null row.
func Top(rows []registration.GrowthRow, metric registration.Metric, n int) ([]registration.GrowthRow, error) {
	if metric != registration.MetricYoYGrowth && metric != registration.MetricQoQGrowth {
		return nil, fmt.Errorf("%w: %q is not a growth metric", registration.ErrUnknownMetric, metric)
	}

	out := make([]registration.GrowthRow, 0, len(rows))
	for _, r := range rows {
		if r.Growth(metric).Valid {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Period != b.Period {
			return b.Period.Less(a.Period)
		}
		ga, gb := a.Growth(metric).Decimal, b.Growth(metric).Decimal
		if !ga.Equal(gb) {
			return ga.GreaterThan(gb)
		}
		return a.Series.Less(b.Series)
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}
