package growth

import (
	"fmt"

	"github.com/DataDog/sketches-go/ddsketch"
	"github.com/shopspring/decimal"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// sketchAccuracy is the relative accuracy of the quantile estimates.
const sketchAccuracy = 0.01

// Distribution summarizes the non-null values of one growth metric.
// Mean is exact; Median and P90 are DDSketch estimates within 1% relative error.
type Distribution struct {
	Metric registration.Metric `json:"metric"`
	Count  int64               `json:"count"`
	Mean   decimal.NullDecimal `json:"mean"`
	Min    decimal.NullDecimal `json:"min"`
	Max    decimal.NullDecimal `json:"max"`
	Median *float64            `json:"median"`
	P90    *float64            `json:"p90"`
}

// Summary is the headline growth view: one distribution per growth metric.
type Summary struct {
	YoY Distribution `json:"yoy_growth"`
	QoQ Distribution `json:"qoq_growth"`
}

// Summarize computes the YoY and QoQ distributions of rows.
func Summarize(rows []registration.GrowthRow) (Summary, error) {
	yoy, err := distribution(rows, registration.MetricYoYGrowth)
	if err != nil {
		return Summary{}, err
	}
	qoq, err := distribution(rows, registration.MetricQoQGrowth)
	if err != nil {
		return Summary{}, err
	}
	return Summary{YoY: yoy, QoQ: qoq}, nil
}

func distribution(rows []registration.GrowthRow, metric registration.Metric) (Distribution, error) {
	d := Distribution{Metric: metric}

	sketch, err := ddsketch.NewDefaultDDSketch(sketchAccuracy)
	if err != nil {
		return d, fmt.Errorf("create sketch: %w", err)
	}

	sum := decimal.Zero
	var minV, maxV decimal.Decimal
	for _, r := range rows {
		g := r.Growth(metric)
		if !g.Valid {
			continue
		}
		if d.Count == 0 || g.Decimal.LessThan(minV) {
			minV = g.Decimal
		}
		if d.Count == 0 || g.Decimal.GreaterThan(maxV) {
			maxV = g.Decimal
		}
		d.Count++
		sum = sum.Add(g.Decimal)
		if err := sketch.Add(g.Decimal.InexactFloat64()); err != nil {
			return d, fmt.Errorf("add %s to sketch: %w", g.Decimal, err)
		}
	}

	if d.Count == 0 {
		return d, nil
	}

	d.Mean = decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(d.Count)).Round(registration.GrowthPlaces))
	d.Min = decimal.NewNullDecimal(minV)
	d.Max = decimal.NewNullDecimal(maxV)

	median, err := sketch.GetValueAtQuantile(0.5)
	if err != nil {
		return d, fmt.Errorf("median: %w", err)
	}
	p90, err := sketch.GetValueAtQuantile(0.9)
	if err != nil {
		return d, fmt.Errorf("p90: %w", err)
	}
	d.Median = &median
	d.P90 = &p90
	return d, nil
}
