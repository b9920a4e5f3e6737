package pipeline

import (
	"context"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/growth"
	"github.com/sonijitendra/vehicle-registrations/internal/insight"
)

// The query helpers below read the stores and degrade to empty results on
// I/O failure. Only invalid arguments are returned as errors.

// GrowthFilter narrows the growth table. Zero fields match everything.
type GrowthFilter struct {
	Year         int
	Quarter      int
	Category     string
	Manufacturer string
}

func (f GrowthFilter) match(r registration.GrowthRow) bool {
	if f.Year != 0 && r.Period.Year != f.Year {
		return false
	}
	if f.Quarter != 0 && r.Period.Quarter != f.Quarter {
		return false
	}
	if f.Category != "" && r.Series.VehicleCategory != f.Category {
		return false
	}
	if f.Manufacturer != "" && r.Series.Manufacturer != f.Manufacturer {
		return false
	}
	return true
}

// Growth returns the persisted growth table filtered by f.
func (p *Processor) Growth(ctx context.Context, f GrowthFilter) []registration.GrowthRow {
	rows, err := p.metrics.Growth(ctx)
	if err != nil {
		p.logger.Error("[Pipeline] Failed to read growth metrics", "error", err)
		return []registration.GrowthRow{}
	}

	out := make([]registration.GrowthRow, 0, len(rows))
	for _, r := range rows {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// TopGrowth returns the top-N view of the growth table for metric.
func (p *Processor) TopGrowth(ctx context.Context, metric registration.Metric, n int) ([]registration.GrowthRow, error) {
	return growth.Top(p.Growth(ctx, GrowthFilter{}), metric, n)
}

// GrowthSummary returns the YoY and QoQ distributions of the growth table.
func (p *Processor) GrowthSummary(ctx context.Context) growth.Summary {
	s, err := growth.Summarize(p.Growth(ctx, GrowthFilter{}))
	if err != nil {
		p.logger.Error("[Pipeline] Failed to summarize growth", "error", err)
		return growth.Summary{}
	}
	return s
}

// Insights filters the ledger and runs the generator over it.
func (p *Processor) Insights(ctx context.Context, f insight.Filter, gen *insight.Generator) []string {
	records, err := p.ledger.Records(ctx)
	if err != nil {
		p.logger.Error("[Pipeline] Failed to read ledger for insights", "error", err)
		records = nil
	}
	return gen.Generate(f.Apply(records))
}

// Summary returns headline ledger statistics.
func (p *Processor) Summary(ctx context.Context) registration.Summary {
	s, err := p.ledger.SummaryStatistics(ctx)
	if err != nil {
		p.logger.Error("[Pipeline] Failed to read summary statistics", "error", err)
		return registration.Summary{}
	}
	return s
}

// Categories returns ledger totals per vehicle category.
func (p *Processor) Categories(ctx context.Context, yr *registration.YearRange) []registration.CategoryTotal {
	out, err := p.ledger.AggregatedByCategory(ctx, yr)
	if err != nil {
		p.logger.Error("[Pipeline] Failed to aggregate by category", "error", err)
		return []registration.CategoryTotal{}
	}
	return out
}

// Manufacturers returns ledger totals per manufacturer and category.
func (p *Processor) Manufacturers(ctx context.Context, yr *registration.YearRange) []registration.ManufacturerTotal {
	out, err := p.ledger.AggregatedByManufacturer(ctx, yr)
	if err != nil {
		p.logger.Error("[Pipeline] Failed to aggregate by manufacturer", "error", err)
		return []registration.ManufacturerTotal{}
	}
	return out
}

// TopPerformers ranks manufacturers by metric.
func (p *Processor) TopPerformers(ctx context.Context, metric registration.Metric, limit int) ([]registration.Performer, error) {
	if _, err := registration.ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	out, err := p.metrics.TopPerformers(ctx, metric, limit)
	if err != nil {
		p.logger.Error("[Pipeline] Failed to rank performers", "metric", metric, "error", err)
		return []registration.Performer{}, nil
	}
	return out, nil
}
