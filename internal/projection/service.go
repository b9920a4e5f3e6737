package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/growth"
	"github.com/sonijitendra/vehicle-registrations/internal/insight"
	"github.com/sonijitendra/vehicle-registrations/internal/pipeline"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid query")

// Queries is the read side the projection serves from.
type Queries interface {
	Growth(ctx context.Context, f pipeline.GrowthFilter) []registration.GrowthRow
	TopGrowth(ctx context.Context, metric registration.Metric, n int) ([]registration.GrowthRow, error)
	GrowthSummary(ctx context.Context) growth.Summary
	Insights(ctx context.Context, f insight.Filter, gen *insight.Generator) []string
	Summary(ctx context.Context) registration.Summary
	Categories(ctx context.Context, yr *registration.YearRange) []registration.CategoryTotal
	Manufacturers(ctx context.Context, yr *registration.YearRange) []registration.ManufacturerTotal
	TopPerformers(ctx context.Context, metric registration.Metric, limit int) ([]registration.Performer, error)
}

// Runner re-runs the pipeline on demand.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

// Service implements the read-only query API plus on-demand re-runs.
type Service struct {
	queries Queries
	runner  Runner
	level   insight.Level
	logger  *slog.Logger
}

// NewService creates a projection service. level is the insight granularity
// used when a request does not name one. runner may be nil to disable POST /v1/runs.
func NewService(queries Queries, runner Runner, level insight.Level, logger *slog.Logger) *Service {
	if queries == nil {
		panic("projection: queries must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		queries: queries,
		runner:  runner,
		level:   level,
		logger:  logger,
	}
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

// yearRange turns optional start/end years into a filter. A single bound leaves the other side open.
func (q RangeQuery) yearRange() (*registration.YearRange, error) {
	if q.StartYear == 0 && q.EndYear == 0 {
		return nil, nil
	}
	yr := &registration.YearRange{Start: q.StartYear, End: q.EndYear}
	if yr.End == 0 {
		yr.End = math.MaxInt32
	}
	if yr.Start > yr.End {
		return nil, invalidQueryf("start_year %d is after end_year %d", yr.Start, yr.End)
	}
	return yr, nil
}

func (q GrowthQuery) filter() (pipeline.GrowthFilter, error) {
	if q.Quarter < 0 || q.Quarter > 4 {
		return pipeline.GrowthFilter{}, invalidQueryf("quarter must be in [1,4], got %d", q.Quarter)
	}
	return pipeline.GrowthFilter{
		Year:         q.Year,
		Quarter:      q.Quarter,
		Category:     q.Category,
		Manufacturer: q.Manufacturer,
	}, nil
}

func (q InsightQuery) filter() (insight.Filter, error) {
	yr, err := q.yearRange()
	if err != nil {
		return insight.Filter{}, err
	}
	return insight.Filter{
		Years:         yr,
		Categories:    splitValues(q.Categories),
		Manufacturers: splitValues(q.Manufacturers),
	}, nil
}

// generator returns the insight generator for the requested level, or the service default.
func (s *Service) generator(level string) (*insight.Generator, error) {
	if level == "" {
		return insight.New(s.level, s.logger), nil
	}
	l, err := insight.ParseLevel(level)
	if err != nil {
		return nil, invalidQueryf("%v", err)
	}
	return insight.New(l, s.logger), nil
}

func parseMetric(s string, fallback registration.Metric) (registration.Metric, error) {
	if s == "" {
		return fallback, nil
	}
	m, err := registration.ParseMetric(s)
	if err != nil {
		return "", invalidQueryf("%v", err)
	}
	return m, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
