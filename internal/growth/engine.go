// Package growth turns the aligned period series of a storage backend into
// year-over-year and quarter-over-quarter growth rows.
package growth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
)

// Engine computes growth rows from a GrowthSource.
//
// Source failures never escape the engine: they are logged and degrade to an
// empty result. The only error returned is context cancellation.
type Engine struct {
	source storage.GrowthSource
	logger *slog.Logger
}

// NewEngine creates an Engine reading from source.
func NewEngine(source storage.GrowthSource, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{source: source, logger: logger}
}

// YoY computes year-over-year growth for every (series, period).
func (e *Engine) YoY(ctx context.Context) ([]registration.GrowthRow, error) {
	rows, err := e.pass(ctx, registration.YoY)
	return e.degrade(ctx, rows, err)
}

// QoQ computes quarter-over-quarter growth for every (series, period).
func (e *Engine) QoQ(ctx context.Context) ([]registration.GrowthRow, error) {
	rows, err := e.pass(ctx, registration.QoQ)
	return e.degrade(ctx, rows, err)
}

// Compute runs both passes concurrently and outer-merges them on (series, period).
// Rows are sorted by series then period. If either pass fails the whole result
// is empty; a table with one metric missing is never returned.
func (e *Engine) Compute(ctx context.Context) ([]registration.GrowthRow, error) {
	var (
		yoy, qoq       []registration.GrowthRow
		yoyErr, qoqErr error
		g              errgroup.Group
	)
	g.Go(func() error {
		yoy, yoyErr = e.pass(ctx, registration.YoY)
		return nil
	})
	g.Go(func() error {
		qoq, qoqErr = e.pass(ctx, registration.QoQ)
		return nil
	})
	_ = g.Wait()

	if err := errors.Join(yoyErr, qoqErr); err != nil {
		return e.degrade(ctx, nil, err)
	}

	rows := merge(yoy, qoq)
	e.logger.Info("[GrowthEngine] Growth computed", "rows", len(rows))
	return rows, nil
}

// degrade turns a source failure into an empty result. Only context errors pass through.
func (e *Engine) degrade(ctx context.Context, rows []registration.GrowthRow, err error) ([]registration.GrowthRow, error) {
	if err == nil {
		return rows, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	e.logger.Error("[GrowthEngine] Failed to load aligned periods, returning empty result", "error", err)
	return []registration.GrowthRow{}, nil
}

func (e *Engine) pass(ctx context.Context, a registration.Alignment) ([]registration.GrowthRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	points, err := e.source.AlignedPeriods(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%s aligned periods: %w", a.String(), err)
	}

	rows := make([]registration.GrowthRow, 0, len(points))
	for _, p := range points {
		row := registration.GrowthRow{
			Series:        p.Series,
			Period:        p.Period,
			Registrations: p.Registrations,
		}
		growth := registration.PercentChange(p.Registrations, p.Previous)
		if a == registration.QoQ {
			row.QoQGrowth = growth
		} else {
			row.YoYGrowth = growth
		}
		rows = append(rows, row)
	}

	e.logger.Debug("[GrowthEngine] Pass complete", "alignment", a.String(), "rows", len(rows))
	return rows, nil
}

type rowKey struct {
	series registration.SeriesKey
	period registration.Period
}

// merge outer-joins the YoY and QoQ passes. A key present in only one pass
// keeps a null value for the other metric.
func merge(yoy, qoq []registration.GrowthRow) []registration.GrowthRow {
	out := make([]registration.GrowthRow, len(yoy), len(yoy)+len(qoq))
	copy(out, yoy)

	index := make(map[rowKey]int, len(out))
	for i, r := range out {
		index[rowKey{series: r.Series, period: r.Period}] = i
	}

	for _, r := range qoq {
		if i, ok := index[rowKey{series: r.Series, period: r.Period}]; ok {
			out[i].QoQGrowth = r.QoQGrowth
			continue
		}
		out = append(out, r)
	}

	registration.SortGrowth(out)
	return out
}
