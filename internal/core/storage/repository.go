package storage

import (
	"context"
	"errors"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// ErrNoData is returned when no ledger has been provided at all.
// It is the only condition allowed to escalate past the growth engine.
var ErrNoData = errors.New("no registration data available")

// LedgerStore holds the raw registration ledger.
// Queries against an empty store return empty results, never an error.
type LedgerStore interface {
	// ReplaceAll discards every stored record and inserts records.
	// Readers never observe an empty-then-partial ledger within one call.
	ReplaceAll(ctx context.Context, records []registration.Record) (int, error)

	// Records returns the full ledger.
	Records(ctx context.Context) ([]registration.Record, error)

	// AggregatedByCategory sums registrations and counts distinct manufacturers per category.
	// yr is inclusive; nil means all years.
	AggregatedByCategory(ctx context.Context, yr *registration.YearRange) ([]registration.CategoryTotal, error)

	// AggregatedByManufacturer sums and averages registrations per (manufacturer, category).
	AggregatedByManufacturer(ctx context.Context, yr *registration.YearRange) ([]registration.ManufacturerTotal, error)

	// SummaryStatistics returns headline numbers for the whole ledger.
	SummaryStatistics(ctx context.Context) (registration.Summary, error)
}

// GrowthSource produces the aggregated, self-aligned period series the growth
// engine turns into growth rows. Every backend must group by
// (manufacturer, category, year, quarter) and join each point to its exact
// predecessor under the given alignment.
type GrowthSource interface {
	AlignedPeriods(ctx context.Context, a registration.Alignment) ([]registration.AlignedPoint, error)
}

// MetricsStore persists computed growth rows for later point queries.
type MetricsStore interface {
	// ReplaceGrowth discards the previous generation of growth rows and stores rows under runID.
	ReplaceGrowth(ctx context.Context, runID string, rows []registration.GrowthRow) (int, error)

	// Growth returns the stored growth table.
	Growth(ctx context.Context) ([]registration.GrowthRow, error)

	// TopPerformers ranks stored rows by metric. See registration.RankPerformers for semantics.
	TopPerformers(ctx context.Context, metric registration.Metric, limit int) ([]registration.Performer, error)
}

// Backend is a storage implementation serving every role.
type Backend interface {
	LedgerStore
	GrowthSource
	MetricsStore
	Close() error
}
