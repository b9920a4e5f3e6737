// Package memory provides an in-process implementation of every storage role.
// Useful for tests, development and single-shot CLI runs.
package memory

import (
	"context"
	"sync"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// Store keeps the ledger and the growth table as immutable snapshots.
// Writers build a complete new snapshot and swap it in under the write lock,
// so readers see either the previous generation or the next one.
type Store struct {
	mu      sync.RWMutex
	records []registration.Record
	growth  []registration.GrowthRow
	runID   string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

func (s *Store) ReplaceAll(_ context.Context, records []registration.Record) (int, error) {
	// Store a copy to prevent external modification
	next := make([]registration.Record, len(records))
	copy(next, records)

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
	return len(next), nil
}

func (s *Store) Records(_ context.Context) ([]registration.Record, error) {
	return s.snapshot(), nil
}

func (s *Store) AggregatedByCategory(_ context.Context, yr *registration.YearRange) ([]registration.CategoryTotal, error) {
	return registration.TotalsByCategory(s.snapshot(), yr), nil
}

func (s *Store) AggregatedByManufacturer(_ context.Context, yr *registration.YearRange) ([]registration.ManufacturerTotal, error) {
	return registration.TotalsByManufacturer(s.snapshot(), yr), nil
}

func (s *Store) SummaryStatistics(_ context.Context) (registration.Summary, error) {
	return registration.Summarize(s.snapshot()), nil
}

// AlignedPeriods aggregates the current ledger snapshot and self-joins it under a.
func (s *Store) AlignedPeriods(_ context.Context, a registration.Alignment) ([]registration.AlignedPoint, error) {
	return registration.Align(registration.AggregatePeriods(s.snapshot()), a), nil
}

func (s *Store) ReplaceGrowth(_ context.Context, runID string, rows []registration.GrowthRow) (int, error) {
	next := make([]registration.GrowthRow, len(rows))
	copy(next, rows)

	s.mu.Lock()
	s.growth = next
	s.runID = runID
	s.mu.Unlock()
	return len(next), nil
}

func (s *Store) Growth(_ context.Context) ([]registration.GrowthRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]registration.GrowthRow, len(s.growth))
	copy(out, s.growth)
	return out, nil
}

func (s *Store) TopPerformers(ctx context.Context, metric registration.Metric, limit int) ([]registration.Performer, error) {
	rows, err := s.Growth(ctx)
	if err != nil {
		return nil, err
	}
	return registration.RankPerformers(rows, metric, limit)
}

// RunID returns the run that produced the stored growth table.
func (s *Store) RunID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

// Close is a no-op; it lets Store satisfy storage.Backend.
func (s *Store) Close() error {
	return nil
}

// snapshot returns the current ledger generation. Snapshots are never mutated
// after being swapped in, so sharing the backing array is safe for readers.
func (s *Store) snapshot() []registration.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}
