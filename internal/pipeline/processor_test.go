package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage/memory"
	"github.com/sonijitendra/vehicle-registrations/internal/growth"
	"github.com/sonijitendra/vehicle-registrations/internal/ingestion"
	"github.com/sonijitendra/vehicle-registrations/internal/insight"
	ingestionmocks "github.com/sonijitendra/vehicle-registrations/internal/mocks/ingestion"
	storagemocks "github.com/sonijitendra/vehicle-registrations/internal/mocks/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rec(maker, category string, year, quarter int, n int64) registration.Record {
	return registration.Record{
		Date:            registration.Period{Year: year, Quarter: quarter}.Start(),
		Year:            year,
		Quarter:         quarter,
		VehicleCategory: category,
		Manufacturer:    maker,
		Registrations:   n,
	}
}

var testLedger = []registration.Record{
	rec("Acme", "2W", 2023, 1, 1000),
	rec("Acme", "2W", 2023, 2, 1500),
	rec("Acme", "2W", 2024, 1, 1200),
}

func newMemoryProcessor(src ingestion.Source) (*Processor, *memory.Store) {
	store := memory.New()
	logger := discardLogger()
	return NewProcessor(src, store, store, growth.NewEngine(store, logger), logger), store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProcessor_Run(t *testing.T) {
	p, store := newMemoryProcessor(ingestion.StaticSource(testLedger))
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p.clock = func() time.Time { return fixed }

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)
	require.Equal(t, fixed, res.CalculatedAt)
	require.Len(t, res.Records, 3)
	require.Len(t, res.Growth, 3)
	require.Same(t, res, p.Last())
	require.Equal(t, res.RunID, store.RunID())

	persisted, err := store.Growth(context.Background())
	require.NoError(t, err)
	require.Equal(t, res.Growth, persisted)

	require.Len(t, res.Annotated, 3)
	q2 := res.Annotated[1]
	require.Equal(t, 2, q2.Quarter)
	require.True(t, q2.QoQGrowth.Decimal.Equal(dec("50")))
	require.False(t, q2.YoYGrowth.Valid)

	latest := res.Annotated[2]
	require.True(t, latest.YoYGrowth.Decimal.Equal(dec("20")))
	require.False(t, latest.QoQGrowth.Valid)

	require.Equal(t, ingestion.LoadSummary{RunID: res.RunID, Records: 3, GrowthRows: 3}, res.Summary())
}

func TestProcessor_RunWithoutLedger(t *testing.T) {
	tests := []struct {
		name    string
		rows    []registration.Record
		err     error
		wantMsg string
	}{
		{name: "source reports no data", err: storage.ErrNoData},
		{name: "source fails", err: errors.New("permission denied"), wantMsg: "permission denied"},
		{name: "source empty", rows: []registration.Record{}, wantMsg: "no records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ingestionmocks.NewSource(t)
			src.EXPECT().Fetch(mock.Anything).Return(tt.rows, tt.err).Once()

			p, _ := newMemoryProcessor(src)
			_, err := p.Run(context.Background())
			require.ErrorIs(t, err, storage.ErrNoData)
			if tt.wantMsg != "" {
				require.ErrorContains(t, err, tt.wantMsg)
			}
			require.Nil(t, p.Last())
		})
	}
}

func TestProcessor_RunWithoutSource(t *testing.T) {
	p, _ := newMemoryProcessor(nil)
	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, storage.ErrNoData)
}

func TestProcessor_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := ingestionmocks.NewSource(t)
	src.EXPECT().Fetch(mock.Anything).Return(nil, context.Canceled).Once()

	p, _ := newMemoryProcessor(src)
	_, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, storage.ErrNoData)
}

func TestProcessor_RunLedgerWriteFailureSkipsGrowth(t *testing.T) {
	ledger := storagemocks.NewLedgerStore(t)
	ledger.EXPECT().ReplaceAll(mock.Anything, mock.Anything).Return(0, errors.New("disk full")).Once()

	metrics := storagemocks.NewMetricsStore(t)
	metrics.EXPECT().ReplaceGrowth(mock.Anything, mock.Anything, []registration.GrowthRow{}).Return(0, nil).Once()

	// The engine would read the previous ledger if it ran.
	previous := memory.New()
	_, err := previous.ReplaceAll(context.Background(), []registration.Record{
		rec("Old", "2W", 2022, 1, 100),
		rec("Old", "2W", 2023, 1, 200),
	})
	require.NoError(t, err)

	logger := discardLogger()
	p := NewProcessor(ingestion.StaticSource(testLedger), ledger, metrics, growth.NewEngine(previous, logger), logger)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Growth)
	require.Len(t, res.Annotated, 3)
	for _, a := range res.Annotated {
		require.False(t, a.YoYGrowth.Valid)
		require.False(t, a.QoQGrowth.Valid)
	}
}

func TestProcessor_LoadLedgerWriteFailure(t *testing.T) {
	ledger := storagemocks.NewLedgerStore(t)
	ledger.EXPECT().ReplaceAll(mock.Anything, mock.Anything).Return(0, errors.New("disk full")).Once()

	// No ReplaceGrowth expectation: the stored metrics must stay untouched.
	metrics := storagemocks.NewMetricsStore(t)

	previous := memory.New()
	_, err := previous.ReplaceAll(context.Background(), []registration.Record{
		rec("Old", "2W", 2022, 1, 100),
		rec("Old", "2W", 2023, 1, 200),
	})
	require.NoError(t, err)

	logger := discardLogger()
	p := NewProcessor(nil, ledger, metrics, growth.NewEngine(previous, logger), logger)

	summary, err := p.Load(context.Background(), []registration.Record{rec("New", "2W", 2024, 1, 5)})
	require.ErrorIs(t, err, ErrLedgerWrite)
	require.NotErrorIs(t, err, storage.ErrNoData)
	require.Equal(t, ingestion.LoadSummary{}, summary)
	require.Nil(t, p.Last())
}

func TestProcessor_MetricsWriteFailureDegrades(t *testing.T) {
	store := memory.New()
	metrics := storagemocks.NewMetricsStore(t)
	metrics.EXPECT().ReplaceGrowth(mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("disk full")).Once()

	logger := discardLogger()
	p := NewProcessor(ingestion.StaticSource(testLedger), store, metrics, growth.NewEngine(store, logger), logger)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Growth, 3)
	require.Len(t, res.Annotated, 3)
}

func TestProcessor_Load(t *testing.T) {
	p, store := newMemoryProcessor(nil)

	summary, err := p.Load(context.Background(), testLedger[:2])
	require.NoError(t, err)
	require.Equal(t, 2, summary.Records)
	require.Equal(t, 2, summary.GrowthRows)
	require.Equal(t, summary.RunID, store.RunID())

	_, err = p.Load(context.Background(), nil)
	require.ErrorIs(t, err, storage.ErrNoData)
}

func TestAnnotate_LeftJoin(t *testing.T) {
	rows := []registration.GrowthRow{
		{
			Series:    registration.SeriesKey{Manufacturer: "Acme", VehicleCategory: "2W"},
			Period:    registration.Period{Year: 2023, Quarter: 2},
			YoYGrowth: decimal.NewNullDecimal(dec("12.5")),
		},
	}
	records := []registration.Record{
		rec("Acme", "2W", 2023, 2, 10),
		rec("Acme", "2W", 2023, 2, 5),
		rec("Beta", "2W", 2023, 2, 10),
	}

	got := Annotate(records, rows)
	require.Len(t, got, 3)
	require.True(t, got[0].YoYGrowth.Decimal.Equal(dec("12.5")))
	require.True(t, got[1].YoYGrowth.Valid)
	require.False(t, got[2].YoYGrowth.Valid)
	require.Equal(t, int64(5), got[1].Registrations)
}

func TestProcessor_QueryHelpers(t *testing.T) {
	p, _ := newMemoryProcessor(ingestion.StaticSource(testLedger))
	_, err := p.Run(context.Background())
	require.NoError(t, err)
	ctx := context.Background()

	require.Len(t, p.Growth(ctx, GrowthFilter{}), 3)
	require.Len(t, p.Growth(ctx, GrowthFilter{Year: 2023}), 2)
	require.Len(t, p.Growth(ctx, GrowthFilter{Year: 2023, Quarter: 2, Manufacturer: "Acme", Category: "2W"}), 1)
	require.Empty(t, p.Growth(ctx, GrowthFilter{Category: "4W"}))

	top, err := p.TopGrowth(ctx, registration.MetricQoQGrowth, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	_, err = p.TopGrowth(ctx, registration.MetricRegistrations, 5)
	require.ErrorIs(t, err, registration.ErrUnknownMetric)

	summary := p.GrowthSummary(ctx)
	require.Equal(t, int64(1), summary.YoY.Count)
	require.Equal(t, int64(1), summary.QoQ.Count)

	require.Equal(t, int64(3700), p.Summary(ctx).TotalRegistrations)
	require.Len(t, p.Categories(ctx, nil), 1)
	require.Len(t, p.Manufacturers(ctx, &registration.YearRange{Start: 2024, End: 2024}), 1)

	performers, err := p.TopPerformers(ctx, registration.MetricRegistrations, 0)
	require.NoError(t, err)
	require.Len(t, performers, 1)
	_, err = p.TopPerformers(ctx, registration.Metric("bogus"), 0)
	require.ErrorIs(t, err, registration.ErrUnknownMetric)

	insights := p.Insights(ctx, insight.Filter{}, insight.New(insight.LevelManufacturer, discardLogger()))
	require.NotEmpty(t, insights)
	empty := p.Insights(ctx, insight.Filter{Categories: []string{"4W"}}, insight.New(insight.LevelManufacturer, discardLogger()))
	require.Equal(t, []string{insight.NoDataText}, empty)
}

func TestProcessor_QueryHelpersDegradeOnStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")

	ledger := storagemocks.NewLedgerStore(t)
	ledger.EXPECT().Records(mock.Anything).Return(nil, boom).Once()
	ledger.EXPECT().SummaryStatistics(mock.Anything).Return(registration.Summary{}, boom).Once()
	ledger.EXPECT().AggregatedByCategory(mock.Anything, mock.Anything).Return(nil, boom).Once()
	ledger.EXPECT().AggregatedByManufacturer(mock.Anything, mock.Anything).Return(nil, boom).Once()

	metrics := storagemocks.NewMetricsStore(t)
	metrics.EXPECT().Growth(mock.Anything).Return(nil, boom).Twice()
	metrics.EXPECT().TopPerformers(mock.Anything, registration.MetricYoYGrowth, 3).Return(nil, boom).Once()

	logger := discardLogger()
	p := NewProcessor(nil, ledger, metrics, growth.NewEngine(memory.New(), logger), logger)
	ctx := context.Background()

	require.NotNil(t, p.Growth(ctx, GrowthFilter{}))
	require.Empty(t, p.Growth(ctx, GrowthFilter{}))
	require.Equal(t, []string{insight.NoDataText}, p.Insights(ctx, insight.Filter{}, insight.New(insight.LevelManufacturer, logger)))
	require.Equal(t, registration.Summary{}, p.Summary(ctx))
	require.Empty(t, p.Categories(ctx, nil))
	require.Empty(t, p.Manufacturers(ctx, nil))

	performers, err := p.TopPerformers(ctx, registration.MetricYoYGrowth, 3)
	require.NoError(t, err)
	require.Empty(t, performers)
}

func TestScheduler(t *testing.T) {
	t.Run("disabled interval waits for cancel", func(t *testing.T) {
		p, _ := newMemoryProcessor(nil)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- NewScheduler(0, p, discardLogger()).Start(ctx) }()

		cancel()
		require.NoError(t, <-done)
	})

	t.Run("refreshes on tick", func(t *testing.T) {
		var calls atomic.Int32
		src := ingestionmocks.NewSource(t)
		src.EXPECT().Fetch(mock.Anything).RunAndReturn(func(context.Context) ([]registration.Record, error) {
			calls.Add(1)
			return testLedger, nil
		}).Maybe()

		p, _ := newMemoryProcessor(src)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- NewScheduler(5*time.Millisecond, p, discardLogger()).Start(ctx) }()

		require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
		cancel()
		require.NoError(t, <-done)
		require.NotNil(t, p.Last())
	})
}
