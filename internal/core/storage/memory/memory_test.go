package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
)

var _ storage.Backend = (*Store)(nil)

func ledger() []registration.Record {
	return []registration.Record{
		{Year: 2023, Quarter: 4, VehicleCategory: "2W", Manufacturer: "Acme", Registrations: 800},
		{Year: 2024, Quarter: 1, VehicleCategory: "2W", Manufacturer: "Acme", Registrations: 400},
		{Year: 2024, Quarter: 1, VehicleCategory: "2W", Manufacturer: "Acme", Registrations: 200},
		{Year: 2023, Quarter: 1, VehicleCategory: "4W", Manufacturer: "Beta", Registrations: 1000},
		{Year: 2024, Quarter: 1, VehicleCategory: "4W", Manufacturer: "Beta", Registrations: 1500},
	}
}

func TestStore_EmptyQueries(t *testing.T) {
	ctx := context.Background()
	s := New()

	cats, err := s.AggregatedByCategory(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, cats)

	sum, err := s.SummaryStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, registration.Summary{}, sum)

	points, err := s.AlignedPeriods(ctx, registration.YoY)
	require.NoError(t, err)
	assert.Empty(t, points)

	top, err := s.TopPerformers(ctx, registration.MetricRegistrations, 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestStore_ReplaceAllCopiesInput(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := ledger()
	n, err := s.ReplaceAll(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	in[0].Registrations = 1
	got, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(800), got[0].Registrations)

	n, err = s.ReplaceAll(ctx, in[:1])
	require.NoError(t, err)
	require.Equal(t, 1, n)
	got, err = s.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_AlignedPeriods(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.ReplaceAll(ctx, ledger())
	require.NoError(t, err)

	qoq, err := s.AlignedPeriods(ctx, registration.QoQ)
	require.NoError(t, err)
	require.Len(t, qoq, 4)

	// Acme 2W 2024Q1 sums to 600 and wraps to 2023Q4
	acmeQ1 := qoq[1]
	assert.Equal(t, registration.Period{Year: 2024, Quarter: 1}, acmeQ1.Period)
	assert.Equal(t, int64(600), acmeQ1.Registrations)
	require.NotNil(t, acmeQ1.Previous)
	assert.Equal(t, int64(800), *acmeQ1.Previous)

	yoy, err := s.AlignedPeriods(ctx, registration.YoY)
	require.NoError(t, err)
	betaQ1 := yoy[3]
	assert.Equal(t, "Beta", betaQ1.Series.Manufacturer)
	require.NotNil(t, betaQ1.Previous)
	assert.Equal(t, int64(1000), *betaQ1.Previous)
}

func TestStore_LedgerAggregates(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.ReplaceAll(ctx, ledger())
	require.NoError(t, err)

	cats, err := s.AggregatedByCategory(ctx, &registration.YearRange{Start: 2024, End: 2024})
	require.NoError(t, err)
	assert.Equal(t, []registration.CategoryTotal{
		{VehicleCategory: "4W", Registrations: 1500, ManufacturerCount: 1},
		{VehicleCategory: "2W", Registrations: 600, ManufacturerCount: 1},
	}, cats)

	makers, err := s.AggregatedByManufacturer(ctx, nil)
	require.NoError(t, err)
	require.Len(t, makers, 2)
	assert.Equal(t, "Beta", makers[0].Manufacturer)
	assert.InDelta(t, 1250.0, makers[0].AvgRegistrations, 0.001)
	assert.InDelta(t, 466.666, makers[1].AvgRegistrations, 0.001)

	sum, err := s.SummaryStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3900), sum.TotalRegistrations)
	assert.Equal(t, 2023, sum.EarliestYear)
}

func TestStore_Metrics(t *testing.T) {
	ctx := context.Background()
	s := New()

	rows := []registration.GrowthRow{
		{
			Series:        registration.SeriesKey{Manufacturer: "Beta", VehicleCategory: "4W"},
			Period:        registration.Period{Year: 2024, Quarter: 1},
			Registrations: 1500,
			YoYGrowth:     decimal.NewNullDecimal(decimal.NewFromInt(50)),
		},
		{
			Series:        registration.SeriesKey{Manufacturer: "Acme", VehicleCategory: "2W"},
			Period:        registration.Period{Year: 2024, Quarter: 1},
			Registrations: 600,
			QoQGrowth:     decimal.NewNullDecimal(decimal.NewFromInt(-25)),
		},
	}
	n, err := s.ReplaceGrowth(ctx, "run-1", rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "run-1", s.RunID())

	stored, err := s.Growth(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, stored)

	top, err := s.TopPerformers(ctx, registration.MetricYoYGrowth, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Beta", top[0].Manufacturer)

	_, err = s.TopPerformers(ctx, registration.Metric("bogus"), 10)
	assert.ErrorIs(t, err, registration.ErrUnknownMetric)
}

func TestStore_ConcurrentReadersDuringReplace(t *testing.T) {
	ctx := context.Background()
	s := New()
	full := ledger()
	_, err := s.ReplaceAll(ctx, full)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				recs, err := s.Records(ctx)
				if err != nil {
					t.Error(err)
					return
				}
				if len(recs) != len(full) {
					t.Errorf("observed partial ledger of %d rows", len(recs))
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		_, err := s.ReplaceAll(ctx, full)
		require.NoError(t, err)
	}
	wg.Wait()
}
