// Package sqlstore implements every storage role over database/sql.
// The PostgreSQL and SQLite adapters own connection setup and schema, then
// delegate all reads and writes here.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// Store runs the shared queries against db.
type Store struct {
	db        *sql.DB
	logger    *slog.Logger
	component string

	stmtYoY *sql.Stmt
	stmtQoQ *sql.Stmt
}

// New prepares the growth-engine statements on db.
// component is the log prefix, e.g. "Postgres" or "SQLite".
func New(db *sql.DB, component string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	stmtYoY, err := db.Prepare(queryYoYPeriods)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare yoy periods statement: %w", err)
	}

	stmtQoQ, err := db.Prepare(queryQoQPeriods)
	if err != nil {
		stmtYoY.Close()
		return nil, fmt.Errorf("failed to prepare qoq periods statement: %w", err)
	}

	return &Store{
		db:        db,
		logger:    logger,
		component: "[" + component + "]",
		stmtYoY:   stmtYoY,
		stmtQoQ:   stmtQoQ,
	}, nil
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ReplaceAll deletes the ledger and inserts records in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, records []registration.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("replace ledger: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, queryDeleteRecords); err != nil {
		return 0, fmt.Errorf("replace ledger: delete: %w", err)
	}

	insertStmt, err := tx.PrepareContext(ctx, queryInsertRecord)
	if err != nil {
		return 0, fmt.Errorf("replace ledger: prepare insert: %w", err)
	}
	defer insertStmt.Close()

	for i, r := range records {
		if _, err := insertStmt.ExecContext(ctx,
			r.Date,
			r.Year,
			r.Quarter,
			r.VehicleCategory,
			r.Manufacturer,
			r.Registrations,
		); err != nil {
			return 0, fmt.Errorf("replace ledger: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replace ledger: commit: %w", err)
	}

	s.logger.Info(s.component+" Ledger replaced", "records", len(records))
	return len(records), nil
}

func (s *Store) Records(ctx context.Context) ([]registration.Record, error) {
	rows, err := s.db.QueryContext(ctx, querySelectRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var records []registration.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}
	return records, nil
}

func (s *Store) AggregatedByCategory(ctx context.Context, yr *registration.YearRange) ([]registration.CategoryTotal, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if yr == nil {
		rows, err = s.db.QueryContext(ctx, queryCategoryTotals)
	} else {
		rows, err = s.db.QueryContext(ctx, queryCategoryTotalsInRange, yr.Start, yr.End)
	}
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	out := []registration.CategoryTotal{}
	for rows.Next() {
		var c registration.CategoryTotal
		if err := rows.Scan(&c.VehicleCategory, &c.Registrations, &c.ManufacturerCount); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return out, nil
}

func (s *Store) AggregatedByManufacturer(ctx context.Context, yr *registration.YearRange) ([]registration.ManufacturerTotal, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if yr == nil {
		rows, err = s.db.QueryContext(ctx, queryManufacturerTotals)
	} else {
		rows, err = s.db.QueryContext(ctx, queryManufacturerTotalsInRange, yr.Start, yr.End)
	}
	if err != nil {
		return nil, fmt.Errorf("query manufacturer totals: %w", err)
	}
	defer rows.Close()

	out := []registration.ManufacturerTotal{}
	for rows.Next() {
		var m registration.ManufacturerTotal
		if err := rows.Scan(&m.Manufacturer, &m.VehicleCategory, &m.Registrations, &m.AvgRegistrations); err != nil {
			return nil, fmt.Errorf("scan manufacturer total: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manufacturer totals: %w", err)
	}
	return out, nil
}

func (s *Store) SummaryStatistics(ctx context.Context) (registration.Summary, error) {
	var sum registration.Summary
	err := s.db.QueryRowContext(ctx, querySummary).Scan(
		&sum.TotalRecords,
		&sum.TotalRegistrations,
		&sum.UniqueManufacturers,
		&sum.UniqueCategories,
		&sum.EarliestYear,
		&sum.LatestYear,
	)
	if err != nil {
		return registration.Summary{}, fmt.Errorf("query summary statistics: %w", err)
	}
	return sum, nil
}

// AlignedPeriods runs the aggregate-and-self-join query for a. Rows are
// re-sorted in Go so ordering does not depend on the database collation.
func (s *Store) AlignedPeriods(ctx context.Context, a registration.Alignment) ([]registration.AlignedPoint, error) {
	stmt := s.stmtYoY
	if a == registration.QoQ {
		stmt = s.stmtQoQ
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query %s periods: %w", a, err)
	}
	defer rows.Close()

	points := []registration.AlignedPoint{}
	for rows.Next() {
		ap, err := scanAlignedPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s periods: %w", a, err)
	}

	sortAligned(points)
	s.logger.Debug(s.component+" Aligned periods loaded", "alignment", a.String(), "points", len(points))
	return points, nil
}

// ReplaceGrowth swaps the growth table for rows in one transaction.
func (s *Store) ReplaceGrowth(ctx context.Context, runID string, rows []registration.GrowthRow) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("replace growth: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, queryDeleteGrowth); err != nil {
		return 0, fmt.Errorf("replace growth: delete: %w", err)
	}

	insertStmt, err := tx.PrepareContext(ctx, queryInsertGrowth)
	if err != nil {
		return 0, fmt.Errorf("replace growth: prepare insert: %w", err)
	}
	defer insertStmt.Close()

	calculatedAt := time.Now().UTC()
	for _, g := range rows {
		if _, err := insertStmt.ExecContext(ctx,
			runID,
			g.Series.Manufacturer,
			g.Series.VehicleCategory,
			g.Period.Year,
			g.Period.Quarter,
			g.Registrations,
			growthValue(g.YoYGrowth),
			growthValue(g.QoQGrowth),
			calculatedAt,
		); err != nil {
			return 0, fmt.Errorf("replace growth: insert %v %s: %w", g.Series, g.Period.Label(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replace growth: commit: %w", err)
	}

	s.logger.Info(s.component+" Growth metrics replaced", "run_id", runID, "rows", len(rows))
	return len(rows), nil
}

func (s *Store) Growth(ctx context.Context) ([]registration.GrowthRow, error) {
	rows, err := s.db.QueryContext(ctx, querySelectGrowth)
	if err != nil {
		return nil, fmt.Errorf("query growth metrics: %w", err)
	}
	defer rows.Close()

	out := []registration.GrowthRow{}
	for rows.Next() {
		g, err := scanGrowthRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate growth metrics: %w", err)
	}

	registration.SortGrowth(out)
	return out, nil
}

// TopPerformers ranks by registrations in SQL. Growth rankings load the non-null
// values and reuse registration.RankPerformers so averages are computed with the
// same decimal arithmetic on every backend.
func (s *Store) TopPerformers(ctx context.Context, metric registration.Metric, limit int) ([]registration.Performer, error) {
	if limit <= 0 {
		limit = registration.DefaultPerformerLimit
	}

	switch metric {
	case registration.MetricRegistrations:
		return s.topByRegistrations(ctx, limit)
	case registration.MetricYoYGrowth:
		return s.topByGrowth(ctx, queryTopByYoY, metric, limit)
	case registration.MetricQoQGrowth:
		return s.topByGrowth(ctx, queryTopByQoQ, metric, limit)
	default:
		return nil, fmt.Errorf("%w: %q", registration.ErrUnknownMetric, metric)
	}
}

func (s *Store) topByRegistrations(ctx context.Context, limit int) ([]registration.Performer, error) {
	rows, err := s.db.QueryContext(ctx, queryTopByRegistrations, limit)
	if err != nil {
		return nil, fmt.Errorf("query top performers: %w", err)
	}
	defer rows.Close()

	out := []registration.Performer{}
	for rows.Next() {
		var p registration.Performer
		if err := rows.Scan(&p.Manufacturer, &p.Registrations, &p.CategoriesServed); err != nil {
			return nil, fmt.Errorf("scan top performer: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top performers: %w", err)
	}
	return out, nil
}

func (s *Store) topByGrowth(ctx context.Context, query string, metric registration.Metric, limit int) ([]registration.Performer, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s performers: %w", metric, err)
	}
	defer rows.Close()

	var values []registration.GrowthRow
	for rows.Next() {
		var g registration.GrowthRow
		dest := &g.YoYGrowth
		if metric == registration.MetricQoQGrowth {
			dest = &g.QoQGrowth
		}
		if err := rows.Scan(&g.Series.Manufacturer, &g.Series.VehicleCategory, dest); err != nil {
			return nil, fmt.Errorf("scan %s performer: %w", metric, err)
		}
		values = append(values, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s performers: %w", metric, err)
	}

	return registration.RankPerformers(values, metric, limit)
}

// Close releases the prepared statements. The owning adapter closes the connection.
func (s *Store) Close() error {
	var firstErr error
	if err := s.stmtYoY.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close yoy statement: %w", err)
	}
	if err := s.stmtQoQ.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close qoq statement: %w", err)
	}
	return firstErr
}

func sortAligned(points []registration.AlignedPoint) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Series != points[j].Series {
			return points[i].Series.Less(points[j].Series)
		}
		return points[i].Period.Less(points[j].Period)
	})
}
