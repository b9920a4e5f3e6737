package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
	"github.com/sonijitendra/vehicle-registrations/internal/growth"
	"github.com/sonijitendra/vehicle-registrations/internal/ingestion"
)

// ErrLedgerWrite reports that the ledger store rejected a full replace.
var ErrLedgerWrite = errors.New("ledger write failed")

// AnnotatedRecord is a ledger row joined with the growth of its series and period.
type AnnotatedRecord struct {
	registration.Record
	YoYGrowth decimal.NullDecimal `json:"yoy_growth"`
	QoQGrowth decimal.NullDecimal `json:"qoq_growth"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID        string
	CalculatedAt time.Time
	Records      []registration.Record
	Growth       []registration.GrowthRow
	Annotated    []AnnotatedRecord
}

// Summary returns the counts reported to upload and run callers.
func (r *Result) Summary() ingestion.LoadSummary {
	return ingestion.LoadSummary{
		RunID:      r.RunID,
		Records:    len(r.Records),
		GrowthRows: len(r.Growth),
	}
}

// Processor loads a ledger, recomputes growth and persists the metrics table.
// Runs are serialized; concurrent Run calls share one execution.
type Processor struct {
	source  ingestion.Source
	ledger  storage.LedgerStore
	metrics storage.MetricsStore
	engine  *growth.Engine
	logger  *slog.Logger

	runs  singleflight.Group
	mu    sync.Mutex
	last  *Result
	clock func() time.Time
}

func NewProcessor(
	source ingestion.Source,
	ledger storage.LedgerStore,
	metrics storage.MetricsStore,
	engine *growth.Engine,
	logger *slog.Logger,
) *Processor {
	if ledger == nil {
		panic("pipeline: ledger store must not be nil")
	}
	if metrics == nil {
		panic("pipeline: metrics store must not be nil")
	}
	if engine == nil {
		panic("pipeline: growth engine must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		source:  source,
		ledger:  ledger,
		metrics: metrics,
		engine:  engine,
		logger:  logger,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// Run fetches the ledger from the source and processes it.
// Only a missing ledger or a cancelled context is returned as an error.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	if p.source == nil {
		return nil, fmt.Errorf("%w: no source configured", storage.ErrNoData)
	}

	v, err, shared := p.runs.Do("run", func() (interface{}, error) {
		records, err := p.source.Fetch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if !errors.Is(err, storage.ErrNoData) {
				err = fmt.Errorf("%w: %w", storage.ErrNoData, err)
			}
			p.logger.Error("[Pipeline] No ledger available", "error", err)
			return nil, err
		}
		if len(records) == 0 {
			p.logger.Error("[Pipeline] Source returned an empty ledger")
			return nil, fmt.Errorf("%w: source returned no records", storage.ErrNoData)
		}
		return p.process(ctx, records, false)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debug("[Pipeline] Joined in-flight run")
	}
	return v.(*Result), nil
}

// Load processes an uploaded ledger in place of the source.
func (p *Processor) Load(ctx context.Context, records []registration.Record) (ingestion.LoadSummary, error) {
	if len(records) == 0 {
		return ingestion.LoadSummary{}, fmt.Errorf("%w: upload contained no records", storage.ErrNoData)
	}
	res, err := p.process(ctx, records, true)
	if err != nil {
		return ingestion.LoadSummary{}, err
	}
	return res.Summary(), nil
}

// Last returns the most recent successful run, or nil before the first one.
func (p *Processor) Last() *Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// process replaces the ledger and recomputes growth from it. When the ledger
// write fails the stored growth would describe the previous ledger, so it is
// never computed: strict callers get ErrLedgerWrite, others an empty growth set.
func (p *Processor) process(ctx context.Context, records []registration.Record, strict bool) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	res := &Result{
		RunID:        uuid.NewString(),
		CalculatedAt: p.clock(),
		Records:      records,
	}

	p.logger.Info("[Pipeline] Starting run", "run_id", res.RunID, "records", len(records))

	rows := []registration.GrowthRow{}
	if n, err := p.ledger.ReplaceAll(ctx, records); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.logger.Error("[Pipeline] Failed to replace ledger, skipping growth computation", "run_id", res.RunID, "error", err)
		if strict {
			return nil, fmt.Errorf("%w: %w", ErrLedgerWrite, err)
		}
	} else {
		p.logger.Info("[Pipeline] Ledger replaced", "run_id", res.RunID, "rows", n)

		rows, err = p.engine.Compute(ctx)
		if err != nil {
			return nil, fmt.Errorf("compute growth: %w", err)
		}
	}
	res.Growth = rows

	if n, err := p.metrics.ReplaceGrowth(ctx, res.RunID, rows); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.logger.Error("[Pipeline] Failed to persist growth metrics", "run_id", res.RunID, "error", err)
	} else {
		p.logger.Info("[Pipeline] Growth metrics persisted", "run_id", res.RunID, "rows", n)
	}

	res.Annotated = Annotate(records, rows)
	p.last = res

	p.logger.Info("[Pipeline] Run complete",
		"run_id", res.RunID,
		"records", len(res.Records),
		"growth_rows", len(res.Growth),
		"duration", time.Since(start),
	)
	return res, nil
}

// Annotate left-joins each record with the growth row of its series and period.
// Records with no matching row carry null growth.
func Annotate(records []registration.Record, rows []registration.GrowthRow) []AnnotatedRecord {
	type key struct {
		series registration.SeriesKey
		period registration.Period
	}
	index := make(map[key]registration.GrowthRow, len(rows))
	for _, r := range rows {
		index[key{r.Series, r.Period}] = r
	}

	out := make([]AnnotatedRecord, 0, len(records))
	for _, rec := range records {
		a := AnnotatedRecord{Record: rec}
		if g, ok := index[key{rec.Series(), rec.Period()}]; ok {
			a.YoYGrowth = g.YoYGrowth
			a.QoQGrowth = g.QoQGrowth
		}
		out = append(out, a)
	}
	return out
}
