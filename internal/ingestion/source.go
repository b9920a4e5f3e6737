package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
)

// Source produces a full registration ledger.
type Source interface {
	Fetch(ctx context.Context) ([]registration.Record, error)
}

// FallbackSource reads Primary and switches to Fallback when Primary fails or
// returns no records.
type FallbackSource struct {
	Primary  Source
	Fallback Source
	Logger   *slog.Logger
}

// Fetch returns the primary ledger, or the fallback ledger when the primary is unusable.
// storage.ErrNoData is returned only when neither source yields records.
func (f *FallbackSource) Fetch(ctx context.Context) ([]registration.Record, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	records, err := f.Primary.Fetch(ctx)
	if err == nil && len(records) > 0 {
		logger.Info("[Ingestion] Loaded ledger from primary source", "records", len(records))
		return records, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if err != nil {
		logger.Warn("[Ingestion] Primary source failed, using fallback", "error", err)
	} else {
		logger.Warn("[Ingestion] Primary source returned no records, using fallback")
	}

	if f.Fallback == nil {
		if err != nil && errors.Is(err, storage.ErrNoData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: primary source empty and no fallback configured", storage.ErrNoData)
	}

	records, fbErr := f.Fallback.Fetch(ctx)
	if fbErr != nil {
		return nil, fmt.Errorf("fallback source: %w", fbErr)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: fallback source returned no records", storage.ErrNoData)
	}

	logger.Info("[Ingestion] Loaded ledger from fallback source", "records", len(records))
	return records, nil
}

// StaticSource serves an in-memory ledger.
type StaticSource []registration.Record

func (s StaticSource) Fetch(_ context.Context) ([]registration.Record, error) {
	out := make([]registration.Record, len(s))
	copy(out, s)
	return out, nil
}
