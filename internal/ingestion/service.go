package ingestion

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

// LoadSummary reports what a ledger upload produced.
type LoadSummary struct {
	RunID      string `json:"run_id"`
	Records    int    `json:"records"`
	GrowthRows int    `json:"growth_rows"`
}

// Loader replaces the ledger with records and recomputes everything derived from it.
type Loader interface {
	Load(ctx context.Context, records []registration.Record) (LoadSummary, error)
}

type Service struct {
	loader           Loader
	logger           *slog.Logger
	maxBodySizeBytes int
}

func NewService(loader Loader, maxBodySizeMB int, logger *slog.Logger) *Service {
	if loader == nil {
		panic("ingestion: loader must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 8
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		loader:           loader,
		logger:           logger,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ledger upload route.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/registrations", s.UploadHandler)
}
