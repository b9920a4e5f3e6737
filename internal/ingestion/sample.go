package ingestion

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default year span of the synthetic ledger.
const (
	DefaultFirstYear = 2022
	DefaultLastYear  = 2024
)

// CategorySpec describes how one vehicle category is synthesized.
type CategorySpec struct {
	Name          string   `yaml:"name"`
	BaseMin       int64    `yaml:"base_min"`
	BaseMax       int64    `yaml:"base_max"`
	Trend         float64  `yaml:"trend"`
	JitterMin     float64  `yaml:"jitter_min"`
	JitterMax     float64  `yaml:"jitter_max"`
	Manufacturers []string `yaml:"manufacturers"`
}

// Catalog is the set of categories a SampleSource draws from.
type Catalog struct {
	Categories []CategorySpec `yaml:"categories"`
}

// Validate rejects catalogs that cannot produce a ledger.
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("catalog has no categories")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("catalog category name is required")
		}
		if len(cat.Manufacturers) == 0 {
			return fmt.Errorf("category %s has no manufacturers", cat.Name)
		}
		if cat.BaseMin < 0 || cat.BaseMax <= cat.BaseMin {
			return fmt.Errorf("category %s: base range [%d, %d) is empty", cat.Name, cat.BaseMin, cat.BaseMax)
		}
		if cat.JitterMax < cat.JitterMin {
			return fmt.Errorf("category %s: jitter_max below jitter_min", cat.Name)
		}
	}
	return nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// DefaultCatalog returns the built-in 2W/3W/4W catalog.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("ingestion: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog file. An empty path yields the default catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// SampleSource synthesizes a quarterly ledger. The same Seed always yields the same ledger.
type SampleSource struct {
	Catalog Catalog
	Seed    int64
	Years   registration.YearRange
}

// NewSampleSource builds a source over the default catalog and year span.
func NewSampleSource(seed int64) *SampleSource {
	return &SampleSource{
		Catalog: DefaultCatalog(),
		Seed:    seed,
		Years:   registration.YearRange{Start: DefaultFirstYear, End: DefaultLastYear},
	}
}

func (s *SampleSource) Fetch(ctx context.Context) ([]registration.Record, error) {
	if err := s.Catalog.Validate(); err != nil {
		return nil, err
	}
	if s.Years.End < s.Years.Start {
		return nil, fmt.Errorf("sample years: end %d before start %d", s.Years.End, s.Years.Start)
	}

	rng := rand.New(rand.NewSource(s.Seed))
	var records []registration.Record

	for year := s.Years.Start; year <= s.Years.End; year++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for quarter := 1; quarter <= 4; quarter++ {
			p := registration.Period{Year: year, Quarter: quarter}
			for _, cat := range s.Catalog.Categories {
				for _, m := range cat.Manufacturers {
					base := cat.BaseMin + rng.Int63n(cat.BaseMax-cat.BaseMin)
					jitter := cat.JitterMin + rng.Float64()*(cat.JitterMax-cat.JitterMin)
					factor := 1 + float64(year-s.Years.Start)*cat.Trend + jitter

					n := int64(float64(base) * factor)
					if n < 0 {
						n = 0
					}
					records = append(records, registration.Record{
						Date:            p.Start(),
						Year:            year,
						Quarter:         quarter,
						VehicleCategory: cat.Name,
						Manufacturer:    m,
						Registrations:   n,
					})
				}
			}
		}
	}
	return records, nil
}
