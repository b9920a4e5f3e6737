package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
)

// DateLayout is the ISO date format of the ledger's date column.
const DateLayout = "2006-01-02"

// Header is the column order written by WriteCSV.
var Header = []string{"date", "year", "quarter", "vehicle_category", "manufacturer", "registrations"}

// ErrInvalidCSV is returned for a ledger file that cannot be parsed.
var ErrInvalidCSV = errors.New("invalid registration csv")

// CSVSource reads the ledger from a flat file.
type CSVSource struct {
	Path string
}

// Fetch loads the file. A missing file is reported as storage.ErrNoData.
func (s CSVSource) Fetch(_ context.Context) ([]registration.Record, error) {
	return LoadCSV(s.Path)
}

// LoadCSV reads and parses the ledger file at path.
func LoadCSV(path string) ([]registration.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", storage.ErrNoData, path)
		}
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses a ledger. Columns are matched by header name, so order does not matter.
// vehicle_category, manufacturer and registrations are required, plus either
// year and quarter or date. When only date is present the period is derived from it.
func ReadCSV(r io.Reader) ([]registration.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read headers: %v", ErrInvalidCSV, err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"vehicle_category", "manufacturer", "registrations"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidCSV, required)
		}
	}
	_, hasYear := cols["year"]
	_, hasQuarter := cols["quarter"]
	_, hasDate := cols["date"]
	if !(hasYear && hasQuarter) && !hasDate {
		return nil, fmt.Errorf("%w: need year and quarter columns or a date column", ErrInvalidCSV)
	}

	var records []registration.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, line, err)
		}

		rec, err := parseRow(row, cols, hasYear && hasQuarter, hasDate)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, cols map[string]int, hasPeriod, hasDate bool) (registration.Record, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := registration.Record{
		VehicleCategory: field("vehicle_category"),
		Manufacturer:    field("manufacturer"),
	}

	n, err := strconv.ParseInt(field("registrations"), 10, 64)
	if err != nil {
		return rec, fmt.Errorf("registrations: %w", err)
	}
	rec.Registrations = n

	if hasDate && field("date") != "" {
		d, err := time.Parse(DateLayout, field("date"))
		if err != nil {
			return rec, fmt.Errorf("date: %w", err)
		}
		rec.Date = d
	}

	if hasPeriod {
		if rec.Year, err = strconv.Atoi(field("year")); err != nil {
			return rec, fmt.Errorf("year: %w", err)
		}
		if rec.Quarter, err = strconv.Atoi(field("quarter")); err != nil {
			return rec, fmt.Errorf("quarter: %w", err)
		}
	} else {
		if rec.Date.IsZero() {
			return rec, fmt.Errorf("date is required when year and quarter are absent")
		}
		p := registration.PeriodFor(rec.Date)
		rec.Year, rec.Quarter = p.Year, p.Quarter
	}

	if rec.Date.IsZero() {
		rec.Date = rec.Period().Start()
	}

	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// WriteCSV writes records with Header as the first row.
func WriteCSV(w io.Writer, records []registration.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{
			r.Date.Format(DateLayout),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Quarter),
			r.VehicleCategory,
			r.Manufacturer,
			strconv.FormatInt(r.Registrations, 10),
		}); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to path, creating parent directories as needed.
func SaveCSV(path string, records []registration.Record) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ledger file: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
