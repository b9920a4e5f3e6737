package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	httperr "github.com/sonijitendra/vehicle-registrations/internal/core/errors"
	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgEmptyLedger    = "Ledger upload contains no records"
	msgLoadFailed     = "Failed to load ledger"
)

// ingestionError carries the structured HTTP error shape from a helper back to the handler.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// recordPayload is the JSON shape of one uploaded ledger row. Date is a plain
// YYYY-MM-DD string and may be omitted when year and quarter are given.
type recordPayload struct {
	Date            string `json:"date"`
	Year            int    `json:"year"`
	Quarter         int    `json:"quarter"`
	VehicleCategory string `json:"vehicle_category"`
	Manufacturer    string `json:"manufacturer"`
	Registrations   int64  `json:"registrations"`
}

func (p recordPayload) toRecord() (registration.Record, error) {
	rec := registration.Record{
		Year:            p.Year,
		Quarter:         p.Quarter,
		VehicleCategory: strings.TrimSpace(p.VehicleCategory),
		Manufacturer:    strings.TrimSpace(p.Manufacturer),
		Registrations:   p.Registrations,
	}
	if p.Date != "" {
		d, err := time.Parse(DateLayout, p.Date)
		if err != nil {
			return rec, fmt.Errorf("date: %w", err)
		}
		rec.Date = d
		if rec.Year == 0 && rec.Quarter == 0 {
			period := registration.PeriodFor(d)
			rec.Year, rec.Quarter = period.Year, period.Quarter
		}
	}
	if rec.Date.IsZero() {
		rec.Date = rec.Period().Start()
	}
	return rec, rec.Validate()
}

// UploadHandler replaces the ledger with the request body and re-runs the pipeline.
// The body is a JSON array of records, or a CSV ledger when Content-Type is text/csv.
func (s *Service) UploadHandler(c *gin.Context) {
	records, err := s.parseLedger(c)
	if err != nil {
		writeError(c, err)
		return
	}

	s.logger.Info("[Ingestion] Received ledger upload", "records", len(records))

	summary, loadErr := s.loader.Load(c.Request.Context(), records)
	if loadErr != nil {
		if errors.Is(loadErr, storage.ErrNoData) {
			writeError(c, &ingestionError{
				statusCode: http.StatusUnprocessableEntity,
				errorType:  httperr.HttpNoDataError,
				message:    msgEmptyLedger,
			})
			return
		}
		s.logger.Error("[Ingestion] Failed to load ledger", "error", loadErr)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgLoadFailed,
		})
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// parseLedger reads the size-limited body and decodes it by content type.
func (s *Service) parseLedger(c *gin.Context) ([]registration.Record, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
	if err != nil {
		s.logger.Error("[Ingestion] Failed to read request body", "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		s.logger.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpValidationError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	var records []registration.Record
	if strings.HasPrefix(c.ContentType(), "text/csv") {
		records, err = ReadCSV(bytes.NewReader(bodyBytes))
		if err != nil {
			s.logger.Warn("[Ingestion] Invalid CSV ledger", "error", err)
			return nil, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidCsvError,
				message:    err.Error(),
			}
		}
	} else {
		var payload []recordPayload
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			s.logger.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
			return nil, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidJsonError,
				message:    msgInvalidJSON,
			}
		}
		records = make([]registration.Record, 0, len(payload))
		for i, p := range payload {
			rec, err := p.toRecord()
			if err != nil {
				return nil, &ingestionError{
					statusCode: http.StatusBadRequest,
					errorType:  httperr.HttpValidationError,
					message:    err.Error(),
					details:    map[string]interface{}{"index": i},
				}
			}
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    msgEmptyLedger,
		}
	}
	return records, nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
