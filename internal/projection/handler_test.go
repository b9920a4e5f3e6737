package projection

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httperr "github.com/sonijitendra/vehicle-registrations/internal/core/errors"
	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage/memory"
	"github.com/sonijitendra/vehicle-registrations/internal/growth"
	"github.com/sonijitendra/vehicle-registrations/internal/ingestion"
	"github.com/sonijitendra/vehicle-registrations/internal/insight"
	ingestionmocks "github.com/sonijitendra/vehicle-registrations/internal/mocks/ingestion"
	"github.com/sonijitendra/vehicle-registrations/internal/pipeline"
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

// Acme 2W grows 50% QoQ then 20% YoY; Beta 4W shrinks 25% YoY.
var ledger = []registration.Record{
	rec("Acme", "2W", 2023, 1, 1000),
	rec("Acme", "2W", 2023, 2, 1500),
	rec("Acme", "2W", 2024, 1, 1200),
	rec("Beta", "4W", 2023, 1, 400),
	rec("Beta", "4W", 2024, 1, 300),
}

func newProcessor(t *testing.T, src ingestion.Source) *pipeline.Processor {
	t.Helper()
	store := memory.New()
	logger := discardLogger()
	return pipeline.NewProcessor(src, store, store, growth.NewEngine(store, logger), logger)
}

func newRouter(t *testing.T) (*gin.Engine, *pipeline.Processor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := newProcessor(t, ingestion.StaticSource(ledger))
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	r := gin.New()
	NewService(p, p, insight.LevelManufacturer, discardLogger()).RegisterRoutes(r)
	return r, p
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v))
	return v
}

func TestHandleGrowth(t *testing.T) {
	r, _ := newRouter(t)

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "all rows", query: "", wantCount: 5},
		{name: "by year", query: "?year=2024", wantCount: 2},
		{name: "by year and quarter", query: "?year=2023&quarter=2", wantCount: 1},
		{name: "by category", query: "?category=4W", wantCount: 2},
		{name: "by manufacturer", query: "?manufacturer=Acme&year=2024", wantCount: 1},
		{name: "no match", query: "?category=3W", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(r, "/v1/growth"+tt.query)
			require.Equal(t, http.StatusOK, resp.Code)

			body := decode[GrowthResponse](t, resp)
			require.Equal(t, tt.wantCount, body.Count)
			require.Len(t, body.Rows, tt.wantCount)
		})
	}
}

func TestHandleGrowth_NullsAreJSONNull(t *testing.T) {
	r, _ := newRouter(t)

	resp := get(r, "/v1/growth?manufacturer=Acme&year=2023&quarter=1")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"count":1,"rows":[{
		"manufacturer":"Acme","vehicle_category":"2W","year":2023,"quarter":1,
		"registrations":1000,"yoy_growth":null,"qoq_growth":null
	}]}`, resp.Body.String())

	resp = get(r, "/v1/growth?manufacturer=Beta&year=2024")
	body := decode[GrowthResponse](t, resp)
	require.Len(t, body.Rows, 1)
	require.NotNil(t, body.Rows[0].YoYGrowth)
	require.InDelta(t, -25.0, *body.Rows[0].YoYGrowth, 1e-9)
	require.Nil(t, body.Rows[0].QoQGrowth)
}

func TestHandleTopGrowth(t *testing.T) {
	r, _ := newRouter(t)

	resp := get(r, "/v1/growth/top")
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode[GrowthResponse](t, resp)
	require.Equal(t, 2, body.Count)
	require.Equal(t, "Acme", body.Rows[0].Manufacturer)
	require.InDelta(t, 20.0, *body.Rows[0].YoYGrowth, 1e-9)
	require.Equal(t, "Beta", body.Rows[1].Manufacturer)

	resp = get(r, "/v1/growth/top?metric=qoq_growth&limit=1")
	require.Equal(t, http.StatusOK, resp.Code)
	body = decode[GrowthResponse](t, resp)
	require.Equal(t, 1, body.Count)
	require.InDelta(t, 50.0, *body.Rows[0].QoQGrowth, 1e-9)

	for _, target := range []string{
		"/v1/growth/top?metric=registrations",
		"/v1/growth/top?metric=market_share",
		"/v1/growth/top?limit=many",
	} {
		resp := get(r, target)
		require.Equal(t, http.StatusBadRequest, resp.Code, target)
		require.Equal(t, httperr.HttpInvalidQueryError, decode[httperr.ErrorResponse](t, resp).ErrorType)
	}
}

func TestHandleGrowthSummary(t *testing.T) {
	r, _ := newRouter(t)

	resp := get(r, "/v1/growth/summary")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decode[GrowthSummaryResponse](t, resp)
	require.Equal(t, "yoy_growth", body.YoY.Metric)
	require.Equal(t, int64(2), body.YoY.Count)
	require.InDelta(t, -2.5, *body.YoY.Mean, 1e-9)
	require.InDelta(t, -25.0, *body.YoY.Min, 1e-9)
	require.InDelta(t, 20.0, *body.YoY.Max, 1e-9)
	require.Equal(t, int64(1), body.QoQ.Count)
}

func TestHandleInsights(t *testing.T) {
	r, _ := newRouter(t)

	resp := get(r, "/v1/insights")
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode[InsightResponse](t, resp)
	require.Equal(t, "manufacturer", body.Level)
	require.NotEmpty(t, body.Insights)

	resp = get(r, "/v1/insights?category=3W")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, []string{insight.NoDataText}, decode[InsightResponse](t, resp).Insights)

	resp = get(r, "/v1/insights?level=none&start_year=2023&end_year=2023&category=2W,4W")
	require.Equal(t, http.StatusOK, resp.Code)
	body = decode[InsightResponse](t, resp)
	require.Equal(t, "none", body.Level)
	require.NotEmpty(t, body.Insights)

	for _, target := range []string{
		"/v1/insights?level=state",
		"/v1/insights?start_year=2024&end_year=2023",
	} {
		resp := get(r, target)
		require.Equal(t, http.StatusBadRequest, resp.Code, target)
	}
}

func TestHandleLedgerAggregates(t *testing.T) {
	r, _ := newRouter(t)

	resp := get(r, "/v1/summary")
	require.Equal(t, http.StatusOK, resp.Code)
	summary := decode[map[string]int64](t, resp)
	require.Equal(t, int64(5), summary["total_records"])
	require.Equal(t, int64(4400), summary["total_registrations"])
	require.Equal(t, int64(2023), summary["earliest_year"])

	resp = get(r, "/v1/categories?start_year=2024")
	require.Equal(t, http.StatusOK, resp.Code)
	categories := decode[[]registration.CategoryTotal](t, resp)
	require.Len(t, categories, 2)
	require.Equal(t, "2W", categories[0].VehicleCategory)
	require.Equal(t, int64(1200), categories[0].Registrations)

	resp = get(r, "/v1/manufacturers?end_year=2023")
	require.Equal(t, http.StatusOK, resp.Code)
	makers := decode[[]registration.ManufacturerTotal](t, resp)
	require.Len(t, makers, 2)
	require.Equal(t, "Acme", makers[0].Manufacturer)
	require.Equal(t, int64(2500), makers[0].Registrations)

	resp = get(r, "/v1/categories?start_year=abc")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleTopPerformers(t *testing.T) {
	r, _ := newRouter(t)

	resp := get(r, "/v1/top-performers")
	require.Equal(t, http.StatusOK, resp.Code)
	ps := decode[[]PerformerResponse](t, resp)
	require.Len(t, ps, 2)
	require.Equal(t, "Acme", ps[0].Manufacturer)
	require.Nil(t, ps[0].AvgGrowth)

	resp = get(r, "/v1/top-performers?metric=yoy_growth&limit=1")
	require.Equal(t, http.StatusOK, resp.Code)
	ps = decode[[]PerformerResponse](t, resp)
	require.Len(t, ps, 1)
	require.Equal(t, "Acme", ps[0].Manufacturer)
	require.InDelta(t, 20.0, *ps[0].AvgGrowth, 1e-9)

	resp = get(r, "/v1/top-performers?metric=revenue")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		r, p := newRouter(t)
		first := p.Last()

		req := httptest.NewRequest(http.MethodPost, "/v1/runs", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusCreated, resp.Code)
		body := decode[RunResponse](t, resp)
		require.NotEqual(t, first.RunID, body.RunID)
		require.Equal(t, 5, body.Records)
		require.Equal(t, 5, body.GrowthRows)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{name: "no ledger", err: storage.ErrNoData, wantStatus: http.StatusUnprocessableEntity, wantType: httperr.HttpNoDataError},
		{name: "source timed out", err: context.DeadlineExceeded, wantStatus: http.StatusInternalServerError, wantType: httperr.HttpInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ingestionmocks.NewSource(t)
			src.EXPECT().Fetch(mock.Anything).Return(nil, tt.err).Once()
			p := newProcessor(t, src)

			r := gin.New()
			NewService(p, p, insight.LevelManufacturer, discardLogger()).RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodPost, "/v1/runs", nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, tt.wantStatus, resp.Code)
			require.Equal(t, tt.wantType, decode[httperr.ErrorResponse](t, resp).ErrorType)
		})
	}
}

func TestRegisterRoutes_NoRunnerHidesRunEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := newProcessor(t, nil)

	r := gin.New()
	NewService(p, nil, insight.LevelNone, nil).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/v1/runs", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNotFound, resp.Code)

	// An empty store still answers with empty bodies.
	resp = get(r, "/v1/growth")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"count":0,"rows":[]}`, resp.Body.String())
}
