package projection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/sonijitendra/vehicle-registrations/internal/core/errors"
	"github.com/sonijitendra/vehicle-registrations/internal/core/registration"
	"github.com/sonijitendra/vehicle-registrations/internal/core/storage"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/growth", s.HandleGrowth)
	r.GET("/v1/growth/top", s.HandleTopGrowth)
	r.GET("/v1/growth/summary", s.HandleGrowthSummary)
	r.GET("/v1/insights", s.HandleInsights)
	r.GET("/v1/summary", s.HandleSummary)
	r.GET("/v1/categories", s.HandleCategories)
	r.GET("/v1/manufacturers", s.HandleManufacturers)
	r.GET("/v1/top-performers", s.HandleTopPerformers)
	if s.runner != nil {
		r.POST("/v1/runs", s.HandleRun)
	}
}

// HandleGrowth handles GET /v1/growth
// Query parameters: year, quarter, category, manufacturer
func (s *Service) HandleGrowth(c *gin.Context) {
	var q GrowthQuery
	if !bindQuery(c, &q) {
		return
	}
	f, err := q.filter()
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGrowthResponse(s.queries.Growth(c.Request.Context(), f)))
}

// HandleTopGrowth handles GET /v1/growth/top
// Query parameters: metric (yoy_growth|qoq_growth, default yoy_growth), limit
func (s *Service) HandleTopGrowth(c *gin.Context) {
	var q TopQuery
	if !bindQuery(c, &q) {
		return
	}
	metric, err := parseMetric(q.Metric, registration.MetricYoYGrowth)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	limit := q.Limit
	if limit <= 0 {
		limit = registration.DefaultPerformerLimit
	}

	rows, err := s.queries.TopGrowth(c.Request.Context(), metric, limit)
	if err != nil {
		writeQueryError(c, invalidQueryf("%v", err))
		return
	}
	c.JSON(http.StatusOK, toGrowthResponse(rows))
}

// HandleGrowthSummary handles GET /v1/growth/summary
func (s *Service) HandleGrowthSummary(c *gin.Context) {
	sum := s.queries.GrowthSummary(c.Request.Context())
	c.JSON(http.StatusOK, GrowthSummaryResponse{
		YoY: toDistributionResponse(sum.YoY),
		QoQ: toDistributionResponse(sum.QoQ),
	})
}

// HandleInsights handles GET /v1/insights
// Query parameters: start_year, end_year, category, manufacturer, level
func (s *Service) HandleInsights(c *gin.Context) {
	var q InsightQuery
	if !bindQuery(c, &q) {
		return
	}
	f, err := q.filter()
	if err != nil {
		writeQueryError(c, err)
		return
	}
	gen, err := s.generator(q.Level)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, InsightResponse{
		Level:    gen.Level().String(),
		Insights: s.queries.Insights(c.Request.Context(), f, gen),
	})
}

// HandleSummary handles GET /v1/summary
func (s *Service) HandleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.queries.Summary(c.Request.Context()).Map())
}

// HandleCategories handles GET /v1/categories
// Query parameters: start_year, end_year
func (s *Service) HandleCategories(c *gin.Context) {
	var q RangeQuery
	if !bindQuery(c, &q) {
		return
	}
	yr, err := q.yearRange()
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.queries.Categories(c.Request.Context(), yr))
}

// HandleManufacturers handles GET /v1/manufacturers
// Query parameters: start_year, end_year
func (s *Service) HandleManufacturers(c *gin.Context) {
	var q RangeQuery
	if !bindQuery(c, &q) {
		return
	}
	yr, err := q.yearRange()
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.queries.Manufacturers(c.Request.Context(), yr))
}

// HandleTopPerformers handles GET /v1/top-performers
// Query parameters: metric (registrations|yoy_growth|qoq_growth), limit
func (s *Service) HandleTopPerformers(c *gin.Context) {
	var q TopQuery
	if !bindQuery(c, &q) {
		return
	}
	metric, err := parseMetric(q.Metric, registration.MetricRegistrations)
	if err != nil {
		writeQueryError(c, err)
		return
	}

	ps, err := s.queries.TopPerformers(c.Request.Context(), metric, q.Limit)
	if err != nil {
		writeQueryError(c, invalidQueryf("%v", err))
		return
	}
	c.JSON(http.StatusOK, toPerformerResponses(metric, ps))
}

// HandleRun handles POST /v1/runs
func (s *Service) HandleRun(c *gin.Context) {
	res, err := s.runner.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNoData) {
			c.JSON(http.StatusUnprocessableEntity, httperr.ErrorResponse{
				ErrorType: httperr.HttpNoDataError,
				Message:   "No registration ledger available",
				Details:   err.Error(),
			})
			return
		}
		s.logger.Error("[Projection] Pipeline run failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to run pipeline",
		})
		return
	}

	c.JSON(http.StatusCreated, RunResponse{
		RunID:        res.RunID,
		CalculatedAt: res.CalculatedAt,
		Records:      len(res.Records),
		GrowthRows:   len(res.Growth),
	})
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

func writeQueryError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Query failed",
	})
}
