package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/iltax/internal/breakeven"
	"github.com/rgehrsitz/iltax/internal/compare"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/rgehrsitz/iltax/internal/output"
	"github.com/shopspring/decimal"
)

// ReformRequest is the body of POST /v1/reform
type ReformRequest struct {
	Profile  domain.TaxpayerProfile `json:"profile"`
	Scenario string                 `json:"scenario"`
}

// CompareRequest is the body of POST /v1/compare
type CompareRequest struct {
	Profile      domain.TaxpayerProfile `json:"profile"`
	BaseScenario string                 `json:"baseScenario"`
	Scenarios    []string               `json:"scenarios"`
}

// GrossForNetRequest is the body of POST /v1/gross-for-net
type GrossForNetRequest struct {
	Profile      domain.TaxpayerProfile `json:"profile"`
	Target       string                 `json:"target"`
	TargetAmount decimal.Decimal        `json:"targetAmount"`
}

// Health handles GET /health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "iltax",
		"years":   s.rates.AvailableYears(),
	})
}

// ListYears handles GET /v1/years
func (s *Server) ListYears(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"years": s.rates.AvailableYears()})
}

// ListCities handles GET /v1/years/:year/cities
func (s *Server) ListCities(c *gin.Context) {
	data, ok := s.bundleForParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": data.Year, "cities": data.Arnona})
}

// ListBudget handles GET /v1/years/:year/budget
func (s *Server) ListBudget(c *gin.Context) {
	data, ok := s.bundleForParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": data.Year, "categories": data.Budget, "costAnalysis": data.CostAnalysis})
}

// ListScenarios handles GET /v1/scenarios
func (s *Server) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": s.registry.Templates(), "factories": s.registry.Factories()})
}

// Calculate handles POST /v1/calculate. The body is a taxpayer profile; the optional
// scenario and investable query parameters feed the reform and investment sections.
func (s *Server) Calculate(c *gin.Context) {
	var profile domain.TaxpayerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		s.reject(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	scenarioSpec := c.DefaultQuery("scenario", "libertarian")
	reform, err := s.registry.Resolve(scenarioSpec)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "invalid_scenario", err)
		return
	}
	investable := decimal.Zero
	if raw := c.Query("investable"); raw != "" {
		investable, err = decimal.NewFromString(raw)
		if err != nil || investable.IsNegative() {
			s.reject(c, http.StatusBadRequest, "invalid_investable", errors.New("investable must be a non-negative amount"))
			return
		}
	}

	result, ok := s.calculate(c, profile)
	if !ok {
		return
	}
	data, err := s.rates.Load(profile.TaxYear)
	if err != nil {
		s.handleError(c, err)
		return
	}

	report, err := output.BuildReport(profile, result, data.CostAnalysis, s.config.Policy, reform, investable)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Reform handles POST /v1/reform
func (s *Server) Reform(c *gin.Context) {
	var req ReformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Scenario == "" {
		req.Scenario = "libertarian"
	}
	reform, err := s.registry.Resolve(req.Scenario)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "invalid_scenario", err)
		return
	}

	result, ok := s.calculate(c, req.Profile)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, freedom.SimulateReform(result, reform))
}

// Compare handles POST /v1/compare
func (s *Server) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if len(req.Scenarios) == 0 {
		req.Scenarios = []string{"income_tax_cut_10", "vat_cut_half", "ni_cut_20", "libertarian"}
	}

	result, ok := s.calculate(c, req.Profile)
	if !ok {
		return
	}
	set, err := s.comparer.Compare(result, compare.CompareOptions{
		BaseScenario: req.BaseScenario,
		Scenarios:    req.Scenarios,
	})
	if err != nil {
		s.reject(c, http.StatusBadRequest, "invalid_scenario", err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// GrossForNet handles POST /v1/gross-for-net
func (s *Server) GrossForNet(c *gin.Context) {
	var req GrossForNetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	target, err := breakeven.ParseSolveTarget(req.Target)
	if err != nil {
		s.reject(c, http.StatusBadRequest, "invalid_target", err)
		return
	}
	if !s.validProfile(c, req.Profile, true) {
		return
	}

	solved, err := s.solver.Solve(c.Request.Context(), breakeven.SolveRequest{
		Profile:      req.Profile,
		Target:       target,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoRateData) {
			s.handleError(c, err)
			return
		}
		s.reject(c, http.StatusUnprocessableEntity, "unsolvable", err)
		return
	}
	c.JSON(http.StatusOK, solved)
}

// calculate validates the profile and runs the engine, recording metrics either way
func (s *Server) calculate(c *gin.Context, profile domain.TaxpayerProfile) (*domain.TotalTaxResult, bool) {
	if !s.validProfile(c, profile, false) {
		return nil, false
	}
	start := time.Now()
	result, err := s.engine.Calculate(profile)
	if err != nil {
		s.handleError(c, err)
		return nil, false
	}
	s.metrics.observeCalculation(profile, time.Since(start).Seconds())
	return result, true
}

// validProfile rejects invalid profiles with 400. Income is ignored when the caller solves for it.
func (s *Server) validProfile(c *gin.Context, profile domain.TaxpayerProfile, ignoreIncome bool) bool {
	if ignoreIncome {
		profile.AnnualGrossIncome = decimal.Zero
	}
	if err := profile.Validate(); err != nil {
		s.reject(c, http.StatusBadRequest, "invalid_profile", err)
		return false
	}
	return true
}

func (s *Server) bundleForParam(c *gin.Context) (*domain.RateDataBundle, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		s.reject(c, http.StatusBadRequest, "invalid_year", errors.New("year must be a positive integer"))
		return nil, false
	}
	data, err := s.rates.Load(year)
	if err != nil {
		s.handleError(c, err)
		return nil, false
	}
	return data, true
}

// handleError maps engine and loader errors onto HTTP statuses
func (s *Server) handleError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNoRateData):
		s.reject(c, http.StatusNotFound, "no_rate_data", err)
	case errors.As(err, &verr):
		s.reject(c, http.StatusInternalServerError, "invalid_rate_data", err)
	default:
		s.reject(c, http.StatusInternalServerError, "internal", err)
	}
}

func (s *Server) reject(c *gin.Context, status int, reason string, err error) {
	s.metrics.observeError(reason)
	if status >= http.StatusInternalServerError {
		s.log.WithField("request_id", c.GetString(requestIDKey)).WithError(err).Error(reason)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"reason":     reason,
		"request_id": c.GetString(requestIDKey),
	})
}
