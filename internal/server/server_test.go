package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rgehrsitz/iltax/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeProfile = `{"annualGrossIncome": 200000, "employmentType": "employee", "gender": "male", "taxYear": 2025}`

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	reg := prometheus.NewRegistry()
	cfg := DefaultConfig()
	cfg.Logger = logrus.NewEntry(logger)
	cfg.MetricsRegistry = reg
	return New(cfg, config.NewRateDataLoader()), reg
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "iltax", resp["service"])
	assert.Contains(t, resp["years"], float64(2025))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/years", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestListCitiesAndBudget(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/v1/years/2025/cities", "")
	require.Equal(t, http.StatusOK, w.Code)
	cities := decode(t, w)["cities"].([]any)
	assert.Len(t, cities, 10)

	w = do(t, s, http.MethodGet, "/v1/years/2025/budget", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Len(t, resp["categories"], 14)
	assert.Len(t, resp["costAnalysis"], 14)
}

func TestYearErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		path   string
		status int
		reason string
	}{
		{"/v1/years/abc/cities", http.StatusBadRequest, "invalid_year"},
		{"/v1/years/1999/cities", http.StatusNotFound, "no_rate_data"},
		{"/v1/years/1999/budget", http.StatusNotFound, "no_rate_data"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, s, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.reason, decode(t, w)["reason"])
		})
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.Errors.WithLabelValues("no_rate_data")))
}

func TestCalculate(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/calculate?investable=10000", employeeProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.NotEmpty(t, resp["id"])
	result := resp["result"].(map[string]any)
	assert.Equal(t, "159828.54", result["netIncome"])
	assert.Equal(t, "40171.46", result["totalDeductions"])
	reform := resp["reform"].(map[string]any)
	assert.Equal(t, "26511.68", reform["annualSavings"])
	investment := resp["investment"].(map[string]any)
	assert.Equal(t, "6457", investment["endValueDifference"])

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Calculations.WithLabelValues("2025", "employee")))
}

func TestCalculate_Rejections(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		reason string
	}{
		{"malformed json", "/v1/calculate", `{"annualGrossIncome":`, http.StatusBadRequest, "bad_request"},
		{"unknown employment", "/v1/calculate", `{"annualGrossIncome": 1, "employmentType": "robot", "gender": "male", "taxYear": 2025}`, http.StatusBadRequest, "bad_request"},
		{"negative income", "/v1/calculate", `{"annualGrossIncome": -1, "employmentType": "employee", "gender": "male", "taxYear": 2025}`, http.StatusBadRequest, "invalid_profile"},
		{"unknown year", "/v1/calculate", `{"annualGrossIncome": 1, "employmentType": "employee", "gender": "male", "taxYear": 1999}`, http.StatusNotFound, "no_rate_data"},
		{"bad scenario", "/v1/calculate?scenario=nope", employeeProfile, http.StatusBadRequest, "invalid_scenario"},
		{"bad investable", "/v1/calculate?investable=-5", employeeProfile, http.StatusBadRequest, "invalid_investable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.reason, decode(t, w)["reason"])
		})
	}
}

func TestReform(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"profile": ` + employeeProfile + `, "scenario": "income_tax_cut_10"}`
	w := do(t, s, http.MethodPost, "/v1/reform", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Equal(t, "2354", resp["annualSavings"])
	assert.Equal(t, "57321.96", resp["reformedTotalDeductions"])
}

func TestCompare(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"profile": ` + employeeProfile + `, "scenarios": ["income_tax_cut_10", "libertarian"]}`
	w := do(t, s, http.MethodPost, "/v1/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Equal(t, "current", resp["baseScenarioName"])
	alts := resp["alternativeResults"].([]any)
	require.Len(t, alts, 2)
	assert.Equal(t, "libertarian", alts[0].(map[string]any)["scenarioName"])
}

func TestGrossForNet(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"profile": {"employmentType": "employee", "gender": "male", "taxYear": 2025}, "targetAmount": 159828.54}`
	w := do(t, s, http.MethodPost, "/v1/gross-for-net", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])

	w = do(t, s, http.MethodPost, "/v1/gross-for-net",
		`{"profile": {"employmentType": "employee", "gender": "male", "taxYear": 2025}, "targetAmount": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, s, http.MethodPost, "/v1/gross-for-net",
		`{"profile": {"employmentType": "employee", "gender": "male", "taxYear": 2025}, "target": "bonus", "targetAmount": 5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListScenarios(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/v1/scenarios", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Len(t, resp["templates"], 7)
	assert.Equal(t, []any{"custom", "flat"}, resp["factories"])
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/v1/calculate", employeeProfile)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `iltax_calculations_total{employment_type="employee",year="2025"} 1`)
	assert.Contains(t, body, "iltax_calculation_duration_seconds_count 1")
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("# HELP iltax_calculations_total")))
}
