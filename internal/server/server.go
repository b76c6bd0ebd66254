package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/iltax/internal/breakeven"
	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/compare"
	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/rgehrsitz/iltax/internal/scenario"
	"github.com/sirupsen/logrus"
)

// RateSource is the year-keyed bundle cache the handlers read from
type RateSource interface {
	calculation.BundleSource
	AvailableYears() []int
}

// Config configures the HTTP server
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	Policy          freedom.Policy
	Logger          *logrus.Entry
	MetricsRegistry *prometheus.Registry
}

// DefaultConfig returns a config listening on :8080 with the default policy
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		Policy:       freedom.DefaultPolicy(),
	}
}

// Server exposes the calculation engine over HTTP
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	rates      RateSource
	engine     *calculation.Engine
	registry   *scenario.Registry
	comparer   *compare.CompareEngine
	solver     *breakeven.Solver
	metrics    *Metrics
	log        *logrus.Entry
}

// New builds the router and registers every route
func New(cfg Config, rates RateSource) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logrus.WithField("module", "server")
	}
	if cfg.MetricsRegistry == nil {
		cfg.MetricsRegistry = prometheus.NewRegistry()
	}
	if cfg.Policy.HorizonYears == 0 {
		cfg.Policy = freedom.DefaultPolicy()
	}

	engine := calculation.NewEngine(rates)
	engine.SetLogger(cfg.Logger.WithField("module", "calculation"))
	registry := scenario.NewRegistry()

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(cfg.Logger))

	s := &Server{
		config:   cfg,
		router:   router,
		rates:    rates,
		engine:   engine,
		registry: registry,
		comparer: compare.NewCompareEngine(registry),
		solver:   breakeven.NewDefaultSolver(engine),
		metrics:  NewMetrics(cfg.MetricsRegistry),
		log:      cfg.Logger,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.Health)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.config.MetricsRegistry, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/v1")
	{
		v1.GET("/years", s.ListYears)
		v1.GET("/years/:year/cities", s.ListCities)
		v1.GET("/years/:year/budget", s.ListBudget)
		v1.GET("/scenarios", s.ListScenarios)
		v1.POST("/calculate", s.Calculate)
		v1.POST("/reform", s.Reform)
		v1.POST("/compare", s.Compare)
		v1.POST("/gross-for-net", s.GrossForNet)
	}
}

// Handler returns the router for use with httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called; it returns http.ErrServerClosed after a clean shutdown
func (s *Server) Start() error {
	s.log.WithField("addr", s.config.Addr).Info("server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
