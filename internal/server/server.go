// Package server exposes the ranking pipeline over HTTP.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/ranking"
)

const (
	AppName = "Resume Ranker API"

	formOverhead = 1 << 20
)

type Config struct {
	Listen       string        `mapstructure:"listen"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

func DefaultConfig() Config {
	return Config{
		Listen:       ":8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

type Server struct {
	app      *fiber.App
	cfg      Config
	pipeline *ranking.Pipeline
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// New builds the fiber application. gatherer backs /metrics; nil means the
// default Prometheus gatherer.
func New(cfg Config, pipeline *ranking.Pipeline, recorder *metrics.Recorder, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		recorder: recorder,
		logger:   logger,
	}

	limits := pipeline.Limits()
	s.app = fiber.New(fiber.Config{
		AppName:               AppName,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             limits.MaxFiles*int(limits.MaxFileSize) + formOverhead,
		ErrorHandler:          s.handleError,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(s.logRequests)

	s.app.Get("/", s.handleIndex)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := s.app.Group("/api/v1")
	api.Get("/health", s.handleHealth)
	api.Post("/rank", s.handleRank)
	api.Post("/score", s.handleScore)

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving on the configured address until Shutdown is called.
func (s *Server) Listen() error {
	s.logger.Info("http server listening", zap.String("listen", s.cfg.Listen))
	return s.app.Listen(s.cfg.Listen)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = statusFor(err)
	}

	s.logger.Debug("http request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}
