// Package service wires configuration, tracing, the backend request helper,
// the route loaders and the HTTP surface into one runnable web front-end.
package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/okian/suwen/internal/adapters/apiclient"
	"github.com/okian/suwen/internal/adapters/http/health"
	"github.com/okian/suwen/internal/adapters/http/middleware"
	"github.com/okian/suwen/internal/adapters/http/site"
	"github.com/okian/suwen/internal/domain/loader"
	"github.com/okian/suwen/pkg/logger"
	"github.com/okian/suwen/pkg/tracing"
)

const tracingShutdownTimeout = 5 * time.Second

// ErrNotStarted is returned when the HTTP handler is requested before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns the process-wide components of the web front-end.
type Service struct {
	mu sync.RWMutex

	// Core components
	client *apiclient.Client
	loader *loader.Loader

	// Configuration
	apiBaseURL       string
	lang             string
	homeArticleLimit int
	homeShortLimit   int
	listLimit        int
	serviceName      string
	otelEndpoint     string
	httpClient       *http.Client

	// State
	started         bool
	shutdownTracing tracing.ShutdownFunc

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAPIBaseURL sets the backend base URL.
func WithAPIBaseURL(baseURL string) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.apiBaseURL = baseURL
		}
	}
}

// WithLang sets the content language sent to the backend.
func WithLang(lang string) Option {
	return func(s *Service) {
		if lang != "" {
			s.lang = lang
		}
	}
}

// WithHomeLimits bounds the home page lists.
func WithHomeLimits(articles, shorts int) Option {
	return func(s *Service) {
		if articles > 0 {
			s.homeArticleLimit = articles
		}
		if shorts > 0 {
			s.homeShortLimit = shorts
		}
	}
}

// WithListLimit bounds the index pages.
func WithListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithTracing enables OTLP span export to endpoint under serviceName.
// An empty endpoint keeps tracing local.
func WithTracing(serviceName, endpoint string) Option {
	return func(s *Service) {
		if serviceName != "" {
			s.serviceName = serviceName
		}
		s.otelEndpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client used for backend calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		apiBaseURL:       "http://127.0.0.1:3000",
		lang:             "zh-CN",
		homeArticleLimit: 10,
		homeShortLimit:   6,
		listLimit:        100,
		serviceName:      "suwen-web",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes tracing, the backend client and the route loaders.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting web service...")

	shutdown, err := tracing.Setup(ctx, s.serviceName, s.otelEndpoint)
	if err != nil {
		return err
	}
	s.shutdownTracing = shutdown

	s.client = apiclient.New(s.apiBaseURL,
		apiclient.WithHTTPClient(s.httpClient),
		apiclient.WithObserver(apiclient.NewTelemetry(nil)),
	)
	s.loader = loader.New(s.client,
		loader.WithLang(s.lang),
		loader.WithHomeLimits(s.homeArticleLimit, s.homeShortLimit),
		loader.WithListLimit(s.listLimit),
	)

	s.started = true
	s.logger.Info(ctx, "web service started",
		logger.String("apiBaseURL", s.apiBaseURL),
		logger.String("lang", s.lang),
		logger.Any("tracing", s.otelEndpoint != ""),
	)

	return nil
}

// Handler returns the full HTTP surface: pages, health and metrics, behind
// the request id middleware.
func (s *Service) Handler() (http.Handler, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	mux := http.NewServeMux()
	health.NewHandler().Register(mux)
	site.NewHandler(s.loader).Register(mux)

	return middleware.RequestID(mux), nil
}

// Stop flushes pending spans and marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping web service...")

	if s.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		if err := s.shutdownTracing(ctx); err != nil {
			s.logger.Warn(ctx, "tracing shutdown failed", logger.Error(err))
		}
		cancel()
	}

	s.started = false
	s.logger.Info(context.Background(), "web service stopped")
}

// GetStats returns service state for diagnostics.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":    s.started,
		"apiBaseURL": s.apiBaseURL,
		"lang":       s.lang,
		"tracing":    s.otelEndpoint != "",
	}
}
