package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/bulk"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/classify"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

const (
	// defaultRequestTimeout bounds a request when RouterConfig.Timeout is unset
	defaultRequestTimeout = 5 * time.Minute
	// defaultMaxBodySize caps request bodies when RouterConfig.MaxBodySize is unset
	defaultMaxBodySize = 1 << 20
)

// Notifier posts a bulk scan summary somewhere humans will see it
type Notifier interface {
	Notify(ctx context.Context, rows []types.Row) error
}

// RouterConfig holds the dependencies and limits used by the API router
type RouterConfig struct {
	// Analyzer classifies single inputs
	Analyzer classify.Analyzer
	// Notifier receives bulk scan summaries when requested; nil disables notifications
	Notifier Notifier
	// MaxBodySize caps request bodies in bytes
	MaxBodySize int64
	// Timeout bounds each request, including every classification it triggers
	Timeout time.Duration
	// MaxItems caps the number of inputs in a bulk request
	MaxItems int
	// Workers is the number of bulk inputs classified concurrently
	Workers int
}

// NewRouter creates a new chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Analyzer == nil {
		cfg.Analyzer = classify.New(nil, nil)
	}

	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = defaultMaxBodySize
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}

	if cfg.MaxItems <= 0 || cfg.MaxItems > bulk.MaxItems {
		cfg.MaxItems = bulk.MaxItems
	}

	if cfg.Workers <= 0 {
		cfg.Workers = bulk.DefaultWorkers
	}

	h := &Handler{
		analyzer:    cfg.Analyzer,
		notifier:    cfg.Notifier,
		maxBodySize: cfg.MaxBodySize,
		maxItems:    cfg.MaxItems,
		workers:     cfg.Workers,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(middleware.Timeout(cfg.Timeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/bulk", h.handleBulk)
		r.Post("/bulk/export", h.handleBulkExport)
	})

	return r
}

// requestLogger logs each request with zerolog once the response is written
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}
