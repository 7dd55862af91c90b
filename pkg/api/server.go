package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/binder"
	"github.com/dmitrymomot/blueprint/pkg/clientip"
	"github.com/dmitrymomot/blueprint/pkg/fieldtype"
	"github.com/dmitrymomot/blueprint/pkg/httpserver"
	"github.com/dmitrymomot/blueprint/pkg/i18n"
	"github.com/dmitrymomot/blueprint/pkg/loader"
	"github.com/dmitrymomot/blueprint/pkg/logger"
	"github.com/dmitrymomot/blueprint/pkg/metrics"
	"github.com/dmitrymomot/blueprint/pkg/requestid"
)

// ErrNoBlueprints makes the readiness probe fail until blueprints are loaded.
var ErrNoBlueprints = errors.New("no blueprints loaded")

// Store provides compiled blueprints by name. *loader.Store implements it.
type Store interface {
	Get(name string) (*blueprint.Schema, error)
	Blueprint(name string) (*loader.Blueprint, error)
	Names() []string
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	store       Store
	registry    *fieldtype.Registry
	translator  *i18n.Translator
	metrics     *metrics.Collector
	logger      *slog.Logger
	clientIP    *clientip.Resolver
	maxBodySize int64
}

// Option configures a Server.
type Option func(*Server)

// WithRegistry sets the field type registry used for localized messages.
func WithRegistry(r *fieldtype.Registry) Option {
	return func(s *Server) { s.registry = r }
}

// WithTranslator enables per request localization of messages and labels.
func WithTranslator(tr *i18n.Translator) Option {
	return func(s *Server) { s.translator = tr }
}

// WithMetrics records validations and filters and serves /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) { s.metrics = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClientIP sets how the client address is resolved for request logs.
func WithClientIP(res *clientip.Resolver) Option {
	return func(s *Server) {
		if res != nil {
			s.clientIP = res
		}
	}
}

// WithMaxBodySize limits request bodies. Values below 1 keep the default.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

func New(store Store, opts ...Option) *Server {
	s := &Server{
		store:       store,
		logger:      slog.New(slog.DiscardHandler),
		clientIP:    clientip.New(),
		maxBodySize: binder.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		s.clientIP.Middleware,
		s.requestLogger,
		middleware.Recoverer,
		i18n.Middleware(s.langExtractor()),
	)

	r.Get("/healthz", httpserver.HealthCheckHandler(s.logger, s.ready))
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/blueprints", s.wrap(s.list))
	r.Get("/blueprints/*", s.wrap(s.describe))
	r.Post("/blueprints/*", s.wrap(s.action))

	r.NotFound(s.wrap(func(*http.Request) Response { return JSONError(ErrNotFound) }))
	r.MethodNotAllowed(s.wrap(func(*http.Request) Response { return JSONError(ErrMethodNotAllowed) }))
	return r
}

func (s *Server) ready(context.Context) error {
	if len(s.store.Names()) == 0 {
		return ErrNoBlueprints
	}
	return nil
}

func (s *Server) langExtractor() i18n.LangExtractor {
	if s.translator == nil {
		return func(*http.Request) string { return "" }
	}
	return i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(s.translator.SupportedLanguages()...))
}

// HandlerFunc handles a request and returns the response to render.
type HandlerFunc func(r *http.Request) Response

func (s *Server) wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h(r)
		if resp == nil {
			resp = JSONError(ErrInternalServerError)
		}
		if err := resp.Render(w, r); err != nil {
			s.logger.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}

// requestLogger logs one record per request; 4xx at warn and 5xx at error.
// Request id and client address come from the logger's context extractors.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		s.logger.LogAttrs(r.Context(), level, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			logger.Duration(time.Since(start)),
			logger.Component("api"),
		)
	})
}
