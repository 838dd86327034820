// Package routing is the application's HTTP router, a thin layer over chi.
package routing

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wraps chi.Router with a few helpers.
type Router struct {
	mux chi.Router
}

// Option configures a Router built by New.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger writes one access-log record per request to logger instead
// of chi's default stdout logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a Router with RequestID, RealIP, access logging and
// Recoverer installed.
//
//	r := routing.New(routing.WithLogger(logger))
func New(opts ...Option) *Router {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if o.logger != nil {
		r.Use(middleware.RequestLogger(&accessLog{logger: o.logger}))
	} else {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	return &Router{mux: r}
}

// ── Routes ───────────────────────────────────────────────────────────────────

// Get registers a GET route.
func (r *Router) Get(pattern string, h http.HandlerFunc) { r.mux.Get(pattern, h) }

// Post registers a POST route.
func (r *Router) Post(pattern string, h http.HandlerFunc) { r.mux.Post(pattern, h) }

// Group runs fn against an inline group: middleware added inside only
// applies to the group's routes.
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) { fn(&Router{mux: mx}) })
}

// Prefix runs fn against a sub-router mounted under pattern.
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) { fn(&Router{mux: mx}) })
}

// Mount attaches h under pattern.
func (r *Router) Mount(pattern string, h http.Handler) { r.mux.Mount(pattern, h) }

// Middleware appends mw to the stack. chi requires middleware to be added
// before the first route on the same router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) { r.mux.Use(mw...) }

// Param returns the URL parameter key of the matched route.
func Param(r *http.Request, key string) string { return chi.URLParam(r, key) }

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) { r.mux.ServeHTTP(w, req) }

// Handler returns the router as a plain http.Handler.
func (r *Router) Handler() http.Handler { return r.mux }

// ── Access log ───────────────────────────────────────────────────────────────

// accessLog adapts slog to chi's middleware.LogFormatter.
type accessLog struct {
	logger *slog.Logger
}

func (f *accessLog) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessEntry{logger: f.logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)}
}

type accessEntry struct {
	logger *slog.Logger
}

func (e *accessEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.logger.Info("http request", "status", status, "bytes", bytes, "elapsed", elapsed)
}

func (e *accessEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error("http panic", "panic", v, "stack", string(stack))
}
