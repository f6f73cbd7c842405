package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gastos/internal/app"
	applog "gastos/internal/log"
	"gastos/internal/middleware/ratelimit"
	"gastos/internal/middleware/security"
	"gastos/internal/middleware/trace"
)

// Server exposes the expense screens as a JSON API.
type Server struct {
	http.Server
	state    *app.State
	limiter  *ratelimit.Limiter
	detector *security.Detector
	started  time.Time

	shutdownOnce sync.Once
}

// Options tunes the server. Zero values pick the defaults.
type Options struct {
	RateLimit ratelimit.Config
	Headers   *security.HeadersConfig
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, state *app.State, logger *applog.Logger, opts Options) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	headersConfig := security.DefaultHeadersConfig()
	if opts.Headers != nil {
		headersConfig = *opts.Headers
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		state:    state,
		limiter:  ratelimit.NewLimiter(opts.RateLimit),
		detector: security.NewDetector(),
		started:  time.Now(),
	}

	mutating := s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimited)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.Handle("POST /expenses", mutating(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("DELETE /expenses/{id}", mutating(http.HandlerFunc(s.handleDeleteExpense)))
	mux.HandleFunc("GET /summary/top-category", s.handleTopCategory)
	mux.HandleFunc("GET /categories", s.handleCategories)
	mux.HandleFunc("GET /ui", s.handleScreen)
	mux.HandleFunc("PUT /ui/view", s.handleSetView)

	var handler http.Handler = mux
	handler = s.detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(headersConfig).Middleware(handler)
	handler = applog.RequestLogging(logger, trace.FromRequest)(handler)
	handler = trace.Middleware(handler)
	s.Handler = handler

	return s
}

// Shutdown stops background routines and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
}
