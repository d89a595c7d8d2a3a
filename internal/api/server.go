package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MJE43/pf-crosscheck/internal/games"
)

// Options tunes the server. Zero values fall back to defaults.
type Options struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	// RNG backs deal and spin requests that carry no seeds.
	RNG games.RNG
}

// Server exposes the kernels over HTTP.
type Server struct {
	logger       *zap.Logger
	errorHandler *ErrorHandler
	opts         Options
	startTime    time.Time
	httpServer   *http.Server
}

// NewServer creates a new API server
func NewServer(logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.RNG == nil {
		opts.RNG = games.StdRNG{}
	}
	logger = logger.Named("api")
	s := &Server{
		logger:       logger,
		errorHandler: NewErrorHandler(logger),
		opts:         opts,
		startTime:    time.Now(),
	}
	s.httpServer = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       opts.RequestTimeout,
		WriteTimeout:      opts.RequestTimeout + time.Second,
	}
	return s
}

// Routes sets up the HTTP routes with middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(s.LoggingMiddleware)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(s.TimeoutMiddleware)
	r.Use(s.CORSMiddleware)

	r.NotFound(s.errorHandler.HandleNotFound)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/kernels", s.handleListKernels)
		r.Post("/seed/hash", s.handleSeedHash)

		r.Post("/leaderboard/rank", s.handleRank)
		r.Post("/leaderboard/standings", s.handleStandings)

		r.Post("/poker/deal", s.handleDeal)
		r.Post("/poker/engine", s.handlePokerEngine)

		r.Post("/roulette/slice", s.handleSlice)
		r.Post("/roulette/spin", s.handleSpin)
		r.Post("/roulette/bet", s.handleBet)
	})

	return r
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// writeJSON writes a JSON response with engine headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}
