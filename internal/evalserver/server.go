package evalserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/klauspost/compress/gzhttp"

	"github.com/csheth/calc/internal/calc"
	"github.com/csheth/calc/internal/logging"
)

const (
	defaultAddr         = ":4000"
	defaultMaxBodyBytes = 16 << 10
	shutdownTimeout     = 5 * time.Second
)

// Config wires the evaluator service.
type Config struct {
	Addr         string
	Evaluator    calc.Evaluator
	Logger       *slog.Logger
	MaxBodyBytes int64
}

type Server struct {
	addr         string
	evaluator    calc.Evaluator
	logger       *slog.Logger
	maxBodyBytes int64
}

func New(cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Server{
		addr:         addr,
		evaluator:    cfg.Evaluator,
		logger:       logger,
		maxBodyBytes: maxBody,
	}
}

func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the routed, compressed and logged HTTP handler.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.POST(CalculatePath, s.calculateHandler)
	router.GET(HealthPath, s.healthHandler)
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	return s.logRequests(gzhttp.GzipHandler(router))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting evaluator service", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.addr, err)
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("evaluator service stopped")
	return nil
}

func (s *Server) calculateHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Expression) == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "expression is required"})
		return
	}
	if s.evaluator == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "no evaluator configured"})
		return
	}

	result, err := s.evaluator.Evaluate(r.Context(), req.Expression)
	if err != nil {
		logging.LogError(s.logger, "evaluate", err, slog.String("expression", req.Expression))
		s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, CalculateResponse{Result: result})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.LogError(s.logger, "failed to encode response", err, slog.Int("status", status))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := float64(time.Since(started).Microseconds()) / 1000
		logging.LogHTTPRequest(s.logger, r.Method, r.URL.Path, rec.status, elapsed)
	})
}
