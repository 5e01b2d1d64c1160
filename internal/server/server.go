// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

const shutdownTimeout = 30 * time.Second

// Upload limits used when Config leaves them unset
const (
	DefaultMaxUploadBytes int64 = 5 << 20
	DefaultMaxImageBytes  int64 = 2 << 20
)

// PDFRenderer prints preview HTML to a PDF document.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	sessions    *editor.Manager
	assistant   editor.Assistant
	importer    editor.Importer
	pdf         PDFRenderer
	validator   *validator.Validate
	rateLimiter *ratelimit.Limiter

	maxUploadBytes int64
	maxImageBytes  int64
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
	MaxImageBytes  int64

	Sessions  *editor.Manager
	Assistant editor.Assistant
	Importer  editor.Importer
	// PDF may be nil, in which case the pdf route answers 503.
	PDF PDFRenderer
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("server: session manager is required")
	}
	if cfg.Assistant == nil || cfg.Importer == nil {
		return nil, errors.New("server: assistant and importer are required")
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = DefaultMaxImageBytes
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		sessions:       cfg.Sessions,
		assistant:      cfg.Assistant,
		importer:       cfg.Importer,
		pdf:            cfg.PDF,
		validator:      validator.New(),
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		maxUploadBytes: cfg.MaxUploadBytes,
		maxImageBytes:  cfg.MaxImageBytes,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      180 * time.Second, // AI, import and PDF calls are slow
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /themes", s.handleThemes)

	// Sessions and wizard navigation
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PUT /sessions/{id}/step", s.handleSetStep)
	mux.HandleFunc("GET /sessions/{id}/form", s.handleForm)

	// Document edits
	mux.HandleFunc("PATCH /sessions/{id}/fields/{section}", s.handleUpdateField)
	mux.HandleFunc("POST /sessions/{id}/lists/{list}", s.handleAddItem)
	mux.HandleFunc("PATCH /sessions/{id}/lists/{list}/{itemId}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /sessions/{id}/lists/{list}/{itemId}", s.handleRemoveItem)
	mux.HandleFunc("POST /sessions/{id}/skills", s.handleAddSkill)
	mux.HandleFunc("POST /sessions/{id}/sections/{sectionId}/items", s.handleAddCustomItem)
	mux.HandleFunc("PATCH /sessions/{id}/sections/{sectionId}/items/{itemId}", s.handleUpdateCustomItem)
	mux.HandleFunc("DELETE /sessions/{id}/sections/{sectionId}/items/{itemId}", s.handleRemoveCustomItem)
	mux.HandleFunc("PUT /sessions/{id}/profile-image", s.handleUploadProfileImage)
	mux.HandleFunc("DELETE /sessions/{id}/profile-image", s.handleRemoveProfileImage)

	// AI assistance and import
	mux.HandleFunc("POST /sessions/{id}/ai/summary", s.handleGenerateSummary)
	mux.HandleFunc("POST /sessions/{id}/ai/experience/{itemId}/enhance", s.handleEnhanceExperience)
	mux.HandleFunc("POST /sessions/{id}/ai/skills", s.handleSuggestSkills)
	mux.HandleFunc("POST /sessions/{id}/import", s.handleImport)

	// Output
	mux.HandleFunc("GET /sessions/{id}/preview", s.handlePreview)
	mux.HandleFunc("GET /sessions/{id}/preview/stream", s.handlePreviewStream)
	mux.HandleFunc("GET /sessions/{id}/print", s.handlePrint)
	mux.HandleFunc("GET /sessions/{id}/pdf", s.handlePDF)

	// CORS wraps the limiter: preflights spend no tokens and 429s carry CORS headers.
	return middleware.RequestID()(s.withCORS(s.withRateLimit(s.withLogging(mux))))
}

// Run serves until ctx is done, then shuts down gracefully. The session
// sweeper runs alongside the listener.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.sessions.Run(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		defer s.rateLimiter.Stop()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+LastEventIDHeader+", "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+PreviewVersionHeader+", "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// Flush keeps SSE streaming working through the recorder.
func (rec *statusRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		l := logger.Ctx(r.Context())
		event := l.Info()
		if status >= http.StatusInternalServerError {
			event = l.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to its status code and writes it. Internal errors are logged
// and hidden from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if status == http.StatusInternalServerError {
			s.errorResponse(w, status, "internal server error")
			return
		}
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a JSON body into dst and validates its tags.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid request body"}
	}
	if err := s.validator.Struct(dst); err != nil {
		return extractValidationErrors(err)
	}
	return nil
}

// extractValidationErrors turns the first validator failure into an ErrValidation.
func extractValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	logger.Ctx(r.Context()).Warn().
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Time("reset_at", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
