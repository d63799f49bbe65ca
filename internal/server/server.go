package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/omchoksi/talentscout/internal/conversation"
	"github.com/omchoksi/talentscout/internal/db"
	"github.com/omchoksi/talentscout/internal/server/middleware"
	"github.com/omchoksi/talentscout/internal/server/ratelimit"
)

// ChatService runs one interview turn.
type ChatService interface {
	Chat(ctx context.Context, sessionID, userInput string) (conversation.Result, error)
}

// SessionReader reads stored sessions and transcripts.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*db.Session, error)
	ListMessages(ctx context.Context, sessionID string) ([]db.Message, error)
}

// ProfileReader reads derived candidate profiles for the recruiter API.
type ProfileReader interface {
	GetProfile(ctx context.Context, sessionID string) (*db.CandidateProfile, error)
	ListProfiles(ctx context.Context, limit int) ([]db.CandidateProfile, error)
}

// Server is the HTTP server for the chat and recruiter APIs.
type Server struct {
	httpServer  *http.Server
	chat        ChatService
	sessions    SessionReader
	profiles    ProfileReader
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	log         *zap.Logger
}

// Options holds the server's dependencies.
type Options struct {
	Port     int
	Chat     ChatService
	Sessions SessionReader
	Profiles ProfileReader
	JWT      *JWTService
	Log      *zap.Logger
}

// New creates a server instance. The recruiter endpoints require opts.JWT.
func New(opts Options) (*Server, error) {
	if opts.Chat == nil {
		return nil, fmt.Errorf("chat service is required")
	}
	if opts.Sessions == nil || opts.Profiles == nil {
		return nil, fmt.Errorf("session and profile stores are required")
	}
	if opts.JWT == nil {
		return nil, fmt.Errorf("JWT service is required")
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	s := &Server{
		chat:        opts.Chat,
		sessions:    opts.Sessions,
		profiles:    opts.Profiles,
		jwtService:  opts.JWT,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		validate:    validator.New(),
		log:         opts.Log,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Recruiter endpoints sit behind JWT auth.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /sessions/{session_id}", s.handleGetSession)
	mux.HandleFunc("GET /health", s.handleHealth)

	requireAuth := s.jwtService.AsTokenValidator()
	mux.Handle("GET /candidates", s.authed(requireAuth, s.handleListCandidates))
	mux.Handle("GET /candidates/{session_id}", s.authed(requireAuth, s.handleGetCandidate))

	return mux
}

// Start begins listening and blocks until an interrupt or SIGTERM, then shuts
// down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.log.Info("server stopped")
	return nil
}

// Handler exposes the full middleware stack, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// withRateLimit adds rate limiting.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authed wraps a handler with bearer-token authentication.
func (s *Server) authed(v middleware.TokenValidator, h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(v)(h)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID returns the client identifier for rate limiting. This uses
// the IP from RemoteAddr; X-Forwarded-For would only be safe behind a trusted
// proxy.
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

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
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

	s.log.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset_at", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
