package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Srujan0798/CareerMirror/internal/auth"
	"github.com/Srujan0798/CareerMirror/internal/config"
	"github.com/Srujan0798/CareerMirror/internal/generation"
	"github.com/Srujan0798/CareerMirror/internal/llm"
	"github.com/Srujan0798/CareerMirror/internal/plan"
	"github.com/Srujan0798/CareerMirror/internal/server/middleware"
	"github.com/Srujan0798/CareerMirror/internal/server/ratelimit"
	"github.com/Srujan0798/CareerMirror/internal/store"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// ChatRelay relays one interview turn to the counselor model.
type ChatRelay interface {
	Reply(ctx context.Context, history []types.Message, message string) string
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	backend       store.Backend
	rateLimiter   *ratelimit.Limiter
	userService   *UserService
	resumeService *ResumeService
	authHandler   *AuthHandler
	interviewer   ChatRelay
}

// New creates a new server instance wired to the given backend and
// LLM client. Backend selection already happened in store.Open; the
// server never looks at storage configuration again.
func New(cfg *config.Config, backend store.Backend, llmClient llm.Client) (*Server, error) {
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	s := &Server{
		backend:       backend,
		rateLimiter:   ratelimit.NewLimiter(ratelimit.LoadConfig()),
		userService:   NewUserService(backend, passwordConfig),
		resumeService: NewResumeService(backend, plan.NewPolicy(), generation.NewOrchestrator(llmClient, cfg.MinTranscriptTurns)),
		interviewer:   generation.NewInterviewer(llmClient),
	}
	s.authHandler = NewAuthHandler(s.userService)

	guard := auth.NewGuard(backend)
	requireAuth := middleware.RequireAuth(guard)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth endpoints. Logout stays public so a client holding an
	// already-expired token can still clear it.
	mux.HandleFunc("POST /auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("POST /auth/logout", s.authHandler.Logout)
	mux.Handle("GET /auth/me", requireAuth(http.HandlerFunc(s.authHandler.Me)))

	// User profile endpoints
	mux.Handle("PUT /users/{id}", requireAuth(http.HandlerFunc(s.handleUpdateUser)))
	mux.Handle("POST /users/{id}/upgrade", requireAuth(http.HandlerFunc(s.handleUpgradePlan)))

	// Resume endpoints
	mux.Handle("GET /resumes", requireAuth(http.HandlerFunc(s.handleListResumes)))
	mux.Handle("POST /resumes", requireAuth(http.HandlerFunc(s.handleCreateResume)))
	mux.Handle("GET /resumes/{id}", requireAuth(http.HandlerFunc(s.handleGetResume)))
	mux.Handle("PUT /resumes/{id}", requireAuth(http.HandlerFunc(s.handleUpdateResume)))
	mux.Handle("DELETE /resumes/{id}", requireAuth(http.HandlerFunc(s.handleDeleteResume)))

	// Interview chat relay
	mux.Handle("POST /chat", requireAuth(http.HandlerFunc(s.handleChat)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can run long
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if err := s.backend.Close(); err != nil {
		log.Printf("Error closing backend: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// Handler exposes the full middleware chain (for testing purposes).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
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
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
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

	writeJSON(w, http.StatusTooManyRequests, response)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError maps an error to its status and machine-readable code.
// Internal errors are logged and their details kept out of the body.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	code := ErrorCode(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "internal server error"
	}

	body := map[string]any{
		"error":   code,
		"message": message,
	}
	var quota *plan.QuotaError
	if errors.As(err, &quota) {
		body["upgrade_available"] = quota.UpgradeAvailable
	}

	writeJSON(w, status, body)
}
