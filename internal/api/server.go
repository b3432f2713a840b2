// Package api provides the HTTP server for pomoflow. Mobile and desktop
// clients drive the focus timer UI against these endpoints; the server
// owns the gamification state and the shared social tables.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pomoflow/pomoflow/internal/app/gamification"
	"github.com/pomoflow/pomoflow/internal/app/ranking"
	"github.com/pomoflow/pomoflow/internal/domain"
	"github.com/pomoflow/pomoflow/internal/health"
)

// Deps are the services the server exposes.
type Deps struct {
	Gamification *gamification.Service
	Notification *gamification.NotificationService
	Ranking      *ranking.Service
	Remote       domain.RemoteStore
	Social       domain.SocialStore
	Health       *health.Checker

	// UserID is the local user's identity on the shared backend.
	UserID string
}

// Server is the pomoflow HTTP API server.
type Server struct {
	deps           Deps
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(deps Deps) *Server {
	return &Server{deps: deps}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "pomoflow is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Get("/api/health", s.handleHealthDetail)

	// Focus cycle lifecycle
	r.Route("/api/focus", func(r chi.Router) {
		r.Post("/start", s.handleFocusStart)
		r.Post("/complete", s.handleFocusComplete)
		r.Post("/abandon", s.handleFocusAbandon)
	})

	// Gamification readouts
	r.Route("/api/gamification", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/streak", s.handleStreak)
		r.Get("/level", s.handleLevel)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/stats", s.handlePeriodStats)
	})

	// Leaderboards
	r.Get("/api/ranking", s.handleRanking)

	// Notifications
	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/", s.handleNotifications)
		r.Post("/{id}/shown", s.handleNotificationShown)
	})

	// Social graph
	r.Route("/api/profiles", func(r chi.Router) {
		r.Get("/", s.handleListProfiles)
		r.Post("/", s.handleUpsertProfile)
	})
	r.Route("/api/follows", func(r chi.Router) {
		r.Get("/", s.handleListFollowing)
		r.Post("/", s.handleFollow)
		r.Delete("/{id}", s.handleUnfollow)
	})
	r.Route("/api/groups", func(r chi.Router) {
		r.Post("/", s.handleCreateGroup)
		r.Post("/{id}/join", s.handleJoinGroup)
		r.Get("/{id}/members", s.handleGroupMembers)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealthDetail(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health == nil {
		writeError(w, http.StatusServiceUnavailable, "health checker not initialized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"healthy": s.deps.Health.IsHealthy(),
		"checks":  s.deps.Health.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
