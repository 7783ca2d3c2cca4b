// Package api provides the HTTP observation endpoints for a running
// simulation. GET endpoints are public (read-only observation); the
// food-drop trigger is a POST guarded by a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/talgya/anthill/internal/engine"
	"github.com/talgya/anthill/internal/persistence"
)

const defaultHistoryLimit = 100

// Server serves simulation state over HTTP.
type Server struct {
	Sim      *engine.Simulation
	DB       *persistence.DB // optional; /metrics returns 503 when nil
	Port     int
	AdminKey string // bearer token for POST endpoints; empty = POST disabled
}

// Start begins serving in a goroutine. A failed bind is logged and the
// process continues without the API; there is no stop mechanism, the
// server lives for the lifetime of the process.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/metrics", s.handleMetrics)
	mux.HandleFunc("/api/v1/food", s.adminOnly(s.handleFood))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.Sim.Status())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "metrics storage disabled", http.StatusServiceUnavailable)
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	rows, err := s.DB.History(limit)
	if err != nil {
		slog.Error("metrics history failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

// handleFood queues a food drop, the same external stimulus a pointer
// click produces. Applied at the start of the next tick.
func (s *Server) handleFood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Count int     `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	cfg := s.Sim.Cfg
	if req.X < 0 || req.X >= cfg.Width || req.Y < 0 || req.Y >= cfg.Height {
		http.Error(w, "position out of bounds", http.StatusBadRequest)
		return
	}
	if req.Count <= 0 {
		req.Count = cfg.FoodPerClick
	}

	s.Sim.SpawnFood(req.X, req.Y, req.Count)
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]any{"queued": req.Count})
}

// adminOnly wraps a handler with POST + bearer token enforcement. With
// no admin key configured the endpoint is disabled outright.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}
