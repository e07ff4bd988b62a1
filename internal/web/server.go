// Package web serves the read-only dashboard: a JSON API over the
// history store plus a websocket that streams the live kiosk frame.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/parkboard/internal/rotation"
	"github.com/example/parkboard/internal/store"
)

// Server exposes the dashboard. The store may be nil (history endpoints
// then return 404s); the hub may be nil when frame streaming is off.
type Server struct {
	httpSrv *http.Server
	db      *store.Store
	machine *rotation.Machine
	hub     *Hub
}

func New(addr string, db *store.Store, machine *rotation.Machine, hub *Hub) *Server {
	s := &Server{db: db, machine: machine, hub: hub}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/waits", s.handleWaits)
	mux.HandleFunc("/api/rides", s.handleRides)
	mux.HandleFunc("/api/parks", s.handleParks)
	mux.HandleFunc("/api/db-stats", s.handleDBStats)
	mux.HandleFunc("/api/history/", s.handleRideHistory)
	mux.HandleFunc("/api/park/", s.handleParkHistory)
	mux.HandleFunc("/api/stats/", s.handleRideStats)
	if hub != nil {
		mux.HandleFunc("/ws", hub.HandleWS)
	}

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server shuts down.
func (s *Server) ListenAndServe() error { return s.httpSrv.ListenAndServe() }

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error { return s.httpSrv.Shutdown(ctx) }

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	idx, total := s.machine.Index()
	fresh := s.machine.Freshness(now)
	writeJSON(w, map[string]any{
		"status":      "ok",
		"state":       s.machine.State(),
		"index":       idx,
		"queue_len":   total,
		"age_minutes": fresh.AgeMinutes,
		"stale":       fresh.Stale,
	})
}

func (s *Server) handleWaits(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusNotFound, "history database not configured")
		return
	}
	waits, err := s.db.CurrentWaits()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"waits":     waits,
	})
}

func (s *Server) handleRides(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusNotFound, "history database not configured")
		return
	}
	rides, err := s.db.Rides()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"rides": rides})
}

func (s *Server) handleParks(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusNotFound, "history database not configured")
		return
	}
	parks, err := s.db.Parks()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"parks": parks})
}

func (s *Server) handleDBStats(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusNotFound, "history database not configured")
		return
	}
	st, err := s.db.DatabaseStats()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, st)
}

// pathTail returns the URL segment after prefix, decoded-ish (the ride
// names we store never contain slashes).
func pathTail(r *http.Request, prefix string) string {
	return strings.TrimPrefix(r.URL.Path, prefix)
}

func hoursParam(r *http.Request) int {
	if h, err := strconv.Atoi(r.URL.Query().Get("hours")); err == nil && h > 0 {
		return h
	}
	return 24
}

func (s *Server) handleRideHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusNotFound, "history database not configured")
		return
	}
	name := pathTail(r, "/api/history/")
	if name == "" {
		writeErr(w, http.StatusBadRequest, "ride name required")
		return
	}
	hours := hoursParam(r)
	points, err := s.db.RideHistory(name, time.Now().Add(-time.Duration(hours)*time.Hour))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"ride_name": name, "hours": hours, "history": points})
}

func (s *Server) handleParkHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusNotFound, "history database not configured")
		return
	}
	name := pathTail(r, "/api/park/")
	if name == "" {
		writeErr(w, http.StatusBadRequest, "park name required")
		return
	}
	hours := hoursParam(r)
	points, err := s.db.ParkHistory(name, time.Now().Add(-time.Duration(hours)*time.Hour))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"park_name": name, "hours": hours, "history": points})
}

func (s *Server) handleRideStats(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeErr(w, http.StatusNotFound, "history database not configured")
		return
	}
	name := pathTail(r, "/api/stats/")
	if name == "" {
		writeErr(w, http.StatusBadRequest, "ride name required")
		return
	}
	days := 7
	if d, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && d > 0 {
		days = d
	}
	stats, err := s.db.RideStats(name, time.Now().AddDate(0, 0, -days))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"ride_name": name, "days": days, "stats": stats})
}
