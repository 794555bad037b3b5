// Package web serves the current face state over HTTP so a LAN dashboard can
// mirror the display. Reports are aligned down to the refresh grid, matching
// what the face itself shows, and memoized per grid slot in an LRU cache.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/seamarker/tideface/internal/clock"
	"github.com/seamarker/tideface/internal/models"
)

// Engine computes a face report for an arbitrary epoch. Satisfied by the
// scheduler, whose Compute does not touch the tick-owned schedule state.
type Engine interface {
	Compute(models.EpochSeconds) *models.FaceReport
}

type Server struct {
	engine   Engine
	clock    clock.Clock
	interval int64
	reports  *lru.Cache[int64, *models.FaceReport]
	hits     atomic.Uint64
	misses   atomic.Uint64
}

func NewServer(engine Engine, clk clock.Clock, refreshInterval int64, cacheSize int) (*Server, error) {
	if refreshInterval <= 0 {
		return nil, fmt.Errorf("invalid refresh interval: %d", refreshInterval)
	}

	reports, err := lru.New[int64, *models.FaceReport](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating report cache: %w", err)
	}

	return &Server{
		engine:   engine,
		clock:    clk,
		interval: refreshInterval,
		reports:  reports,
	}, nil
}

// Router returns the HTTP routes for the status server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/predict", s.handlePredict).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	return r
}

// report returns the face report for the refresh slot containing epoch,
// computing and caching it on first use.
func (s *Server) report(epoch models.EpochSeconds) *models.FaceReport {
	slot := alignDown(int64(epoch), s.interval)
	if cached, ok := s.reports.Get(slot); ok {
		s.hits.Add(1)
		return cached
	}
	s.misses.Add(1)
	report := s.engine.Compute(models.EpochSeconds(slot))
	s.reports.Add(slot, report)
	return report
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.report(s.clock.Now()))
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	epochStr := r.URL.Query().Get("epoch")
	if epochStr == "" {
		writeError(w, "missing epoch parameter", http.StatusBadRequest)
		return
	}

	epoch, err := strconv.ParseInt(epochStr, 10, 64)
	if err != nil {
		writeError(w, "invalid epoch parameter", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.report(models.EpochSeconds(epoch)))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.CacheStats())
}

// CacheStats returns statistics about report cache hits and misses.
func (s *Server) CacheStats() map[string]uint64 {
	return map[string]uint64{
		"report_hits":   s.hits.Load(),
		"report_misses": s.misses.Load(),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, errorResponse{Error: message})
}

// alignDown returns the largest multiple of interval not greater than epoch,
// with the usual correction for negative remainders.
func alignDown(epoch, interval int64) int64 {
	rem := epoch % interval
	if rem < 0 {
		rem += interval
	}
	return epoch - rem
}
