// Package server exposes the simulator over HTTP. It is a thin boundary:
// requests are decoded and validated here, all replacement logic lives in
// the sim package, and completed runs are fanned out to the optional
// history log and metrics backend.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/history"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/report"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/sim"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/trace"
)

// Metrics is the per-policy observability surface the server needs.
// The metrics/prom Adapter satisfies it.
type Metrics interface {
	For(policyName string) sim.Metrics
	RunCompleted(policyName string)
}

// Config wires the server's collaborators. Zero values are safe: no
// history, no metrics, seed 0, default comparison workload.
type Config struct {
	// History, when non-nil, receives a record for every completed run.
	History *history.Log
	// Metrics, when non-nil, receives per-policy counters for every run.
	Metrics Metrics
	// Seed feeds the random policy and the comparison workload generator.
	Seed int64

	// Workload shape for GET /api/comparison.
	ComparisonRefs  int // references generated (default 1000)
	ComparisonPages int // distinct pages (default 100)
	ComparisonCache int // cache capacity (default 10)
}

// Server handles the simulation API. Safe for concurrent use: every request
// runs against its own cache state.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

// New constructs the API server.
//
// Routes:
//
//	POST /api/simulate   {pages, cache_size, policy} -> one result
//	POST /api/compare    {pages, cache_size[, policies]} -> result per policy
//	GET  /api/comparison generated workload, FIFO vs LRU, improvement %
func New(cfg Config) *Server {
	if cfg.ComparisonRefs <= 0 {
		cfg.ComparisonRefs = 1000
	}
	if cfg.ComparisonPages <= 0 {
		cfg.ComparisonPages = 100
	}
	if cfg.ComparisonCache <= 0 {
		cfg.ComparisonCache = 10
	}
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/simulate", s.handleSimulate)
	s.mux.HandleFunc("/api/compare", s.handleCompare)
	s.mux.HandleFunc("/api/comparison", s.handleComparison)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// simulateRequest is the request surface of /api/simulate and /api/compare.
// Pages accepts strings and numbers; numbers are kept verbatim as their
// decimal text so 1 and "1" name the same page.
type simulateRequest struct {
	Pages     []any    `json:"pages"`
	CacheSize int      `json:"cache_size"`
	Policy    string   `json:"policy"`
	Policies  []string `json:"policies"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	req, refs, ok := s.decode(w, r)
	if !ok {
		return
	}

	res, err := runPolicy(s, req.Policy, refs, req.CacheSize)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"result": res,
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	req, refs, ok := s.decode(w, r)
	if !ok {
		return
	}

	names := req.Policies
	if len(names) == 0 {
		names = sim.PolicyNames()
	}

	results := make(map[string]sim.Result, len(names))
	best := ""
	for _, name := range names {
		res, err := runPolicy(s, name, refs, req.CacheSize)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		results[name] = res
		if best == "" || res.HitRatio > results[best].HitRatio {
			best = name
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": results,
		"best":    best,
	})
}

// handleComparison replays one generated workload under FIFO ("before
// optimization") and LRU ("after") and reports the relative improvement.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	refs := trace.Uniform(s.cfg.ComparisonRefs, s.cfg.ComparisonPages, s.cfg.Seed)

	before, err := runPolicy(s, "fifo", refs, s.cfg.ComparisonCache)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	after, err := runPolicy(s, "lru", refs, s.cfg.ComparisonCache)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "success",
		"before_optimization": before,
		"after_optimization":  after,
		"comparison":          report.Compare(before.HitRatio, after.HitRatio),
	})
}

// decode parses and validates the shared request shape. On failure it has
// already written the client error.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (simulateRequest, []string, bool) {
	var req simulateRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return req, nil, false
	}
	if req.CacheSize < 1 {
		writeErr(w, http.StatusBadRequest, "cache_size must be >= 1")
		return req, nil, false
	}
	refs, err := pagesOf(req.Pages)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return req, nil, false
	}
	return req, refs, true
}

// pagesOf normalizes the pages field to string identifiers.
func pagesOf(pages []any) ([]string, error) {
	refs := make([]string, len(pages))
	for i, p := range pages {
		switch v := p.(type) {
		case string:
			refs[i] = v
		case json.Number:
			refs[i] = v.String()
		default:
			return nil, fmt.Errorf("pages[%d]: page reference must be a string or number", i)
		}
	}
	return refs, nil
}

// runPolicy resolves the selector, replays the trace, and records the
// completed run with the configured collaborators.
func runPolicy[P comparable](s *Server, policyName string, refs []P, cacheSize int) (sim.Result, error) {
	pol, err := sim.PolicyFor[P](policyName, s.cfg.Seed)
	if err != nil {
		return sim.Result{}, err
	}
	o := sim.Options[P]{Capacity: cacheSize, Policy: pol}
	if s.cfg.Metrics != nil {
		o.Metrics = s.cfg.Metrics.For(pol.Name())
	}
	res, err := sim.Run(refs, o)
	if err != nil {
		return sim.Result{}, err
	}

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RunCompleted(pol.Name())
	}
	if s.cfg.History != nil {
		if err := s.cfg.History.Append(pol.Name(), cacheSize, len(refs), res); err != nil {
			// A failed history append must not fail the simulation response.
			log.Printf("server: history append: %v", err)
		}
	}
	return res, nil
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{
		"status": "error",
		"error":  msg,
	})
}
