package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/history"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/sim"
)

type apiResponse struct {
	Status  string                `json:"status"`
	Error   string                `json:"error"`
	Result  sim.Result            `json:"result"`
	Results map[string]sim.Result `json:"results"`
	Best    string                `json:"best"`
}

func postJSON(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestSimulate(t *testing.T) {
	t.Parallel()
	s := New(Config{})

	rec, resp := postJSON(t, s, "/api/simulate",
		`{"pages":[1,2,3,1,4],"cache_size":3,"policy":"lru"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	if resp.Status != "success" {
		t.Fatalf("status field = %q, want success", resp.Status)
	}
	if resp.Result.Hits != 1 || resp.Result.Misses != 4 {
		t.Fatalf("result = %+v, want hits=1 misses=4", resp.Result)
	}
	if resp.Result.HitRatio != 0.2 {
		t.Fatalf("hit_ratio = %v, want 0.2", resp.Result.HitRatio)
	}
}

func TestSimulate_StringAndNumberPagesAgree(t *testing.T) {
	t.Parallel()
	s := New(Config{})

	_, asNumbers := postJSON(t, s, "/api/simulate",
		`{"pages":[7,8,7,9],"cache_size":2,"policy":"fifo"}`)
	_, asStrings := postJSON(t, s, "/api/simulate",
		`{"pages":["7","8","7","9"],"cache_size":2,"policy":"fifo"}`)

	if asNumbers.Result != asStrings.Result {
		t.Fatalf("numeric pages gave %+v, string pages gave %+v", asNumbers.Result, asStrings.Result)
	}
}

func TestSimulate_BadRequests(t *testing.T) {
	t.Parallel()
	s := New(Config{})

	cases := []struct {
		name string
		body string
	}{
		{"zero capacity", `{"pages":[1,2],"cache_size":0,"policy":"lru"}`},
		{"negative capacity", `{"pages":[1,2],"cache_size":-3,"policy":"lru"}`},
		{"missing policy", `{"pages":[1,2],"cache_size":2}`},
		{"unknown policy", `{"pages":[1,2],"cache_size":2,"policy":"mru"}`},
		{"bad page type", `{"pages":[1,true,3],"cache_size":2,"policy":"lru"}`},
		{"malformed body", `{"pages":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := postJSON(t, s, "/api/simulate", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
			if resp.Status != "error" || resp.Error == "" {
				t.Fatalf("error envelope = %+v", resp)
			}
		})
	}
}

func TestSimulate_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestCompare_DefaultPolicies(t *testing.T) {
	t.Parallel()
	s := New(Config{Seed: 1})

	rec, resp := postJSON(t, s, "/api/compare",
		`{"pages":[1,2,3,1,2,4,1,2,5],"cache_size":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	for _, name := range sim.PolicyNames() {
		if _, ok := resp.Results[name]; !ok {
			t.Fatalf("results missing policy %q: %+v", name, resp.Results)
		}
	}
	bestRes, ok := resp.Results[resp.Best]
	if !ok {
		t.Fatalf("best = %q not present in results", resp.Best)
	}
	for name, r := range resp.Results {
		if r.HitRatio > bestRes.HitRatio {
			t.Fatalf("best = %q (%v) but %q has %v", resp.Best, bestRes.HitRatio, name, r.HitRatio)
		}
	}
}

func TestCompare_ExplicitPolicies(t *testing.T) {
	t.Parallel()
	s := New(Config{})

	_, resp := postJSON(t, s, "/api/compare",
		`{"pages":[1,2,3,1,4],"cache_size":3,"policies":["lru","fifo"]}`)
	if len(resp.Results) != 2 {
		t.Fatalf("results = %+v, want exactly lru and fifo", resp.Results)
	}
	if resp.Results["lru"].Hits != 1 || resp.Results["fifo"].Hits != 1 {
		t.Fatalf("unexpected tallies: %+v", resp.Results)
	}
}

func TestComparison(t *testing.T) {
	t.Parallel()
	s := New(Config{Seed: 42, ComparisonRefs: 500, ComparisonPages: 50, ComparisonCache: 5})

	req := httptest.NewRequest(http.MethodGet, "/api/comparison", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}

	var resp struct {
		Status string     `json:"status"`
		Before sim.Result `json:"before_optimization"`
		After  sim.Result `json:"after_optimization"`
		Cmp    struct {
			BeforeRatio float64 `json:"before_ratio"`
			AfterRatio  float64 `json:"after_ratio"`
			Improvement float64 `json:"improvement"`
		} `json:"comparison"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.Before.Total() != 500 || resp.After.Total() != 500 {
		t.Fatalf("totals = %d/%d, want 500 each", resp.Before.Total(), resp.After.Total())
	}
	if resp.Cmp.BeforeRatio != resp.Before.HitRatio || resp.Cmp.AfterRatio != resp.After.HitRatio {
		t.Fatalf("comparison ratios %+v do not match results", resp.Cmp)
	}
}

func TestComparison_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := New(Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/comparison", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestSimulate_RecordsHistory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.log")
	hl, err := history.Open(path, history.Options{})
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	s := New(Config{History: hl})

	postJSON(t, s, "/api/simulate", `{"pages":[1,2,3,1,4],"cache_size":3,"policy":"lru"}`)
	postJSON(t, s, "/api/simulate", `{"pages":[1,2,3,1,4],"cache_size":3,"policy":"fifo"}`)
	if err := hl.Close(); err != nil {
		t.Fatalf("close history: %v", err)
	}

	recs, err := history.ReadAll(path)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Policy != "lru" || recs[1].Policy != "fifo" {
		t.Fatalf("record policies = %q, %q", recs[0].Policy, recs[1].Policy)
	}
	if recs[0].Hits != 1 || recs[0].Misses != 4 {
		t.Fatalf("record tallies = %+v", recs[0])
	}
}

type countingMetrics struct {
	hits, misses, evicts int
}

func (m *countingMetrics) Hit()   { m.hits++ }
func (m *countingMetrics) Miss()  { m.misses++ }
func (m *countingMetrics) Evict() { m.evicts++ }

type recordingBackend struct {
	perPolicy map[string]*countingMetrics
	runs      map[string]int
}

func (b *recordingBackend) For(policyName string) sim.Metrics {
	if b.perPolicy[policyName] == nil {
		b.perPolicy[policyName] = &countingMetrics{}
	}
	return b.perPolicy[policyName]
}

func (b *recordingBackend) RunCompleted(policyName string) { b.runs[policyName]++ }

func TestSimulate_ReportsMetrics(t *testing.T) {
	t.Parallel()

	backend := &recordingBackend{
		perPolicy: make(map[string]*countingMetrics),
		runs:      make(map[string]int),
	}
	s := New(Config{Metrics: backend})

	postJSON(t, s, "/api/simulate", `{"pages":[1,2,3,1,4],"cache_size":3,"policy":"lru"}`)

	m := backend.perPolicy["lru"]
	if m == nil {
		t.Fatal("no metrics recorded for lru")
	}
	if m.hits != 1 || m.misses != 4 || m.evicts != 1 {
		t.Fatalf("metrics = %+v, want hits=1 misses=4 evicts=1", m)
	}
	if backend.runs["lru"] != 1 {
		t.Fatalf("runs[lru] = %d, want 1", backend.runs["lru"])
	}
}
