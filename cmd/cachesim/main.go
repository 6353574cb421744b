// Command cachesim replays a page reference trace against one or more
// replacement policies and prints the tallies, or serves the simulation
// API over HTTP with optional Prometheus metrics and a run history log.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/history"
	pmet "github.com/pranita383/virtual-memory-and-cache-optimizer/metrics/prom"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/report"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/server"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/sim"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/trace"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 64, "cache capacity (pages)")
		policy   = flag.String("policy", "lru", "replacement policy: lru | fifo | lfu | opt | random | all")

		traceFile = flag.String("trace", "", "read the reference trace from this file (one or more pages per line)")
		pages     = flag.String("pages", "", "inline reference trace, comma or space separated")

		refs  = flag.Int("refs", 100_000, "generated trace length (when no trace is given)")
		keys  = flag.Int("keys", 10_000, "distinct pages in the generated trace")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew); s <= 1 generates a uniform trace")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed (trace generation and random policy)")

		historyPath = flag.String("history", "", "append run records to this log file; empty = disabled")
		compress    = flag.String("compress", "none", "history compression: none | lz4 | snappy")

		httpAddr = flag.String("http", "", "serve the simulation API and /metrics at addr (e.g. :8080); empty = one-shot run")
	)
	flag.Parse()

	// ---- Run history ----
	var hlog *history.Log
	if *historyPath != "" {
		codec, err := history.ParseCompression(*compress)
		if err != nil {
			log.Fatalf("history: %v", err)
		}
		hlog, err = history.Open(*historyPath, history.Options{Compression: codec})
		if err != nil {
			log.Fatalf("history: %v", err)
		}
		defer func() { _ = hlog.Close() }()
	}

	// ---- Server mode ----
	if *httpAddr != "" {
		metrics := pmet.New(nil, "cachesim", "sim", nil)
		api := server.New(server.Config{
			History: hlog,
			Metrics: metrics,
			Seed:    *seed,
		})
		http.Handle("/api/", api)
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("serving simulation API at %s", *httpAddr)
		log.Fatal(http.ListenAndServe(*httpAddr, nil))
	}

	// ---- One-shot run ----
	refsList, err := loadTrace(*traceFile, *pages, *refs, *keys, *zipfS, *zipfV, *seed)
	if err != nil {
		log.Fatalf("trace: %v", err)
	}
	if len(refsList) == 0 {
		log.Fatal("trace: no page references")
	}

	names := []string{*policy}
	if *policy == "all" {
		names = sim.PolicyNames()
	}

	results := make(map[string]sim.Result, len(names))
	for _, name := range names {
		pol, err := sim.PolicyFor[string](name, *seed)
		if err != nil {
			log.Fatalf("policy: %v", err)
		}
		res, err := sim.Run(refsList, sim.Options[string]{Capacity: *capacity, Policy: pol})
		if err != nil {
			log.Fatalf("run %s: %v", name, err)
		}
		results[name] = res
		if hlog != nil {
			if err := hlog.Append(name, *capacity, len(refsList), res); err != nil {
				log.Fatalf("history: %v", err)
			}
		}
	}

	fmt.Printf("trace: %d references, %d-page cache\n\n", len(refsList), *capacity)
	if err := report.Table(os.Stdout, report.FromResults(results, *capacity, len(refsList))); err != nil {
		log.Fatalf("report: %v", err)
	}
}

// loadTrace resolves the reference trace from, in priority order, a trace
// file, the inline -pages flag, or a generated workload.
func loadTrace(file, inline string, n, keys int, zipfS, zipfV float64, seed int64) ([]string, error) {
	if file != "" {
		return trace.ReadFile(file)
	}
	if inline != "" {
		return trace.Parse(inline), nil
	}

	var ints []int
	if zipfS > 1 {
		ints = trace.Zipf(n, zipfS, zipfV, keys, seed)
	} else {
		ints = trace.Uniform(n, keys, seed)
	}
	out := make([]string, len(ints))
	for i, p := range ints {
		out[i] = strconv.Itoa(p)
	}
	return out, nil
}
