// Command benchguard compares two `go test -bench` outputs and fails when
// the corpus or provider benchmarks regress past a configurable ratio.
//
// Usage:
//
//	go test -bench . -benchmem ./internal/... > base.txt   # on main
//	go test -bench . -benchmem ./internal/... > head.txt   # on the branch
//	go run ./scripts/benchguard --base base.txt --head head.txt
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Canonical metric names. Time values are normalized to ns/op.
const (
	metricTime   = "time/op"
	metricBytes  = "B/op"
	metricAllocs = "allocs/op"
)

var nsPerUnit = map[string]float64{
	"ns/op": 1,
	"us/op": 1e3,
	"µs/op": 1e3,
	"ms/op": 1e6,
	"s/op":  1e9,
}

// benchResult holds the measured metrics of one benchmark, keyed by
// canonical metric name. Absent metrics (no -benchmem) have no key.
type benchResult map[string]float64

func parseBenchFile(path string) (map[string]benchResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	results := make(map[string]benchResult)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "Benchmark") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		// Fields after the name and iteration count come in value/unit
		// pairs; unknown units are skipped.
		result := benchResult{}
		for i := 2; i+1 < len(fields); i += 2 {
			value, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				continue
			}
			unit := fields[i+1]
			switch {
			case nsPerUnit[unit] != 0:
				result[metricTime] = value * nsPerUnit[unit]
			case unit == metricBytes:
				result[metricBytes] = value
			case unit == metricAllocs:
				result[metricAllocs] = value
			}
		}
		if len(result) == 0 {
			continue
		}
		results[fields[0]] = result
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

type regression struct {
	Benchmark string  `json:"benchmark"`
	Metric    string  `json:"metric"`
	Base      float64 `json:"base"`
	Head      float64 `json:"head"`
	Ratio     float64 `json:"ratio"`
}

func compare(base, head map[string]benchResult, limits map[string]float64) (regressions []regression, compared int) {
	for name, b := range base {
		h, ok := head[name]
		if !ok {
			continue
		}
		compared++

		for metric, limit := range limits {
			bv, bok := b[metric]
			hv, hok := h[metric]
			if !bok || !hok {
				continue
			}
			r := ratioOf(bv, hv)
			if r > limit {
				regressions = append(regressions, regression{
					Benchmark: name,
					Metric:    metric,
					Base:      bv,
					Head:      hv,
					Ratio:     r,
				})
			}
		}
	}
	return regressions, compared
}

func ratioOf(base, head float64) float64 {
	if base == 0 {
		if head == 0 {
			return 1
		}
		return head // any growth from zero counts as the ratio itself
	}
	return head / base
}

func main() {
	var basePath string
	var headPath string
	var format string
	var maxTimeRatio float64
	var maxBytesRatio float64
	var maxAllocsRatio float64

	flag.StringVar(&basePath, "base", "", "Path to base benchmark output")
	flag.StringVar(&headPath, "head", "", "Path to head benchmark output")
	flag.StringVar(&format, "format", "text", "Report format: text or ndjson")
	flag.Float64Var(&maxTimeRatio, "max-time-ratio", 2.0, "Fail if time/op regresses by more than this ratio")
	flag.Float64Var(&maxBytesRatio, "max-bytes-ratio", 1.5, "Fail if B/op regresses by more than this ratio")
	flag.Float64Var(&maxAllocsRatio, "max-allocs-ratio", 1.5, "Fail if allocs/op regresses by more than this ratio")
	flag.Parse()

	if basePath == "" || headPath == "" {
		_, _ = fmt.Fprintln(os.Stderr, "usage: benchguard --base <file> --head <file>")
		os.Exit(2)
	}

	base, err := parseBenchFile(basePath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to parse base: %v\n", err)
		os.Exit(2)
	}
	head, err := parseBenchFile(headPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to parse head: %v\n", err)
		os.Exit(2)
	}

	limits := map[string]float64{
		metricTime:   maxTimeRatio,
		metricBytes:  maxBytesRatio,
		metricAllocs: maxAllocsRatio,
	}
	regressions, compared := compare(base, head, limits)

	if compared == 0 {
		_, _ = fmt.Fprintln(os.Stderr, "no overlapping benchmarks found between base and head outputs")
		os.Exit(2)
	}

	sort.Slice(regressions, func(i, j int) bool {
		if regressions[i].Ratio == regressions[j].Ratio {
			if regressions[i].Benchmark == regressions[j].Benchmark {
				return regressions[i].Metric < regressions[j].Metric
			}
			return regressions[i].Benchmark < regressions[j].Benchmark
		}
		return regressions[i].Ratio > regressions[j].Ratio
	})

	if format == "ndjson" {
		enc := json.NewEncoder(os.Stdout)
		for _, r := range regressions {
			_ = enc.Encode(struct {
				Type string `json:"type"`
				regression
			}{Type: "bench_regression", regression: r})
		}
		_ = enc.Encode(struct {
			Type        string `json:"type"`
			Compared    int    `json:"compared"`
			Regressions int    `json:"regressions"`
			OK          bool   `json:"ok"`
		}{Type: "bench_summary", Compared: compared, Regressions: len(regressions), OK: len(regressions) == 0})
	} else {
		if len(regressions) == 0 {
			fmt.Printf("benchguard: ok (%d benchmarks compared)\n", compared)
		} else {
			fmt.Printf("benchguard: found %d regressions (%d benchmarks compared)\n", len(regressions), compared)
			for _, r := range regressions {
				if r.Metric == metricTime {
					fmt.Printf("- %s %s: %.0fns -> %.0fns (x%.2f)\n", r.Benchmark, r.Metric, r.Base, r.Head, r.Ratio)
					continue
				}
				fmt.Printf("- %s %s: %.0f -> %.0f (x%.2f)\n", r.Benchmark, r.Metric, r.Base, r.Head, r.Ratio)
			}
		}
	}

	if len(regressions) > 0 {
		os.Exit(1)
	}
}
