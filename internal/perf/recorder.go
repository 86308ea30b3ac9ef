// Package perf records fetch latencies for the bench command using an
// HDR histogram, so percentiles stay accurate without keeping every
// sample.
package perf

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder accumulates request latencies and failures.
//
// Histogram range: 1 microsecond to 1 minute, 3 significant figures.
// Recorder is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	hist     *hdrhistogram.Histogram
	failures int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, time.Minute.Microseconds(), 3),
	}
}

// Record adds one successful request's latency.
func (r *Recorder) Record(latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// RecordValue only fails outside the histogram range; clamp instead
	// of losing the sample.
	us := latency.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > time.Minute.Microseconds() {
		us = time.Minute.Microseconds()
	}
	r.hist.RecordValue(us)
}

// RecordFailure counts a request that produced no latency sample.
func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

// Summary holds the aggregate view of a bench run.
type Summary struct {
	Requests int
	Failures int
	Min      time.Duration
	Median   time.Duration
	P90      time.Duration
	P99      time.Duration
	Max      time.Duration
}

// Summarize computes the percentile summary of everything recorded.
func (r *Recorder) Summarize() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		Requests: int(r.hist.TotalCount()) + r.failures,
		Failures: r.failures,
		Min:      time.Duration(r.hist.Min()) * time.Microsecond,
		Median:   time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:      time.Duration(r.hist.ValueAtQuantile(90)) * time.Microsecond,
		P99:      time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond,
		Max:      time.Duration(r.hist.Max()) * time.Microsecond,
	}
}

// String renders the summary as the bench command prints it.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "requests: %d (%d failed)\n", s.Requests, s.Failures)
	fmt.Fprintf(&sb, "latency min/p50/p90/p99/max: %s / %s / %s / %s / %s\n",
		s.Min, s.Median, s.P90, s.P99, s.Max)
	return sb.String()
}
