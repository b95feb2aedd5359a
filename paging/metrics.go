package paging

import (
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// LatencyWindow keeps the most recent run latencies (microseconds) in a ring
type LatencyWindow struct {
	mu    sync.Mutex
	ring  []float64
	next  int // Slot the next sample overwrites once the ring is full
	total float64
}

// NewLatencyWindow creates a window holding up to size samples
func NewLatencyWindow(size int) *LatencyWindow {
	if size <= 0 {
		size = 10000
	}
	return &LatencyWindow{ring: make([]float64, 0, size)}
}

// Observe adds a sample, replacing the oldest one when the window is full
func (w *LatencyWindow) Observe(us float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.ring) < cap(w.ring) {
		w.ring = append(w.ring, us)
	} else {
		w.total -= w.ring[w.next]
		w.ring[w.next] = us
		w.next = (w.next + 1) % len(w.ring)
	}
	w.total += us
}

// Len returns the number of samples in the window
func (w *LatencyWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ring)
}

// Clear drops every sample
func (w *LatencyWindow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ring = w.ring[:0]
	w.next = 0
	w.total = 0
}

// LatencySummary is what LogMetrics reports about the window
type LatencySummary struct {
	Count int
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
}

// Summary computes nearest-rank percentiles over a sorted copy of the window
func (w *LatencyWindow) Summary() LatencySummary {
	w.mu.Lock()
	sorted := slices.Clone(w.ring)
	total := w.total
	w.mu.Unlock()

	if len(sorted) == 0 {
		return LatencySummary{}
	}
	slices.Sort(sorted)

	rank := func(p float64) float64 {
		i := int(math.Ceil(p/100*float64(len(sorted)))) - 1
		return sorted[max(i, 0)]
	}

	return LatencySummary{
		Count: len(sorted),
		Mean:  total / float64(len(sorted)),
		P50:   rank(50),
		P95:   rank(95),
		P99:   rank(99),
	}
}

// Metrics tracks simulation counters across runs.
// A single Metrics may be shared by concurrent runs.
type Metrics struct {
	runs           atomic.Uint64
	hits           atomic.Uint64
	faults         atomic.Uint64
	evictions      atomic.Uint64
	rejectedConfig atomic.Uint64

	runLatency *LatencyWindow

	startTime time.Time
	mu        sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		startTime:  time.Now(),
		runLatency: NewLatencyWindow(10000),
	}
}

// RecordRun folds a finished simulation into the counters
func (m *Metrics) RecordRun(result *SimulationResult, duration time.Duration) {
	m.runs.Add(1)
	m.faults.Add(uint64(result.Faults))
	m.hits.Add(uint64(result.Hits()))
	m.evictions.Add(uint64(result.Evictions()))
	m.runLatency.Observe(float64(duration.Microseconds()))
}

func (m *Metrics) RecordRejected() {
	m.rejectedConfig.Add(1)
}

func (m *Metrics) GetRuns() uint64 {
	return m.runs.Load()
}

func (m *Metrics) GetHits() uint64 {
	return m.hits.Load()
}

func (m *Metrics) GetFaults() uint64 {
	return m.faults.Load()
}

func (m *Metrics) GetEvictions() uint64 {
	return m.evictions.Load()
}

func (m *Metrics) GetRejected() uint64 {
	return m.rejectedConfig.Load()
}

// GetHitRate returns hits / (hits + faults) over all recorded runs
func (m *Metrics) GetHitRate() float64 {
	hits := m.hits.Load()
	total := hits + m.faults.Load()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

func (m *Metrics) GetUptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// GetRunLatency summarizes the recent run latencies
func (m *Metrics) GetRunLatency() LatencySummary {
	return m.runLatency.Summary()
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	latency := m.GetRunLatency()

	logger.Info("Simulator Metrics",
		slog.Group("references",
			slog.Uint64("hits", m.GetHits()),
			slog.Uint64("faults", m.GetFaults()),
			slog.Float64("hit_rate", m.GetHitRate()),
			slog.Uint64("evictions", m.GetEvictions()),
		),
		slog.Group("runs",
			slog.Uint64("completed", m.GetRuns()),
			slog.Uint64("rejected", m.GetRejected()),
		),
		slog.Group("latency_us",
			slog.Int("count", latency.Count),
			slog.Float64("mean", latency.Mean),
			slog.Float64("p50", latency.P50),
			slog.Float64("p95", latency.P95),
			slog.Float64("p99", latency.P99),
		),
		slog.Duration("uptime", m.GetUptime()),
	)
}

// Reset resets all metrics (useful for testing)
func (m *Metrics) Reset() {
	m.runs.Store(0)
	m.hits.Store(0)
	m.faults.Store(0)
	m.evictions.Store(0)
	m.rejectedConfig.Store(0)
	m.runLatency.Clear()

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}
