package observability

import (
	"strconv"
	"sync"
	"time"
)

// Gauge names exported by the ingestion subscriber.
const (
	GaugeIngestionLagSeconds = "ingestion_lag_seconds"
	GaugeSnapshotTickets     = "snapshot_tickets"
	GaugeBacklogTotal        = "backlog_total"
)

// Metrics provides basic in-memory counters and gauges.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	gauges       map[string]float64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		gauges:       make(map[string]float64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// SetGauge stores the latest value for a named gauge.
func (m *Metrics) SetGauge(name string, value float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordIngestionLag exports the ingestion lag gauge. Unlike the health
// report, the exported value is floored at zero so clock skew never
// produces a negative gauge.
func (m *Metrics) RecordIngestionLag(lagSeconds float64) {
	if lagSeconds < 0 {
		lagSeconds = 0
	}
	m.SetGauge(GaugeIngestionLagSeconds, lagSeconds)
}

// Snapshot returns copies of all counters and gauges for serving.
func (m *Metrics) Snapshot() (requests, errs map[string]int64, gauges map[string]float64) {
	if m == nil {
		return nil, nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	requests = make(map[string]int64, len(m.requestCount))
	for k, v := range m.requestCount {
		requests[k] = v
	}
	errs = make(map[string]int64, len(m.errorCount))
	for k, v := range m.errorCount {
		errs[k] = v
	}
	gauges = make(map[string]float64, len(m.gauges))
	for k, v := range m.gauges {
		gauges[k] = v
	}
	return requests, errs, gauges
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
