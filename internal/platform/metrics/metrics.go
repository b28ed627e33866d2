package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts HTTP traffic and paystub generation runs.
type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	totalDurationMs uint64
	runsOK          uint64
	runsFailed      uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordRun(ok bool) {
	if ok {
		atomic.AddUint64(&c.runsOK, 1)
		return
	}
	atomic.AddUint64(&c.runsFailed, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"clientErrorsTotal":    atomic.LoadUint64(&c.clientErrors),
		"serverErrorsTotal":    atomic.LoadUint64(&c.serverErrors),
		"avgDurationMs":        avg,
		"totalDurationMs":      totalMs,
		"paystubRunsSucceeded": atomic.LoadUint64(&c.runsOK),
		"paystubRunsFailed":    atomic.LoadUint64(&c.runsFailed),
	}
}
