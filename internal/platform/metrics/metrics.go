package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime counters for the API. It is safe for
// concurrent use.
type Collector struct {
	totalRequests   atomic.Uint64
	errorRequests   atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64
	computations    atomic.Uint64
	comprehensive   atomic.Uint64
	payslips        atomic.Uint64
	invalidInputs   atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	if status >= 500 {
		c.errorRequests.Add(1)
	}
	if status == 429 {
		c.rateLimited.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) RecordComputation(comprehensive bool) {
	c.computations.Add(1)
	if comprehensive {
		c.comprehensive.Add(1)
	}
}

func (c *Collector) RecordPayslip() {
	c.payslips.Add(1)
}

func (c *Collector) RecordInvalidInput() {
	c.invalidInputs.Add(1)
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":            total,
		"errorsTotal":              c.errorRequests.Load(),
		"rateLimitedTotal":         c.rateLimited.Load(),
		"avgDurationMs":            avg,
		"totalDurationMs":          totalMs,
		"computationsTotal":        c.computations.Load(),
		"comprehensiveSalaryTotal": c.comprehensive.Load(),
		"payslipsTotal":            c.payslips.Load(),
		"invalidInputsTotal":       c.invalidInputs.Load(),
	}
}
