package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Counters is an in-memory implementation of every hook interface. svgstack
// serve registers one and reports it on /v1/stats and at shutdown.
type Counters struct {
	started  time.Time
	mu       sync.Mutex
	ops      map[string]*OpStats
	requests atomic.Int64
	failures atomic.Int64 // responses with status >= 500
}

// OpStats holds the counts for one pipeline operation.
type OpStats struct {
	Runs   int64         `json:"runs"`
	Errors int64         `json:"errors"`
	Bytes  int64         `json:"bytes"`
	Time   time.Duration `json:"time_ns"`
	Hits   int64         `json:"cache_hits"`
	Misses int64         `json:"cache_misses"`
}

// Stats is a point-in-time copy of a [Counters].
type Stats struct {
	Uptime     time.Duration      `json:"uptime_ns"`
	Requests   int64              `json:"requests"`
	Failures   int64              `json:"server_errors"`
	Operations map[string]OpStats `json:"operations"`
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{started: time.Now(), ops: make(map[string]*OpStats)}
}

// Install registers c for pipeline, cache and HTTP events.
func (c *Counters) Install() {
	SetPipelineHooks(c)
	SetCacheHooks(c)
	SetHTTPHooks(c)
}

func (c *Counters) update(op string, fn func(*OpStats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.ops[op]
	if !ok {
		s = &OpStats{}
		c.ops[op] = s
	}
	fn(s)
}

func (c *Counters) OnOperationStart(context.Context, string) {}

func (c *Counters) OnOperationComplete(_ context.Context, op string, size int, d time.Duration, err error) {
	c.update(op, func(s *OpStats) {
		s.Runs++
		s.Time += d
		if err != nil {
			s.Errors++
			return
		}
		s.Bytes += int64(size)
	})
}

func (c *Counters) OnCacheHit(_ context.Context, op string) {
	c.update(op, func(s *OpStats) { s.Hits++ })
}

func (c *Counters) OnCacheMiss(_ context.Context, op string) {
	c.update(op, func(s *OpStats) { s.Misses++ })
}

func (c *Counters) OnCacheSet(context.Context, string, int) {}

func (c *Counters) OnRequest(context.Context, string, string) {
	c.requests.Add(1)
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		c.failures.Add(1)
	}
}

// Snapshot copies the current counts.
func (c *Counters) Snapshot() Stats {
	c.mu.Lock()
	ops := make(map[string]OpStats, len(c.ops))
	for op, s := range c.ops {
		ops[op] = *s
	}
	c.mu.Unlock()

	return Stats{
		Uptime:     time.Since(c.started),
		Requests:   c.requests.Load(),
		Failures:   c.failures.Load(),
		Operations: ops,
	}
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
