// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline operations, cache lookups and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so library packages
// stay free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnOperationStart(ctx, "stack")
//	// ... compose documents ...
//	observability.Pipeline().OnOperationComplete(ctx, "stack", len(out), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Operation names reported to hooks.
const (
	OpStack   = "stack"
	OpRescale = "rescale"
	OpPNG     = "png"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from pipeline operations.
type PipelineHooks interface {
	// OnOperationStart records the start of a stack, rescale or png operation.
	OnOperationStart(ctx context.Context, op string)

	// OnOperationComplete records the outcome; size is the artifact size in bytes.
	OnOperationComplete(ctx context.Context, op string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, op string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, op string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, op string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response status and latency.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnOperationStart(context.Context, string) {}

func (NoopPipelineHooks) OnOperationComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// hookSet is the registered hooks; it is replaced, never mutated.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	registryMu sync.RWMutex
	registry   = defaults()
)

func defaults() hookSet {
	return hookSet{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}
}

func current() hookSet {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry
}

func update(fn func(*hookSet)) {
	registryMu.Lock()
	defer registryMu.Unlock()
	next := registry
	fn(&next)
	registry = next
}

// SetPipelineHooks registers pipeline hooks. Call it at startup; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. Call it at startup; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Call it before serving; nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current().http }

// Reset restores the no-op hooks.
func Reset() {
	update(func(s *hookSet) { *s = defaults() })
}
