package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testPipelineHooks struct{ NoopPipelineHooks }

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want no-op default", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want no-op default", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want no-op default", HTTP())
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should keep the registered hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore the no-op hooks")
	}
}

func TestCounters(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	c := NewCounters()
	c.Install()
	if Pipeline() != PipelineHooks(c) || Cache() != CacheHooks(c) || HTTP() != HTTPHooks(c) {
		t.Fatal("Install() should register the counters for every hook")
	}

	Pipeline().OnOperationStart(ctx, OpStack)
	Pipeline().OnOperationComplete(ctx, OpStack, 100, time.Millisecond, nil)
	Pipeline().OnOperationComplete(ctx, OpStack, 0, time.Millisecond, errors.New("boom"))
	Cache().OnCacheMiss(ctx, OpStack)
	Cache().OnCacheHit(ctx, OpStack)
	Cache().OnCacheHit(ctx, OpPNG)
	HTTP().OnRequest(ctx, "POST", "/v1/stack")
	HTTP().OnResponse(ctx, "POST", "/v1/stack", 200, time.Millisecond)
	HTTP().OnRequest(ctx, "POST", "/v1/png")
	HTTP().OnResponse(ctx, "POST", "/v1/png", 500, time.Millisecond)

	got := c.Snapshot()
	want := OpStats{Runs: 2, Errors: 1, Bytes: 100, Time: 2 * time.Millisecond, Hits: 1, Misses: 1}
	if got.Operations[OpStack] != want {
		t.Errorf("stack stats = %+v, want %+v", got.Operations[OpStack], want)
	}
	if got.Operations[OpPNG].Hits != 1 {
		t.Errorf("png hits = %d, want 1", got.Operations[OpPNG].Hits)
	}
	if got.Requests != 2 || got.Failures != 1 {
		t.Errorf("requests, failures = %d, %d; want 2, 1", got.Requests, got.Failures)
	}

	// Snapshots are copies.
	Pipeline().OnOperationComplete(ctx, OpStack, 1, 0, nil)
	if got.Operations[OpStack].Runs != 2 {
		t.Error("Snapshot() should not change after later events")
	}
}
