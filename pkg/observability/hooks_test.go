package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnGenerateStart(ctx, 42, 3)
	p.OnLayerGenerated(ctx, "grid", time.Millisecond)
	p.OnGenerateComplete(ctx, 42, 7, time.Second, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", 1024, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "composition")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	// Server hooks
	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/render")
	s.OnResponse(ctx, "GET", "/render", 200, time.Second)
}

type countingPipelineHooks struct {
	NoopPipelineHooks
	layers int
}

func (h *countingPipelineHooks) OnLayerGenerated(context.Context, string, time.Duration) {
	h.layers++
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Fatal("expected noop pipeline hooks after reset")
	}

	custom := &countingPipelineHooks{}
	SetPipelineHooks(custom)
	Pipeline().OnLayerGenerated(context.Background(), "grid", time.Millisecond)
	if custom.layers != 1 {
		t.Fatalf("expected 1 layer event, got %d", custom.layers)
	}

	// nil registration is ignored
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(custom) {
		t.Fatal("nil registration should not replace hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Fatal("expected noop cache hooks after reset")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Fatal("expected noop server hooks after reset")
	}
}
