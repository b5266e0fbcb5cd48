package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, "house-01")
	p.OnBuildComplete(ctx, "house-01", 2, time.Second, nil)
	p.OnRenderStart(ctx, "house-01", []string{"svg"})
	p.OnRenderComplete(ctx, "house-01", 10, time.Second, nil)

	s := NoopSynthesisHooks{}
	s.OnStrategyFallback(0, "zone", "whole-floor")
	s.OnRoomDropped(1, "Study")
	s.OnRepair(0, "Kitchen", "Dining", true)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "model")
	c.OnCacheMiss(ctx, "drawings")
	c.OnCacheSet(ctx, "drawings", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Synthesis().(NoopSynthesisHooks); !ok {
		t.Error("Synthesis() should return NoopSynthesisHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customSynthesis := &testSynthesisHooks{}
	SetSynthesisHooks(customSynthesis)
	if Synthesis() != customSynthesis {
		t.Error("SetSynthesisHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Synthesis().(NoopSynthesisHooks); !ok {
		t.Error("Reset() should restore NoopSynthesisHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSynthesisHooks{}
	SetSynthesisHooks(custom)
	SetSynthesisHooks(nil)

	if Synthesis() != custom {
		t.Error("SetSynthesisHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testSynthesisHooks struct{ NoopSynthesisHooks }
type testCacheHooks struct{ NoopCacheHooks }
