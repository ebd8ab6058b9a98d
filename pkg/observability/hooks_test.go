package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopChartHooks{}
	c.OnLayoutComplete(3, 2, time.Millisecond)
	c.OnRenderComplete(42, time.Millisecond)

	e := NoopEventHooks{}
	e.OnDispatch("onRibbonClick")
	e.OnCallbackPanic("onRibbonClick", "boom")

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "data.json")
	p.OnLoadComplete(ctx, "data.json", 10, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Chart().(NoopChartHooks); !ok {
		t.Error("Chart() should return NoopChartHooks by default")
	}
	if _, ok := Events().(NoopEventHooks); !ok {
		t.Error("Events() should return NoopEventHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	customChart := &testChartHooks{}
	SetChartHooks(customChart)
	if Chart() != customChart {
		t.Error("SetChartHooks should set custom hooks")
	}

	customEvents := &testEventHooks{}
	SetEventHooks(customEvents)
	if Events() != customEvents {
		t.Error("SetEventHooks should set custom hooks")
	}

	// nil must not replace the registered hooks
	SetEventHooks(nil)
	if Events() != customEvents {
		t.Error("SetEventHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Chart().(NoopChartHooks); !ok {
		t.Error("Reset() should restore NoopChartHooks")
	}
}

type testChartHooks struct {
	NoopChartHooks
}

type testEventHooks struct {
	NoopEventHooks
	panics int
}

func (h *testEventHooks) OnCallbackPanic(string, any) { h.panics++ }
