// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about chart layout, rendering, event dispatch
// and pipeline execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the chart packages
// never import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetChartHooks(&myChartHooks{})
//	    observability.SetEventHooks(&myEventHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	cc := layout.Compute(cfg, table)
//	observability.Chart().OnLayoutComplete(len(table.Records), len(table.Attributes), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Chart Hooks
// =============================================================================

// ChartHooks receives events from a chart's draw cycle.
type ChartHooks interface {
	// OnLayoutComplete records a finished coordinate computation.
	OnLayoutComplete(records, attributes int, duration time.Duration)

	// OnRenderComplete records a rebuilt shape registry.
	OnRenderComplete(shapes int, duration time.Duration)
}

// =============================================================================
// Event Hooks
// =============================================================================

// EventHooks receives events from callback dispatch.
type EventHooks interface {
	// OnDispatch records a callback being scheduled under name.
	OnDispatch(name string)

	// OnCallbackPanic records a callback that panicked. The panic has
	// already been recovered.
	OnCallbackPanic(name string, recovered any)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the file-to-artifact pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, records int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopChartHooks is a no-op implementation of ChartHooks.
type NoopChartHooks struct{}

func (NoopChartHooks) OnLayoutComplete(int, int, time.Duration) {}
func (NoopChartHooks) OnRenderComplete(int, time.Duration)      {}

// NoopEventHooks is a no-op implementation of EventHooks.
type NoopEventHooks struct{}

func (NoopEventHooks) OnDispatch(string)           {}
func (NoopEventHooks) OnCallbackPanic(string, any) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	chartHooks    ChartHooks    = NoopChartHooks{}
	eventHooks    EventHooks    = NoopEventHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetChartHooks registers custom chart hooks.
// This should be called once at application startup before any chart is created.
func SetChartHooks(h ChartHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		chartHooks = h
	}
}

// SetEventHooks registers custom event hooks.
func SetEventHooks(h EventHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		eventHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Chart returns the registered chart hooks.
func Chart() ChartHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return chartHooks
}

// Events returns the registered event hooks.
func Events() EventHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return eventHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	chartHooks = NoopChartHooks{}
	eventHooks = NoopEventHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
