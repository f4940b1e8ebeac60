package threading

import (
	"gridcaster/internal/config"
	"gridcaster/internal/threading/monitoring"
	"gridcaster/internal/threading/rendering"
)

// ThreadingComponents holds all threading-related components
type ThreadingComponents struct {
	ParallelRenderer   *rendering.ParallelRenderer // nil when parallel rendering is off
	SliceCache         *rendering.SliceCache
	CommandBatch       *rendering.CommandBatch
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates and initializes all threading components
func NewThreadingComponents(cfg config.ThreadingConfig) *ThreadingComponents {
	tc := &ThreadingComponents{
		SliceCache:         rendering.NewSliceCache(),
		CommandBatch:       rendering.NewCommandBatch(),
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
	if cfg.Parallel {
		tc.ParallelRenderer = rendering.NewParallelRenderer(cfg.Workers)
	}
	return tc
}

// Parallel returns the renderer as a loop spreader, or nil when parallel
// rendering is off. The untyped nil matters to callers that test for it.
func (tc *ThreadingComponents) Parallel() interface {
	ParallelFor(start, end int, fn func(int))
} {
	if tc.ParallelRenderer == nil {
		return nil
	}
	return tc.ParallelRenderer
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.ParallelRenderer != nil {
		tc.ParallelRenderer.Stop()
	}
	if tc.CommandBatch != nil {
		tc.CommandBatch.Clear()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *ThreadingComponents) GetDetailedPerformanceStats() map[string]interface{} {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.GetDetailedStats()
	}
	return nil
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.CheckPerformanceAlerts()
	}
	return nil
}
