package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"gridcaster/internal/raycast"
)

// The pipeline reports its phases to the monitor.
var _ raycast.Profiler = (*PerformanceMonitor)(nil)

// PerformanceMonitor tracks frame timing, per-phase render timing and the
// counters a rendered frame reports.
type PerformanceMonitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	raycastTime      atomic.Uint64
	floorTime        atomic.Uint64
	spriteRenderTime atomic.Uint64

	columns         atomic.Int64
	escapedColumns  atomic.Int64
	invalidTextures atomic.Uint64 // summed over all frames
	spriteColumns   atomic.Int64

	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time

	enableDetailed bool
}

// Smoothing factor for the running averages.
const avgWeight = 0.1

func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	d := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(d)
	ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	if ft.monitor.enableDetailed {
		ft.monitor.avgFrameTime = runningAverage(ft.monitor.avgFrameTime, float64(d))
	}
	ft.monitor.mutex.Unlock()
}

func runningAverage(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + avgWeight*(sample-avg)
}

// RecordFrameStats stores the counters of the last rendered frame.
func (pm *PerformanceMonitor) RecordFrameStats(columns, escaped, invalidTextures, spriteColumns int) {
	pm.columns.Store(int64(columns))
	pm.escapedColumns.Store(int64(escaped))
	pm.invalidTextures.Add(uint64(invalidTextures))
	pm.spriteColumns.Store(int64(spriteColumns))
}

// RenderMetrics is a snapshot for the HUD.
type RenderMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	FloorTime       time.Duration
	SpriteTime      time.Duration
	EscapedColumns  int64
	SpriteColumns   int64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() RenderMetrics {
	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = 1e9 / float64(frameTime)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RenderMetrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		FloorTime:       time.Duration(pm.floorTime.Load()),
		SpriteTime:      time.Duration(pm.spriteRenderTime.Load()),
		EscapedColumns:  pm.escapedColumns.Load(),
		SpriteColumns:   pm.spriteColumns.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	avgFrame, avgRaycast := pm.avgFrameTime, pm.avgRaycastTime
	start := pm.startTime
	pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	fps := 0.0
	if ft := pm.frameTime.Load(); ft > 0 {
		fps = 1e9 / float64(ft)
	}

	return map[string]interface{}{
		"uptime_seconds":             time.Since(start).Seconds(),
		"frame_count":                pm.frameCount.Load(),
		"avg_frame_time_ms":          avgFrame / 1e6,
		"avg_raycast_time_ms":        avgRaycast / 1e6,
		"last_frame_time_ms":         float64(pm.frameTime.Load()) / 1e6,
		"last_raycast_time_ms":       float64(pm.raycastTime.Load()) / 1e6,
		"last_floor_time_ms":         float64(pm.floorTime.Load()) / 1e6,
		"last_sprite_render_time_ms": float64(pm.spriteRenderTime.Load()) / 1e6,
		"current_fps":                fps,
		"columns":                    pm.columns.Load(),
		"escaped_columns":            pm.escapedColumns.Load(),
		"invalid_textures":           pm.invalidTextures.Load(),
		"sprite_columns":             pm.spriteColumns.Load(),
		"memory_alloc_mb":            memStats.Alloc / 1024 / 1024,
		"memory_sys_mb":              memStats.Sys / 1024 / 1024,
		"gc_cycles":                  memStats.NumGC,
		"cpu_cores":                  runtime.NumCPU(),
		"goroutines":                 runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// Alert thresholds.
const (
	lowFPSThreshold       = 30
	highMemoryMBThreshold = 500
)

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := 1e9 / float64(frameTime)
		if fps < lowFPSThreshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: lowFPSThreshold,
				Timestamp: now,
			})
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	if memoryMB := float64(memStats.Alloc) / 1024 / 1024; memoryMB > highMemoryMBThreshold {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: highMemoryMBThreshold,
			Timestamp: now,
		})
	}

	if invalid := pm.invalidTextures.Load(); invalid > 0 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "invalid_textures",
			Message:   "Wall columns were skipped for tile codes without a texture",
			Value:     float64(invalid),
			Threshold: 0,
			Timestamp: now,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables detailed performance logging
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.floorTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.columns.Store(0)
	pm.escapedColumns.Store(0)
	pm.invalidTextures.Store(0)
	pm.spriteColumns.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction runs fn and stores its duration under the named phase.
// Unknown names are timed but not stored.
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)
	ns := uint64(duration.Nanoseconds())

	switch name {
	case raycast.PhaseRaycast:
		pm.raycastTime.Store(ns)
		pm.mutex.Lock()
		if pm.enableDetailed {
			pm.avgRaycastTime = runningAverage(pm.avgRaycastTime, float64(ns))
		}
		pm.mutex.Unlock()
	case raycast.PhaseFloor:
		pm.floorTime.Store(ns)
	case raycast.PhaseSprites:
		pm.spriteRenderTime.Store(ns)
	}

	return duration
}
