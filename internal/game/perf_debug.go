package game

import (
	"strings"
	"time"

	"gridcaster/internal/logger"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const (
	perfLowFpsThreshold = 50.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

func (g *Game) maybeLogPerfDrop() {
	if !g.perfDebugEnabled {
		return
	}

	fps := ebiten.ActualFPS()
	if fps >= perfLowFpsThreshold {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return
	}

	now := time.Now()
	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return
	}

	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return
	}

	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return
	}

	g.perfLastPerfLog = now
	g.logPerfSnapshot(fps)
}

func (g *Game) logPerfSnapshot(fps float64) {
	stats := g.threading.GetDetailedPerformanceStats()
	logger.Warn("low frame rate",
		zap.Float64("fps", fps),
		zap.Float64("tps", ebiten.ActualTPS()),
		zap.String("causes", perfCauses(stats, g.config.Render.FastFloors)),
		zap.Float64("update_ms", durationMs(g.lastUpdateDuration)),
		zap.Float64("draw_ms", durationMs(g.lastDrawDuration)),
		zap.Float64("budget_ms", frameBudgetMs(fps)),
		zap.Float64("idle_ms", idleBudgetMs(fps, g.lastUpdateDuration, g.lastDrawDuration)),
		zap.Float64("frame_ms", getPerfFloat(stats, "last_frame_time_ms")),
		zap.Float64("raycast_ms", getPerfFloat(stats, "last_raycast_time_ms")),
		zap.Float64("floor_ms", getPerfFloat(stats, "last_floor_time_ms")),
		zap.Float64("sprites_ms", getPerfFloat(stats, "last_sprite_render_time_ms")),
		zap.Int("goroutines", getPerfInt(stats, "goroutines")),
		zap.Uint64("mem_alloc_mb", getPerfUint(stats, "memory_alloc_mb")),
		zap.Uint64("mem_sys_mb", getPerfUint(stats, "memory_sys_mb")),
		zap.Uint64("gc_cycles", getPerfUint(stats, "gc_cycles")),
	)

	if g.renderer != nil {
		hits, misses := g.renderer.cache.Stats()
		logger.Debug("slice cache",
			zap.Int("entries", g.renderer.cache.Len()),
			zap.Uint64("hits", hits),
			zap.Uint64("misses", misses))
	}
}

// perfCauses names the likely culprits from a stats snapshot.
func perfCauses(stats map[string]interface{}, fastFloors bool) string {
	causes := make([]string, 0, 4)
	frame := getPerfFloat(stats, "last_frame_time_ms")
	if floor := getPerfFloat(stats, "last_floor_time_ms"); frame > 0 && floor > frame/2 {
		if fastFloors {
			causes = append(causes, "floor pass")
		} else {
			causes = append(causes, "textured floors (try F4)")
		}
	}
	if sprites := getPerfFloat(stats, "last_sprite_render_time_ms"); frame > 0 && sprites > frame/2 {
		causes = append(causes, "sprites")
	}
	if getPerfInt(stats, "invalid_textures") > 0 {
		causes = append(causes, "invalid textures")
	}
	if getPerfUint(stats, "memory_alloc_mb") > 500 {
		causes = append(causes, "memory")
	}
	if len(causes) == 0 {
		return "none obvious"
	}
	return strings.Join(causes, ", ")
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case uint64:
			return v
		case uint32:
			return uint64(v)
		case int64:
			return uint64(v)
		case int:
			return uint64(v)
		case float64:
			return uint64(v)
		}
	}
	return 0
}
