// Package raycast renders a grid world from a first-person camera: DDA wall
// casting, perspective floor and ceiling mapping, depth-tested billboard
// sprites and the shading model that ties them together.
//
// A frame is produced as data (draw commands, a background pixel buffer and
// a per-column depth buffer) so any backend can present it.
package raycast

import (
	"errors"
	"time"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/logger"

	"go.uber.org/zap"
)

// ErrIncompleteScene is returned when a scene lacks a grid, textures or camera.
var ErrIncompleteScene = errors.New("scene needs a grid, textures and a camera")

// ParallelFor runs fn for every index in [start, end), possibly concurrently,
// and returns when all calls are done.
type ParallelFor interface {
	ParallelFor(start, end int, fn func(int))
}

// Profiler times a named render phase.
type Profiler interface {
	ProfiledFunction(name string, fn func()) time.Duration
}

// Phase names reported to the Profiler.
const (
	PhaseRaycast = "raycast"
	PhaseFloor   = "floor"
	PhaseSprites = "sprite_render"
)

// Scene is everything a frame reads. The grid must not change during Render.
type Scene struct {
	Grid     TileLookup
	Textures TextureLookup
	Camera   *camera.Camera
	Sprites  []Sprite
	Floor    FloorCaster // nil draws flat colors
}

type FrameStats struct {
	Columns         int
	Escaped         int
	InvalidTextures int
	SpriteColumns   int
}

// Frame is the output of one Render call. Draw Background first, then Walls,
// then Sprites (already ordered far to near).
type Frame struct {
	Width      int
	Height     int
	Hits       []Ray
	Depth      DepthBuffer
	Walls      []DrawCommand
	Sprites    []DrawCommand
	Background *PixelBuffer
	Stats      FrameStats
}

type columnState uint8

const (
	columnEscaped columnState = iota
	columnWall
	columnInvalidTexture
)

// Pipeline renders frames, reusing its buffers between calls.
type Pipeline struct {
	cfg      *config.RenderConfig
	parallel ParallelFor
	profiler Profiler

	frame     *Frame
	wallSlots []DrawCommand
	states    []columnState
	projector SpriteProjector
}

type Option func(*Pipeline)

// WithParallel spreads the column and row loops over pf.
func WithParallel(pf ParallelFor) Option {
	return func(p *Pipeline) { p.parallel = pf }
}

// WithProfiler reports phase timings to prof.
func WithProfiler(prof Profiler) Option {
	return func(p *Pipeline) { p.profiler = prof }
}

// NewPipeline creates a pipeline reading cfg on every frame, so runtime
// toggles take effect on the next Render.
func NewPipeline(cfg *config.RenderConfig, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Config() *config.RenderConfig {
	return p.cfg
}

// Render produces a frame. The returned frame is owned by the pipeline and
// is valid until the next call.
func (p *Pipeline) Render(scene Scene) (*Frame, error) {
	if scene.Grid == nil || scene.Textures == nil || scene.Camera == nil {
		return nil, ErrIncompleteScene
	}
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	f := p.prepare()

	p.phase(PhaseRaycast, func() { p.castWalls(f, scene) })
	p.phase(PhaseFloor, func() { p.castFloor(f, scene) })
	p.phase(PhaseSprites, func() {
		f.Sprites = p.projector.Project(scene.Sprites, scene.Camera, p.cfg, f.Depth, f.Sprites[:0])
	})
	f.Stats.SpriteColumns = len(f.Sprites)

	if f.Stats.InvalidTextures > 0 {
		logger.Debug("columns skipped for invalid texture codes", zap.Int("columns", f.Stats.InvalidTextures))
	}
	return f, nil
}

func (p *Pipeline) prepare() *Frame {
	w, h := p.cfg.ScreenWidth, p.cfg.ScreenHeight
	f := p.frame
	if f == nil || f.Width != w || f.Height != h {
		f = &Frame{
			Width:      w,
			Height:     h,
			Hits:       make([]Ray, w),
			Depth:      NewDepthBuffer(w),
			Walls:      make([]DrawCommand, 0, w),
			Background: NewPixelBuffer(w, h),
		}
		p.frame = f
		p.wallSlots = make([]DrawCommand, w)
		p.states = make([]columnState, w)
	}
	f.Walls = f.Walls[:0]
	f.Stats = FrameStats{Columns: w}
	return f
}

func (p *Pipeline) castWalls(f *Frame, scene Scene) {
	cam := scene.Camera
	maxSteps := MaxSteps(scene.Grid)

	p.forEach(f.Width, func(x int) {
		ray := NewRay(x, f.Width, cam)
		err := ray.Cast(scene.Grid, maxSteps)
		f.Hits[x] = ray
		if err != nil {
			f.Depth[x] = positiveInf
			p.states[x] = columnEscaped
			return
		}
		f.Depth[x] = ray.PerpWallDist

		tex, err := scene.Textures.TextureFor(ray.Tile)
		if err != nil {
			p.states[x] = columnInvalidTexture
			return
		}
		p.wallSlots[x] = WallColumn(x, &ray, cam, tex, p.cfg)
		p.states[x] = columnWall
	})

	for x, st := range p.states {
		switch st {
		case columnWall:
			f.Walls = append(f.Walls, p.wallSlots[x])
		case columnEscaped:
			f.Stats.Escaped++
		case columnInvalidTexture:
			f.Stats.InvalidTextures++
		}
	}
}

func (p *Pipeline) castFloor(f *Frame, scene Scene) {
	caster := scene.Floor
	if caster == nil {
		caster = FlatFloor{}
	}
	view := NewFloorView(scene.Camera, p.cfg)
	p.forEach(f.Height, func(y int) {
		caster.CastRow(f.Background, y, view)
	})
}

func (p *Pipeline) forEach(n int, fn func(int)) {
	if p.parallel == nil {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	p.parallel.ParallelFor(0, n, fn)
}

func (p *Pipeline) phase(name string, fn func()) {
	if p.profiler == nil {
		fn()
		return
	}
	p.profiler.ProfiledFunction(name, fn)
}
