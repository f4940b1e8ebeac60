package raycast

import (
	"math"
	"sort"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
)

// singularDet is the smallest camera determinant the inverse transform accepts.
const singularDet = 1e-12

// Sprite is a camera-facing billboard at a world position.
type Sprite struct {
	Name    string
	Pos     mathutil.Vec2
	Texture *graphics.Texture
}

// SpriteProjector holds per-frame scratch for ordering and projecting sprites.
// The sprite slice itself is never reordered.
type SpriteProjector struct {
	order []int
	dist  []float64
}

// Order returns sprite indices sorted far to near by squared distance from
// pos. Equal distances keep their slice order. The returned slice is reused
// by the next call.
func (sp *SpriteProjector) Order(sprites []Sprite, pos mathutil.Vec2) []int {
	sp.order = sp.order[:0]
	sp.dist = sp.dist[:0]
	for i, s := range sprites {
		sp.order = append(sp.order, i)
		sp.dist = append(sp.dist, s.Pos.Sub(pos).LenSq())
	}
	sort.SliceStable(sp.order, func(a, b int) bool {
		return sp.dist[sp.order[a]] > sp.dist[sp.order[b]]
	})
	return sp.order
}

// Projection is a sprite transformed into camera space and onto the screen.
type Projection struct {
	TransformX float64
	TransformY float64 // depth along the view direction
	ScreenX    float64
	Size       float64
	Top        float64
}

// Project transforms a world point into camera space using the inverse of
// the [plane dir] matrix. ok is false for a singular camera basis or a
// point at or behind the camera plane.
func Project(pos mathutil.Vec2, cam *camera.Camera, width, height int) (Projection, bool) {
	det := cam.Plane.X*cam.Dir.Y - cam.Dir.X*cam.Plane.Y
	if math.Abs(det) < singularDet {
		return Projection{}, false
	}
	invDet := 1 / det

	d := pos.Sub(cam.Pos)
	tx := invDet * (cam.Dir.Y*d.X - cam.Dir.X*d.Y)
	ty := invDet * (-cam.Plane.Y*d.X + cam.Plane.X*d.Y)
	if ty <= 0 {
		return Projection{}, false
	}

	w, h := float64(width), float64(height)
	size := math.Abs(h / ty)
	return Projection{
		TransformX: tx,
		TransformY: ty,
		ScreenX:    w / 2 * (1 + tx/ty),
		Size:       size,
		Top:        h/2 - size/2 + cam.Pitch + cam.Z/ty,
	}, true
}

// Project appends one column command per visible sprite stripe to out,
// farthest sprite first. A stripe is visible when the sprite is closer than
// the wall recorded in depth for that column.
func (sp *SpriteProjector) Project(sprites []Sprite, cam *camera.Camera, cfg *config.RenderConfig, depth DepthBuffer, out []DrawCommand) []DrawCommand {
	width, height := cfg.ScreenWidth, cfg.ScreenHeight

	for _, idx := range sp.Order(sprites, cam.Pos) {
		s := &sprites[idx]
		if s.Texture == nil {
			continue
		}
		p, ok := Project(s.Pos, cam, width, height)
		if !ok {
			continue
		}

		left := p.ScreenX - p.Size/2
		// Clamp in float space; the box can be huge for sprites at the eye.
		startF := math.Max(math.Floor(left), 0)
		endF := math.Min(math.Ceil(left+p.Size), float64(width))
		if !(startF < endF) {
			continue
		}
		start, end := int(startF), int(endF)
		if start >= end {
			continue
		}

		size := s.Texture.Size
		tint := Tint(cfg, SurfaceSprite, p.TransformY, SideX)
		for col := start; col < end; col++ {
			if !depth.Visible(col, p.TransformY) {
				continue
			}
			texX := mathutil.IntClamp(int((float64(col)-left)*float64(size)/p.Size), 0, size-1)
			out = append(out, DrawCommand{
				Texture: s.Texture,
				Src:     s.Texture.Column(texX),
				Dst:     Rect{X: float64(col), Y: p.Top, W: 1, H: p.Size},
				Tint:    tint,
				Depth:   p.TransformY,
			})
		}
	}
	return out
}
