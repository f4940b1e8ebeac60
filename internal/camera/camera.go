// Package camera holds the first-person camera state and its grid movement.
package camera

import (
	"gridcaster/internal/mathutil"
)

// Blocker reports whether a grid cell stops movement.
type Blocker interface {
	IsSolid(row, col int) bool
}

// Camera is the viewer: position, height offset, facing direction, view plane
// and vertical pitch. Dir and Plane are kept orthogonal by Rotate; the plane
// length sets the field of view.
type Camera struct {
	Pos   mathutil.Vec2
	Z     float64 // vertical offset in screen-scaled units
	Dir   mathutil.Vec2
	Plane mathutil.Vec2
	Pitch float64 // horizon shift in screen pixels

	PitchLimit  float64
	HeightLimit float64
}

// New places a camera at pos looking along dir with a plane of planeLen
// perpendicular to it (to the right of dir on screen).
func New(pos, dir mathutil.Vec2, planeLen float64) *Camera {
	l := dir.Len()
	if l == 0 {
		dir = mathutil.V(-1, 0)
		l = 1
	}
	return &Camera{
		Pos:   pos,
		Dir:   dir,
		Plane: mathutil.V(dir.Y, -dir.X).Scale(planeLen / l),
	}
}

// Rotate turns dir and plane together by angle radians (positive = left).
func (c *Camera) Rotate(angle float64) {
	c.Dir = c.Dir.Rotate(angle)
	c.Plane = c.Plane.Rotate(angle)
}

// Move walks dist along Dir, testing each axis separately so the camera
// slides along walls instead of stopping dead.
func (c *Camera) Move(dist float64, b Blocker) {
	c.slide(c.Dir.Scale(dist), b)
}

// Strafe walks dist sideways (positive = screen right).
func (c *Camera) Strafe(dist float64, b Blocker) {
	pl := c.Plane.Len()
	if pl == 0 {
		return
	}
	c.slide(c.Plane.Scale(dist/pl), b)
}

func (c *Camera) slide(delta mathutil.Vec2, b Blocker) {
	_, col := c.Pos.Cell()
	if !b.IsSolid(mathutil.FloorInt(c.Pos.X+delta.X), col) {
		c.Pos.X += delta.X
	}
	row, _ := c.Pos.Cell()
	if !b.IsSolid(row, mathutil.FloorInt(c.Pos.Y+delta.Y)) {
		c.Pos.Y += delta.Y
	}
}

// Look shifts the pitch, clamped to ±PitchLimit.
func (c *Camera) Look(delta float64) {
	c.Pitch = mathutil.Clamp(c.Pitch+delta, -c.PitchLimit, c.PitchLimit)
}

// Raise shifts the height offset, clamped to ±HeightLimit.
func (c *Camera) Raise(delta float64) {
	c.Z = mathutil.Clamp(c.Z+delta, -c.HeightLimit, c.HeightLimit)
}

// Cell is the grid cell under the camera as (row, col).
func (c *Camera) Cell() (int, int) {
	return c.Pos.Cell()
}
