package camera

import (
	"math"
	"testing"

	"gridcaster/internal/mathutil"
)

// openRoom is a 5x5 room bordered by walls.
type openRoom struct{}

func (openRoom) IsSolid(row, col int) bool {
	return row <= 0 || col <= 0 || row >= 4 || col >= 4
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewBuildsPerpendicularPlane(t *testing.T) {
	c := New(mathutil.V(22, 11.5), mathutil.V(-1, 0), 0.66)
	if !near(c.Plane.X, 0) || !near(c.Plane.Y, 0.66) {
		t.Errorf("expected plane (0, 0.66), got %+v", c.Plane)
	}
	if !near(c.Dir.Dot(c.Plane), 0) {
		t.Error("dir and plane must be orthogonal")
	}
}

func TestRotateKeepsOrthogonality(t *testing.T) {
	c := New(mathutil.V(2, 2), mathutil.V(-1, 0), 0.66)
	for i := 0; i < 37; i++ {
		c.Rotate(0.17)
	}
	if !near(c.Dir.Dot(c.Plane), 0) {
		t.Errorf("dir·plane = %v after rotation", c.Dir.Dot(c.Plane))
	}
	if !near(c.Dir.Len(), 1) || !near(c.Plane.Len(), 0.66) {
		t.Errorf("rotation changed lengths: dir %v plane %v", c.Dir.Len(), c.Plane.Len())
	}
}

func TestMoveSlidesAlongWall(t *testing.T) {
	c := New(mathutil.V(1.5, 1.5), mathutil.V(-1, 1).Scale(1/math.Sqrt2), 0.66)

	// X is blocked by the wall at row 0, Y is free.
	c.Move(0.8, openRoom{})

	if !near(c.Pos.X, 1.5) {
		t.Errorf("x should be blocked, got %v", c.Pos.X)
	}
	if c.Pos.Y <= 1.5 {
		t.Errorf("y should advance, got %v", c.Pos.Y)
	}
}

func TestMoveBackward(t *testing.T) {
	c := New(mathutil.V(2.5, 2.5), mathutil.V(-1, 0), 0.66)
	c.Move(-0.5, openRoom{})
	if !near(c.Pos.X, 3.0) || !near(c.Pos.Y, 2.5) {
		t.Errorf("expected (3.0, 2.5), got %+v", c.Pos)
	}
}

func TestStrafeMovesAlongPlane(t *testing.T) {
	c := New(mathutil.V(2.5, 2.5), mathutil.V(-1, 0), 0.66)
	c.Strafe(0.5, openRoom{})
	if !near(c.Pos.X, 2.5) || !near(c.Pos.Y, 3.0) {
		t.Errorf("expected (2.5, 3.0), got %+v", c.Pos)
	}
}

func TestLookAndRaiseClamp(t *testing.T) {
	c := New(mathutil.V(2, 2), mathutil.V(-1, 0), 0.66)
	c.PitchLimit = 100
	c.HeightLimit = 50

	c.Look(250)
	if c.Pitch != 100 {
		t.Errorf("pitch should clamp to 100, got %v", c.Pitch)
	}
	c.Look(-400)
	if c.Pitch != -100 {
		t.Errorf("pitch should clamp to -100, got %v", c.Pitch)
	}

	c.Raise(-80)
	if c.Z != -50 {
		t.Errorf("height should clamp to -50, got %v", c.Z)
	}
}
