package raycast

import (
	"errors"
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// ErrNoHit is returned when a ray leaves the grid or runs out of steps.
var ErrNoHit = errors.New("ray escaped the grid")

// TileLookup is the grid as seen by the raycaster. Lookups are (row, col)
// with the x cell as row.
type TileLookup interface {
	TileAt(row, col int) (world.TileCode, error)
	Rows() int
	Columns() int
}

// Ray is the DDA state and hit record for one screen column.
type Ray struct {
	CameraX   float64 // -1 at the left edge, 0 at the center
	Dir       mathutil.Vec2
	MapX      int
	MapY      int
	SideDist  mathutil.Vec2
	DeltaDist mathutil.Vec2
	StepX     int
	StepY     int

	Hit          bool
	Side         Side
	PerpWallDist float64
	Tile         world.TileCode
}

// NewRay sets up the ray for screen column x of width.
func NewRay(x, width int, cam *camera.Camera) Ray {
	cameraX := 2*float64(x)/float64(width) - 1
	dir := cam.Dir.Add(cam.Plane.Scale(cameraX))
	mapX, mapY := cam.Pos.Cell()

	r := Ray{
		CameraX: cameraX,
		Dir:     dir,
		MapX:    mapX,
		MapY:    mapY,
	}

	// A zero component never crosses a boundary on that axis.
	// Use +Inf directly so 0*Inf cannot produce NaN.
	if dir.X == 0 {
		r.DeltaDist.X = math.Inf(1)
		r.SideDist.X = math.Inf(1)
		r.StepX = 1
	} else {
		r.DeltaDist.X = math.Abs(1 / dir.X)
		if dir.X < 0 {
			r.StepX = -1
			r.SideDist.X = (cam.Pos.X - float64(mapX)) * r.DeltaDist.X
		} else {
			r.StepX = 1
			r.SideDist.X = (float64(mapX) + 1 - cam.Pos.X) * r.DeltaDist.X
		}
	}

	if dir.Y == 0 {
		r.DeltaDist.Y = math.Inf(1)
		r.SideDist.Y = math.Inf(1)
		r.StepY = 1
	} else {
		r.DeltaDist.Y = math.Abs(1 / dir.Y)
		if dir.Y < 0 {
			r.StepY = -1
			r.SideDist.Y = (cam.Pos.Y - float64(mapY)) * r.DeltaDist.Y
		} else {
			r.StepY = 1
			r.SideDist.Y = (float64(mapY) + 1 - cam.Pos.Y) * r.DeltaDist.Y
		}
	}

	return r
}

// MaxSteps bounds a DDA walk: a straight ray crosses at most rows+columns cells.
func MaxSteps(grid TileLookup) int {
	return grid.Rows() + grid.Columns() + 2
}

// Cast walks the grid until a non-empty cell is entered.
func (r *Ray) Cast(grid TileLookup, maxSteps int) error {
	return r.CastTrace(grid, maxSteps, nil)
}

// CastTrace is Cast with a callback for every cell entered.
func (r *Ray) CastTrace(grid TileLookup, maxSteps int, visit func(row, col int)) error {
	r.Hit = false
	if math.IsInf(r.DeltaDist.X, 1) && math.IsInf(r.DeltaDist.Y, 1) {
		return ErrNoHit
	}
	for steps := 0; steps < maxSteps; steps++ {
		// Ties step along y.
		if r.SideDist.X < r.SideDist.Y {
			r.SideDist.X += r.DeltaDist.X
			r.MapX += r.StepX
			r.Side = SideX
		} else {
			r.SideDist.Y += r.DeltaDist.Y
			r.MapY += r.StepY
			r.Side = SideY
		}

		if visit != nil {
			visit(r.MapX, r.MapY)
		}

		code, err := grid.TileAt(r.MapX, r.MapY)
		if err != nil {
			return ErrNoHit
		}
		if code != world.TileEmpty {
			r.Hit = true
			r.Tile = code
			break
		}
	}
	if !r.Hit {
		return ErrNoHit
	}

	// The side distance was advanced before the hit check; back out that step.
	if r.Side == SideX {
		r.PerpWallDist = r.SideDist.X - r.DeltaDist.X
	} else {
		r.PerpWallDist = r.SideDist.Y - r.DeltaDist.Y
	}
	return nil
}
