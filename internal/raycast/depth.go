package raycast

import "math"

var positiveInf = math.Inf(1)

// DepthBuffer holds the perpendicular wall distance of every screen column
// for one frame. Columns without a wall hold +Inf.
type DepthBuffer []float64

func NewDepthBuffer(width int) DepthBuffer {
	d := make(DepthBuffer, width)
	d.Reset()
	return d
}

// Reset sets every column to +Inf.
func (d DepthBuffer) Reset() {
	for i := range d {
		d[i] = positiveInf
	}
}

// Visible reports whether something at depth is in front of the wall in col.
func (d DepthBuffer) Visible(col int, depth float64) bool {
	return col >= 0 && col < len(d) && depth < d[col]
}
