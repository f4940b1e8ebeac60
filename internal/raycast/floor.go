package raycast

import (
	"image"
	"image/color"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
)

// PixelBuffer is an RGBA8 image written row by row by the floor pass.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{Width: width, Height: height, Pix: make([]byte, width*height*4)}
}

func (b *PixelBuffer) Set(x, y int, c color.RGBA) {
	i := (y*b.Width + x) * 4
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

func (b *PixelBuffer) At(x, y int) color.RGBA {
	i := (y*b.Width + x) * 4
	return color.RGBA{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// FillRow sets every pixel of row y to c.
func (b *PixelBuffer) FillRow(y int, c color.RGBA) {
	row := b.Pix[y*b.Width*4 : (y+1)*b.Width*4]
	for i := 0; i < len(row); i += 4 {
		row[i] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
	}
}

// RGBA views the buffer as an image without copying.
func (b *PixelBuffer) RGBA() *image.RGBA {
	return &image.RGBA{Pix: b.Pix, Stride: b.Width * 4, Rect: image.Rect(0, 0, b.Width, b.Height)}
}

// FloorView is the per-frame input shared by every row of the floor pass.
type FloorView struct {
	Camera      *camera.Camera
	Config      *config.RenderConfig
	RayDirLeft  mathutil.Vec2 // dir - plane
	RayDirRight mathutil.Vec2 // dir + plane
}

func NewFloorView(cam *camera.Camera, cfg *config.RenderConfig) FloorView {
	return FloorView{
		Camera:      cam,
		Config:      cfg,
		RayDirLeft:  cam.Dir.Sub(cam.Plane),
		RayDirRight: cam.Dir.Add(cam.Plane),
	}
}

// Horizon is the screen row of the horizon after pitch.
func (v FloorView) Horizon() float64 {
	return float64(v.Config.ScreenHeight)/2 + v.Camera.Pitch
}

// RowDistance returns the world distance of screen row y and whether it is
// a floor row. ok is false for the horizon row itself and for rows the
// height offset puts behind the eye.
func (v FloorView) RowDistance(y int) (dist float64, floor bool, ok bool) {
	h := v.Horizon()
	half := 0.5 * float64(v.Config.ScreenHeight)

	var p, camTerm float64
	if float64(y) > h {
		floor = true
		p = float64(y) - h
		camTerm = half + v.Camera.Z
	} else {
		p = h - float64(y)
		camTerm = half - v.Camera.Z
	}
	if p == 0 || camTerm <= 0 {
		return 0, floor, false
	}
	return camTerm / p, floor, true
}

// FloorCaster fills one screen row of the background buffer.
// Every pixel of the row must be written.
type FloorCaster interface {
	CastRow(buf *PixelBuffer, y int, view FloorView)
}

// NewFloorCaster picks the flat strategy for fast floors or missing textures.
func NewFloorCaster(cfg *config.RenderConfig, floor, ceiling *graphics.Texture) FloorCaster {
	if cfg.FastFloors || floor == nil || ceiling == nil {
		return FlatFloor{}
	}
	return &TexturedFloor{Floor: floor, Ceiling: ceiling}
}

// TexturedFloor maps floor and ceiling textures with perspective.
type TexturedFloor struct {
	Floor   *graphics.Texture
	Ceiling *graphics.Texture
}

func (tf *TexturedFloor) CastRow(buf *PixelBuffer, y int, view FloorView) {
	rowDist, isFloor, ok := view.RowDistance(y)
	if !ok {
		buf.FillRow(y, black)
		return
	}

	tex, surface := tf.Ceiling, SurfaceCeiling
	if isFloor {
		tex, surface = tf.Floor, SurfaceFloor
	}

	width := float64(buf.Width)
	step := view.RayDirRight.Sub(view.RayDirLeft).Scale(rowDist / width)
	pos := view.Camera.Pos.Add(view.RayDirLeft.Scale(rowDist))

	for x := 0; x < buf.Width; x++ {
		tx, ty := TexCoord(pos, tex.Size)
		pos = pos.Add(step)

		buf.Set(x, y, ShadeColor(view.Config, tex.Sample(tx, ty), surface, rowDist, SideX))
	}
}

// TexCoord maps a world position to texel coordinates of a size-S texture.
func TexCoord(pos mathutil.Vec2, size int) (int, int) {
	s := float64(size)
	mask := size - 1
	tx := int(s*mathutil.Frac(pos.X)) & mask
	ty := int(s*mathutil.Frac(pos.Y)) & mask
	return tx, ty
}

// Flat floor colors.
var (
	flatFloor        = color.RGBA{130, 130, 130, 255}
	flatCeiling      = color.RGBA{80, 80, 80, 255}
	flatFloorNight   = color.RGBA{0, 228, 48, 255}
	flatCeilingNight = color.RGBA{0, 117, 44, 255}
)

// FlatFloor fills floor and ceiling with solid colors, darkened per row by
// distance when dark shading is on.
type FlatFloor struct{}

func (FlatFloor) CastRow(buf *PixelBuffer, y int, view FloorView) {
	rowDist, isFloor, ok := view.RowDistance(y)
	if !ok {
		buf.FillRow(y, black)
		return
	}

	cfg := view.Config
	// Nightvision is a fixed tint, never attenuated.
	if cfg.Nightvision {
		if isFloor {
			buf.FillRow(y, flatFloorNight)
		} else {
			buf.FillRow(y, flatCeilingNight)
		}
		return
	}

	if isFloor {
		buf.FillRow(y, Attenuate(cfg, flatFloor, SurfaceFloor, rowDist))
	} else {
		buf.FillRow(y, Attenuate(cfg, flatCeiling, SurfaceCeiling, rowDist))
	}
}
