// Package raster composes a rendered frame into an image on the CPU, for
// screenshots, the terminal viewer and tests.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"gridcaster/internal/raycast"

	xdraw "golang.org/x/image/draw"
)

// Composite draws f into dst: background, then walls, then sprites.
// dst must be f.Width x f.Height.
func Composite(dst *image.RGBA, f *raycast.Frame) {
	copy(dst.Pix, f.Background.Pix)
	for i := range f.Walls {
		DrawColumn(dst, &f.Walls[i])
	}
	for i := range f.Sprites {
		DrawColumn(dst, &f.Sprites[i])
	}
}

// Render composes f into a new image.
func Render(f *raycast.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	Composite(img, f)
	return img
}

// DrawColumn scales one texture column into its destination rectangle with
// nearest-neighbour sampling. Transparent texels are skipped; others are
// multiplied by the command tint.
func DrawColumn(dst *image.RGBA, cmd *raycast.DrawCommand) {
	tex := cmd.Texture
	if tex == nil || cmd.Dst.H <= 0 {
		return
	}
	b := dst.Bounds()
	x := int(math.Floor(cmd.Dst.X))
	if x < b.Min.X || x >= b.Max.X {
		return
	}

	top := cmd.Dst.Y
	y0 := max(int(math.Ceil(top)), b.Min.Y)
	y1 := min(int(math.Ceil(top+cmd.Dst.H)), b.Max.Y)
	texX := cmd.Src.Min.X
	size := tex.Size

	for y := y0; y < y1; y++ {
		texY := int((float64(y) - top) * float64(size) / cmd.Dst.H)
		texY = min(max(texY, 0), size-1)
		c := tex.Pixels[texY*size+texX]
		if c.A == 0 {
			continue
		}
		dst.SetRGBA(x, y, raycast.Modulate(c, cmd.Tint))
	}
}

// Scale resizes img to w x h with nearest-neighbour sampling.
func Scale(img image.Image, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return f.Close()
}
