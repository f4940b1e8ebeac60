package graphics

import (
	"image"
	"image/color"
	"sync"

	"gridcaster/internal/mathutil"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// Texture is a square power-of-two image with a CPU pixel cache for
// per-pixel sampling and a lazily created GPU image for column draws.
type Texture struct {
	Name string
	Size int
	// Pixels holds the image in row-major order (Pixels[row*Size+col]).
	Pixels []color.RGBA

	rgba *image.RGBA

	gpuOnce sync.Once
	gpu     *ebiten.Image
}

// NewTexture copies src into a texture. Non-square or non power-of-two
// images are resampled to the next power of two of their larger side.
func NewTexture(name string, src image.Image) *Texture {
	b := src.Bounds()
	size := mathutil.NextPowerOfTwo(mathutil.IntMax(b.Dx(), b.Dy()))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	if b.Dx() == size && b.Dy() == size {
		xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(rgba, rgba.Bounds(), src, b, xdraw.Src, nil)
	}

	pixels := make([]color.RGBA, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := rgba.PixOffset(x, y)
			p := rgba.Pix[i : i+4 : i+4]
			pixels[y*size+x] = color.RGBA{p[0], p[1], p[2], p[3]}
		}
	}

	return &Texture{Name: name, Size: size, Pixels: pixels, rgba: rgba}
}

// Sample returns Pixels[Size*x + y]. Coordinates wrap into [0, Size).
func (t *Texture) Sample(x, y int) color.RGBA {
	mask := t.Size - 1
	return t.Pixels[t.Size*(x&mask)+(y&mask)]
}

// Column is the source rectangle of texture column texX.
func (t *Texture) Column(texX int) image.Rectangle {
	return image.Rect(texX, 0, texX+1, t.Size)
}

// RGBA exposes the CPU copy for software compositing. Do not modify it.
func (t *Texture) RGBA() *image.RGBA {
	return t.rgba
}

// Image returns the GPU image, creating it on first use.
// Must be called from the ebiten draw goroutine.
func (t *Texture) Image() *ebiten.Image {
	t.gpuOnce.Do(func() {
		t.gpu = ebiten.NewImageFromImage(t.rgba)
	})
	return t.gpu
}
