package game

import (
	"image"

	"gridcaster/internal/raycast"
	"gridcaster/internal/threading/rendering"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameRenderer presents pipeline frames: the background buffer as one
// image, then wall and sprite columns as scaled texture slices.
type FrameRenderer struct {
	background *ebiten.Image
	cache      *rendering.SliceCache
	batch      *rendering.CommandBatch
	jobs       []rendering.DrawJob
}

// NewFrameRenderer creates a renderer that shares the given slice cache and batch.
func NewFrameRenderer(cache *rendering.SliceCache, batch *rendering.CommandBatch) *FrameRenderer {
	return &FrameRenderer{cache: cache, batch: batch}
}

// Draw composites f onto screen and returns the number of column draws issued.
func (r *FrameRenderer) Draw(screen *ebiten.Image, f *raycast.Frame) int {
	if r.background == nil || r.background.Bounds().Dx() != f.Width || r.background.Bounds().Dy() != f.Height {
		if r.background != nil {
			r.background.Deallocate()
		}
		r.background = ebiten.NewImage(f.Width, f.Height)
	}
	r.background.WritePixels(f.Background.Pix)
	screen.DrawImage(r.background, nil)

	r.jobs = r.jobs[:0]
	for i := range f.Walls {
		r.jobs = append(r.jobs, drawJobFor(&f.Walls[i], r.slice(&f.Walls[i])))
	}
	for i := range f.Sprites {
		r.jobs = append(r.jobs, drawJobFor(&f.Sprites[i], r.slice(&f.Sprites[i])))
	}
	r.batch.AddAll(r.jobs)
	return r.batch.RenderAll(screen)
}

// slice returns the cached one-pixel-wide texture column a command samples.
func (r *FrameRenderer) slice(cmd *raycast.DrawCommand) *ebiten.Image {
	tex := cmd.Texture
	if tex == nil {
		return nil
	}
	src := cmd.Src
	key := rendering.SliceKey{Texture: tex.Name, Column: src.Min.X}
	return r.cache.GetOrCreate(key, func() *ebiten.Image {
		return tex.Image().SubImage(image.Rect(src.Min.X, 0, src.Max.X, tex.Size)).(*ebiten.Image)
	})
}

// drawJobFor maps a column command onto screen space. The source slice is
// one texel wide and Size texels tall.
func drawJobFor(cmd *raycast.DrawCommand, img *ebiten.Image) rendering.DrawJob {
	job := rendering.DrawJob{
		Image:  img,
		X:      cmd.Dst.X,
		Y:      cmd.Dst.Y,
		ScaleX: cmd.Dst.W,
		ScaleY: 1,
	}
	if cmd.Texture != nil && cmd.Texture.Size > 0 {
		job.ScaleY = cmd.Dst.H / float64(cmd.Texture.Size)
	}
	job.ColorScale.R = float32(cmd.Tint.R) / 255
	job.ColorScale.G = float32(cmd.Tint.G) / 255
	job.ColorScale.B = float32(cmd.Tint.B) / 255
	job.ColorScale.A = 1
	return job
}

// Close releases GPU images owned by the renderer.
func (r *FrameRenderer) Close() {
	if r.background != nil {
		r.background.Deallocate()
		r.background = nil
	}
	r.cache.Purge()
}
