package raycast

import (
	"image"
	"image/color"
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// minWallDist keeps line heights finite when the camera touches a wall.
const minWallDist = 1e-4

// TextureLookup resolves a tile code to its texture. Codes outside
// 1..len(textures) return world.ErrInvalidTexture.
type TextureLookup interface {
	TextureFor(code world.TileCode) (*graphics.Texture, error)
}

// Rect is a destination rectangle in render-target pixels.
type Rect struct {
	X, Y, W, H float64
}

// DrawCommand draws Src of Texture scaled into Dst, multiplied by Tint.
type DrawCommand struct {
	Texture *graphics.Texture
	Src     image.Rectangle
	Dst     Rect
	Tint    color.RGBA
	Depth   float64
}

// WallColumn builds the sliver for screen column x from a hit ray.
func WallColumn(x int, ray *Ray, cam *camera.Camera, tex *graphics.Texture, cfg *config.RenderConfig) DrawCommand {
	h := float64(cfg.ScreenHeight)
	d := math.Max(ray.PerpWallDist, minWallDist)

	lineHeight := h / d
	drawStart := h/2 - lineHeight/2 + cam.Pitch + cam.Z/d

	return DrawCommand{
		Texture: tex,
		Src:     tex.Column(TextureX(ray, cam, tex.Size)),
		Dst:     Rect{X: float64(x), Y: drawStart, W: 1, H: lineHeight},
		Tint:    Tint(cfg, SurfaceWall, ray.PerpWallDist, ray.Side),
		Depth:   ray.PerpWallDist,
	}
}

// TextureX is the texture column where the ray met the wall, mirrored so
// textures read the same way from both sides of a block.
func TextureX(ray *Ray, cam *camera.Camera, size int) int {
	var wallX float64
	if ray.Side == SideX {
		wallX = cam.Pos.Y + ray.PerpWallDist*ray.Dir.Y
	} else {
		wallX = cam.Pos.X + ray.PerpWallDist*ray.Dir.X
	}
	wallX = mathutil.Frac(wallX)

	texX := mathutil.IntClamp(int(wallX*float64(size)), 0, size-1)
	if ray.Side == SideX && ray.Dir.X > 0 {
		texX = size - texX - 1
	}
	if ray.Side == SideY && ray.Dir.Y < 0 {
		texX = size - texX - 1
	}
	return texX
}
