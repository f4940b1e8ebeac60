package raycast

import (
	"image"
	"image/color"
	"testing"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// gridFromRows builds a grid from equal-length rows of codes.
func gridFromRows(t *testing.T, rows ...[]world.TileCode) *world.Grid {
	t.Helper()
	var tiles []world.TileCode
	for _, r := range rows {
		tiles = append(tiles, r...)
	}
	g, err := world.NewGrid(len(rows[0]), tiles)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

// borderedRoom is a rows x cols grid with a wall (code 1) border.
func borderedRoom(t *testing.T, rows, cols int) *world.Grid {
	t.Helper()
	tiles := make([]world.TileCode, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r == 0 || c == 0 || r == rows-1 || c == cols-1 {
				tiles[r*cols+c] = 1
			}
		}
	}
	g, err := world.NewGrid(cols, tiles)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func solidTexture(size int, c color.RGBA) *graphics.Texture {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return graphics.NewTexture("solid", img)
}

func testTextures(n int) *graphics.TileTextures {
	textures := make([]*graphics.Texture, n)
	for i := range textures {
		textures[i] = solidTexture(8, color.RGBA{200, 200, 200, 255})
	}
	return graphics.NewTileTextures(textures)
}

// plainConfig renders with all shading turned off.
func plainConfig(width, height int) *config.RenderConfig {
	cfg := config.Default().Render
	cfg.Shadows = false
	cfg.DarkShading = false
	cfg.Nightvision = false
	cfg.FastFloors = false
	cfg.ScreenWidth = width
	cfg.ScreenHeight = height
	return &cfg
}

func newCamera(x, y, dirX, dirY float64) *camera.Camera {
	return camera.New(mathutil.V(x, y), mathutil.V(dirX, dirY), 0.66)
}

func vec(x, y float64) mathutil.Vec2 {
	return mathutil.V(x, y)
}
