package graphics

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gridcaster/internal/world"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestNewTextureKeepsRowMajorPixels(t *testing.T) {
	tex := NewTexture("grad", gradient(4, 4))

	if tex.Size != 4 {
		t.Fatalf("expected size 4, got %d", tex.Size)
	}
	// Pixels[row*Size+col] holds image pixel (col, row).
	if got := tex.Pixels[1*4+3]; got.R != 3 || got.G != 1 {
		t.Errorf("expected pixel (3,1), got %+v", got)
	}
}

func TestSampleIndexFormula(t *testing.T) {
	tex := NewTexture("grad", gradient(4, 4))

	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			if got, want := tex.Sample(x, y), tex.Pixels[4*x+y]; got != want {
				t.Errorf("Sample(%d,%d) = %+v, want Pixels[S*x+y] = %+v", x, y, got, want)
			}
		}
	}
	if tex.Sample(5, -1) != tex.Sample(1, 3) {
		t.Error("Sample should wrap coordinates into the texture")
	}
}

func TestNewTextureResamplesToPowerOfTwo(t *testing.T) {
	tex := NewTexture("odd", gradient(48, 20))
	if tex.Size != 64 {
		t.Errorf("expected 64, got %d", tex.Size)
	}
	if len(tex.Pixels) != 64*64 {
		t.Errorf("expected %d pixels, got %d", 64*64, len(tex.Pixels))
	}
	if tex.RGBA().Bounds().Dx() != 64 {
		t.Error("CPU image should match the texture size")
	}
}

func TestColumnRect(t *testing.T) {
	tex := NewTexture("grad", gradient(8, 8))
	if r := tex.Column(5); r != image.Rect(5, 0, 6, 8) {
		t.Errorf("unexpected column rect %v", r)
	}
}

func TestPlaceholderPatterns(t *testing.T) {
	base := color.RGBA{200, 100, 50, 255}
	for _, pattern := range []string{PatternBrick, PatternPanel, PatternChecker, PatternSprite} {
		tex := NewPlaceholder(pattern, base, pattern)
		if tex.Size != placeholderSize {
			t.Errorf("%s: expected size %d, got %d", pattern, placeholderSize, tex.Size)
		}
	}

	sprite := NewPlaceholder("s", base, PatternSprite)
	if corner := sprite.Pixels[0]; corner.A != 0 {
		t.Errorf("sprite placeholder corner should be transparent, got %+v", corner)
	}
	center := sprite.Pixels[(placeholderSize/2)*placeholderSize+placeholderSize/2]
	if center != base {
		t.Errorf("sprite placeholder center should be base color, got %+v", center)
	}
}

func TestRGBFromConfig(t *testing.T) {
	if c := RGBFromConfig([3]int{300, -5, 10}); c != (color.RGBA{255, 0, 10, 255}) {
		t.Errorf("unexpected clamp result %+v", c)
	}
	if c := RGBFromConfig([3]int{}); c != (color.RGBA{128, 128, 128, 255}) {
		t.Errorf("unset color should fall back to gray, got %+v", c)
	}
}

func TestTextureManagerLoadsFileAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "wall.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradient(16, 16)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tm := NewTextureManager([]string{filepath.Join(dir, "missing"), dir})
	textures := tm.LoadAll([]TextureRequest{
		{Name: "wall", File: "wall.png"},
		{Name: "ghost", File: "ghost.png", Color: color.RGBA{0, 0, 255, 255}},
	})

	if textures[0].Size != 16 || textures[0].Name != "wall" {
		t.Errorf("expected decoded 16px wall, got %s size %d", textures[0].Name, textures[0].Size)
	}
	if textures[1].Size != placeholderSize {
		t.Errorf("expected placeholder for missing file, got size %d", textures[1].Size)
	}

	if again := tm.Load(TextureRequest{Name: "wall", File: "wall.png"}); again != textures[0] {
		t.Error("second load should hit the cache")
	}
}

func TestTileTexturesLookup(t *testing.T) {
	a := NewTexture("a", gradient(2, 2))
	b := NewTexture("b", gradient(2, 2))
	tt := NewTileTextures([]*Texture{a, b})

	if tex, err := tt.TextureFor(2); err != nil || tex != b {
		t.Errorf("TextureFor(2) = %v, %v", tex, err)
	}
	for _, code := range []world.TileCode{0, 3} {
		if _, err := tt.TextureFor(code); !errors.Is(err, world.ErrInvalidTexture) {
			t.Errorf("TextureFor(%d): expected ErrInvalidTexture, got %v", code, err)
		}
	}
}
