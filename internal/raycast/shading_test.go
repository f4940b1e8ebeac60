package raycast

import (
	"image/color"
	"testing"
)

func TestShadeColorIdentityWhenShadingOff(t *testing.T) {
	cfg := plainConfig(8, 8)
	c := color.RGBA{123, 45, 67, 200}

	for _, s := range []Surface{SurfaceWall, SurfaceFloor, SurfaceCeiling, SurfaceSprite} {
		for _, side := range []Side{SideX, SideY} {
			if got := ShadeColor(cfg, c, s, 3.7, side); got != c {
				t.Errorf("%v side %d: got %v, want %v", s, side, got, c)
			}
		}
	}
}

func TestShadowsDarkenOnlyYWalls(t *testing.T) {
	cfg := plainConfig(8, 8)
	cfg.Shadows = true
	c := color.RGBA{150, 90, 30, 255}

	if got, want := ShadeColor(cfg, c, SurfaceWall, 2, SideY), (color.RGBA{100, 60, 20, 255}); got != want {
		t.Errorf("y wall: got %v, want %v", got, want)
	}
	if got := ShadeColor(cfg, c, SurfaceWall, 2, SideX); got != c {
		t.Errorf("x wall should be unshaded, got %v", got)
	}
	if got := ShadeColor(cfg, c, SurfaceFloor, 2, SideY); got != c {
		t.Errorf("floor should ignore shadows, got %v", got)
	}
}

func TestDarkShadingDividesByDistance(t *testing.T) {
	cfg := plainConfig(8, 8)
	cfg.DarkShading = true
	cfg.WallShadingMultiplier = 0.2

	// 2.5 * 0.2 = 0.5, so channels double and saturate.
	got := ShadeColor(cfg, color.RGBA{100, 50, 200, 255}, SurfaceWall, 2.5, SideX)
	if want := (color.RGBA{200, 100, 255, 255}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// 10 * 0.2 = 2
	got = ShadeColor(cfg, color.RGBA{100, 50, 200, 255}, SurfaceWall, 10, SideX)
	if want := (color.RGBA{50, 25, 100, 255}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	c := color.RGBA{10, 20, 30, 255}
	if got := ShadeColor(cfg, c, SurfaceWall, 0, SideX); got != c {
		t.Errorf("zero distance should not divide, got %v", got)
	}
}

func TestSurfacesUseTheirOwnMultiplier(t *testing.T) {
	cfg := plainConfig(8, 8)
	cfg.DarkShading = true
	cfg.WallShadingMultiplier = 1
	cfg.FloorShadingMultiplier = 2
	cfg.CeilShadingMultiplier = 4
	cfg.SpriteShadingMultiplier = 0.5

	c := color.RGBA{200, 200, 200, 255}
	tests := []struct {
		surface Surface
		want    uint8
	}{
		{SurfaceWall, 100},
		{SurfaceFloor, 50},
		{SurfaceCeiling, 25},
		{SurfaceSprite, 200},
	}
	for _, tt := range tests {
		t.Run(tt.surface.String(), func(t *testing.T) {
			got := ShadeColor(cfg, c, tt.surface, 2, SideX)
			if got.R != tt.want || got.G != tt.want || got.B != tt.want {
				t.Errorf("got %v, want channel %d", got, tt.want)
			}
		})
	}
}

func TestNightvisionIgnoresDistance(t *testing.T) {
	cfg := plainConfig(8, 8)
	cfg.Nightvision = true
	cfg.DarkShading = true
	cfg.Shadows = true

	for _, dist := range []float64{0.5, 3, 40} {
		if got := Tint(cfg, SurfaceWall, dist, SideY); got != NightvisionTint {
			t.Errorf("dist %v: tint %v, want %v", dist, got, NightvisionTint)
		}
	}

	got := ShadeColor(cfg, color.RGBA{100, 100, 100, 255}, SurfaceFloor, 5, SideX)
	if want := (color.RGBA{0, 89, 18, 255}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTintIsShadedWhite(t *testing.T) {
	cfg := plainConfig(8, 8)
	if got := Tint(cfg, SurfaceWall, 4, SideY); got != white {
		t.Errorf("unshaded tint = %v, want white", got)
	}

	cfg.Shadows = true
	if got, want := Tint(cfg, SurfaceWall, 4, SideY), (color.RGBA{170, 170, 170, 255}); got != want {
		t.Errorf("shadow tint = %v, want %v", got, want)
	}
}

func TestAttenuate(t *testing.T) {
	cfg := plainConfig(8, 8)
	c := color.RGBA{130, 130, 130, 255}
	if got := Attenuate(cfg, c, SurfaceFloor, 4); got != c {
		t.Errorf("dark shading off: got %v", got)
	}

	cfg.DarkShading = true
	cfg.FloorShadingMultiplier = 0.25
	if got, want := Attenuate(cfg, c, SurfaceFloor, 8), (color.RGBA{65, 65, 65, 255}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClampChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{12.9, 12},
		{255, 255},
		{1e9, 255},
	}
	for _, tt := range tests {
		if got := clampChannel(tt.in); got != tt.want {
			t.Errorf("clampChannel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
