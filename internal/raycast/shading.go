package raycast

import (
	"image/color"
	"math"

	"gridcaster/internal/config"
)

// Surface selects the shading multiplier.
type Surface int

const (
	SurfaceWall Surface = iota
	SurfaceFloor
	SurfaceCeiling
	SurfaceSprite
)

func (s Surface) String() string {
	switch s {
	case SurfaceWall:
		return "wall"
	case SurfaceFloor:
		return "floor"
	case SurfaceCeiling:
		return "ceiling"
	case SurfaceSprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// Side is the wall face a ray crossed last.
type Side int

const (
	// SideX: the ray stepped along x last (vertical face).
	SideX Side = iota
	// SideY: the ray stepped along y last (horizontal face).
	SideY
)

const shadowDivisor = 1.5

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}

	// NightvisionTint replaces all distance and side shading when nightvision is on.
	NightvisionTint = color.RGBA{0, 228, 48, 255}
)

func multiplier(cfg *config.RenderConfig, s Surface) float64 {
	switch s {
	case SurfaceFloor:
		return cfg.FloorShadingMultiplier
	case SurfaceCeiling:
		return cfg.CeilShadingMultiplier
	case SurfaceSprite:
		return cfg.SpriteShadingMultiplier
	default:
		return cfg.WallShadingMultiplier
	}
}

// Tint is the color multiplied into a surface drawn at dist.
// It is ShadeColor applied to white.
func Tint(cfg *config.RenderConfig, s Surface, dist float64, side Side) color.RGBA {
	return ShadeColor(cfg, white, s, dist, side)
}

// ShadeColor applies the shading model to one texel:
//   - nightvision: modulate by NightvisionTint, ignore distance
//   - dark shading: divide channels by dist*multiplier
//   - shadows: divide wall SideY faces by 1.5
//
// Channels saturate to [0, 255]; alpha is kept.
func ShadeColor(cfg *config.RenderConfig, c color.RGBA, s Surface, dist float64, side Side) color.RGBA {
	if cfg.Nightvision {
		return Modulate(c, NightvisionTint)
	}

	div := 1.0
	if cfg.DarkShading {
		if d := dist * multiplier(cfg, s); d > 0 {
			div *= d
		}
	}
	if cfg.Shadows && s == SurfaceWall && side == SideY {
		div *= shadowDivisor
	}
	if div == 1 {
		return c
	}
	return divide(c, div)
}

// Attenuate divides channels by dist*mult when dark shading is on.
func Attenuate(cfg *config.RenderConfig, c color.RGBA, s Surface, dist float64) color.RGBA {
	if !cfg.DarkShading {
		return c
	}
	div := dist * multiplier(cfg, s)
	if div <= 0 {
		return c
	}
	return divide(c, div)
}

// Modulate multiplies two colors channel by channel.
func Modulate(c, tint color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(tint.R) / 255),
		G: uint8(uint16(c.G) * uint16(tint.G) / 255),
		B: uint8(uint16(c.B) * uint16(tint.B) / 255),
		A: c.A,
	}
}

func divide(c color.RGBA, div float64) color.RGBA {
	return color.RGBA{
		R: clampChannel(float64(c.R) / div),
		G: clampChannel(float64(c.G) / div),
		B: clampChannel(float64(c.B) / div),
		A: c.A,
	}
}

func clampChannel(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
