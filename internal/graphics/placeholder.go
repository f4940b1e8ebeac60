package graphics

import (
	"image"
	"image/color"
)

const placeholderSize = 64

// Placeholder patterns for tiles whose image file is missing.
const (
	PatternBrick   = "brick"
	PatternPanel   = "panel"
	PatternChecker = "checker"
	PatternSprite  = "sprite"
)

// NewPlaceholder builds a procedural texture in the given base color.
func NewPlaceholder(name string, base color.RGBA, pattern string) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	dark := scaleColor(base, 0.55)

	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			c := base
			switch pattern {
			case PatternPanel:
				if x%32 < 2 || y%32 < 2 {
					c = dark
				}
			case PatternChecker:
				if (x/8+y/8)%2 == 1 {
					c = dark
				}
			case PatternSprite:
				// Filled disc on a transparent background.
				dx, dy := x-placeholderSize/2, y-placeholderSize/2
				r := placeholderSize/2 - 4
				if dx*dx+dy*dy > r*r {
					c = color.RGBA{}
				} else if dx*dx+dy*dy > (r-3)*(r-3) {
					c = dark
				}
			default:
				// Brick courses, offset every other row.
				offset := 0
				if (y/16)%2 == 1 {
					offset = 16
				}
				if y%16 == 0 || (x+offset)%32 == 0 {
					c = dark
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return NewTexture(name, img)
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// RGBFromConfig converts a YAML [r, g, b] triple to an opaque color.
func RGBFromConfig(rgb [3]int) color.RGBA {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	if rgb == [3]int{} {
		return color.RGBA{128, 128, 128, 255}
	}
	return color.RGBA{clamp(rgb[0]), clamp(rgb[1]), clamp(rgb[2]), 255}
}
