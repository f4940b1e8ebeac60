package game

import (
	"fmt"
	"image/color"
	"time"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	minimapCell    = 2
	minimapMargin  = 4
	messageTimeout = 2 * time.Second
)

var (
	hudOnColor    = color.RGBA{120, 230, 120, 255}
	hudOffColor   = color.RGBA{110, 110, 110, 255}
	hudTextColor  = color.RGBA{235, 235, 235, 255}
	minimapFloor  = color.RGBA{24, 24, 28, 200}
	minimapPlayer = color.RGBA{255, 220, 40, 255}
)

type coloredTextSegment struct {
	text  string
	color color.Color
}

func drawColoredTextSegments(screen *ebiten.Image, x, y int, segments []coloredTextSegment) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	curX := x
	for _, seg := range segments {
		ebitext.Draw(screen, seg.text, face, curX, baseline, seg.color)
		curX += font.MeasureString(face, seg.text).Round()
	}
}

// toggleSegments renders the render switches as short labels, lit when on.
func toggleSegments(r *config.RenderConfig) []coloredTextSegment {
	flag := func(label string, on bool) coloredTextSegment {
		if on {
			return coloredTextSegment{label + " ", hudOnColor}
		}
		return coloredTextSegment{label + " ", hudOffColor}
	}
	return []coloredTextSegment{
		flag("SH", r.Shadows),
		flag("DK", r.DarkShading),
		flag("NV", r.Nightvision),
		flag("FF", r.FastFloors),
	}
}

// HUD draws the overlay: frame rate, toggles, a status message and the minimap.
type HUD struct {
	tiles        *world.TileManager
	message      string
	messageUntil time.Time
}

func NewHUD(tiles *world.TileManager) *HUD {
	return &HUD{tiles: tiles}
}

// Notify shows msg for a short while.
func (h *HUD) Notify(msg string) {
	h.message = msg
	h.messageUntil = time.Now().Add(messageTimeout)
}

// Draw renders the text overlay.
func (h *HUD) Draw(screen *ebiten.Image, r *config.RenderConfig, fps float64) {
	segments := append([]coloredTextSegment{
		{fmt.Sprintf("%3.0f fps ", fps), hudTextColor},
	}, toggleSegments(r)...)
	drawColoredTextSegments(screen, 4, 2, segments)

	if h.message != "" && time.Now().Before(h.messageUntil) {
		ebitenutil.DebugPrintAt(screen, h.message, 4, screen.Bounds().Dy()-18)
	}
}

// minimapColor is the cell color for a tile code.
func minimapColor(code world.TileCode, tiles *world.TileManager) color.RGBA {
	if code == 0 {
		return minimapFloor
	}
	if tiles != nil {
		if def, err := tiles.Definition(code); err == nil {
			c := def.Color
			return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
		}
	}
	return color.RGBA{200, 0, 200, 255}
}

// DrawMinimap draws the grid in the top right corner with the camera on it.
// Rows run down the screen and columns across.
func (h *HUD) DrawMinimap(screen *ebiten.Image, grid *world.Grid, cam *camera.Camera) {
	w := grid.Columns() * minimapCell
	ox := screen.Bounds().Dx() - w - minimapMargin
	oy := minimapMargin

	grid.Walk(func(row, col int, code world.TileCode) {
		x := float32(ox + col*minimapCell)
		y := float32(oy + row*minimapCell)
		vector.DrawFilledRect(screen, x, y, minimapCell, minimapCell, minimapColor(code, h.tiles), false)
	})

	// Pos.X is the row, Pos.Y the column.
	px := float32(ox) + float32(cam.Pos.Y*minimapCell)
	py := float32(oy) + float32(cam.Pos.X*minimapCell)
	vector.DrawFilledRect(screen, px-1, py-1, 2, 2, minimapPlayer, false)
	vector.StrokeLine(screen, px, py,
		px+float32(cam.Dir.Y*minimapCell*2), py+float32(cam.Dir.X*minimapCell*2),
		1, minimapPlayer, false)
}

// DrawHelp prints the key summary along the bottom edge.
func (h *HUD) DrawHelp(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "WASD move  QE strafe  SPC use  F1-F4 fx", 4, screen.Bounds().Dy()-32)
}
