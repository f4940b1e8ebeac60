package world

import "fmt"

// Switch is a cell that flips between two tile codes when activated:
// doors (On = empty, Off = door texture) and wall buttons (On/Off textures).
type Switch struct {
	Name string
	Row  int
	Col  int
	On   TileCode
	Off  TileCode
}

// Activate moves the cell to On, or back to Off when it already shows On.
// A switch never closes onto the cell the player occupies.
// It reports whether the grid changed.
func (s *Switch) Activate(g *Grid, playerRow, playerCol int) (bool, error) {
	current, err := g.TileAt(s.Row, s.Col)
	if err != nil {
		return false, fmt.Errorf("switch %q: %w", s.Name, err)
	}
	if current != s.On {
		return true, g.Set(s.Row, s.Col, s.On)
	}
	if playerRow == s.Row && playerCol == s.Col {
		return false, nil
	}
	return true, g.Set(s.Row, s.Col, s.Off)
}

// CenterDistSq is the squared distance from (x, y) to the switch cell center.
func (s *Switch) CenterDistSq(x, y float64) float64 {
	dx := float64(s.Row) + 0.5 - x
	dy := float64(s.Col) + 0.5 - y
	return dx*dx + dy*dy
}
