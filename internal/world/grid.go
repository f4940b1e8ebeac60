package world

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for grid queries outside the map.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrInvalidTexture is returned for tile codes with no texture binding.
	ErrInvalidTexture = errors.New("invalid texture code")
)

// TileCode is a grid cell value. 0 is empty; c > 0 selects texture c-1.
type TileCode uint32

const TileEmpty TileCode = 0

// Grid is a row-major tile map with a fixed column count.
// Callers pass the x cell as row and the y cell as column.
type Grid struct {
	columns int
	rows    int
	tiles   []TileCode
}

// NewGrid wraps tiles as a grid of the given width. The slice is copied.
func NewGrid(columns int, tiles []TileCode) (*Grid, error) {
	if columns <= 0 {
		return nil, fmt.Errorf("grid needs at least one column, got %d", columns)
	}
	if len(tiles) == 0 || len(tiles)%columns != 0 {
		return nil, fmt.Errorf("grid has %d tiles, not a multiple of %d columns", len(tiles), columns)
	}
	cp := make([]TileCode, len(tiles))
	copy(cp, tiles)
	return &Grid{columns: columns, rows: len(tiles) / columns, tiles: cp}, nil
}

func (g *Grid) Rows() int    { return g.rows }
func (g *Grid) Columns() int { return g.columns }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.columns
}

// TileAt returns the code at (row, col).
func (g *Grid) TileAt(row, col int) (TileCode, error) {
	if !g.inBounds(row, col) {
		return 0, fmt.Errorf("tile (%d, %d) in %dx%d grid: %w", row, col, g.rows, g.columns, ErrOutOfBounds)
	}
	return g.tiles[g.columns*row+col], nil
}

// IsSolid reports whether a cell blocks movement. Cells outside the grid are solid.
func (g *Grid) IsSolid(row, col int) bool {
	code, err := g.TileAt(row, col)
	return err != nil || code != TileEmpty
}

// Set replaces the code at (row, col). Only call between frames.
func (g *Grid) Set(row, col int, code TileCode) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("set (%d, %d): %w", row, col, ErrOutOfBounds)
	}
	g.tiles[g.columns*row+col] = code
	return nil
}

// MaxCode returns the largest code in the grid.
func (g *Grid) MaxCode() TileCode {
	var m TileCode
	for _, c := range g.tiles {
		if c > m {
			m = c
		}
	}
	return m
}

// Walk calls fn for every cell in row-major order.
func (g *Grid) Walk(fn func(row, col int, code TileCode)) {
	for i, c := range g.tiles {
		fn(i/g.columns, i%g.columns, c)
	}
}
