package world

import (
	"fmt"
	"os"
	"sort"

	"gridcaster/internal/config"
	"gridcaster/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// TileDef is a named wall tile bound to a grid code.
type TileDef struct {
	Key string
	config.TileData
}

// TileManager maps wall tile codes to their texture definitions.
type TileManager struct {
	byCode []TileDef // index code-1
	byKey  map[string]TileCode
}

// NewTileManager creates an empty tile manager
func NewTileManager() *TileManager {
	return &TileManager{byKey: make(map[string]TileCode)}
}

// LoadTileConfig loads tile definitions from a YAML file.
// Codes must be unique and cover 1..N without gaps.
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig config.TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	return tm.setTiles(tileConfig.TileData)
}

func (tm *TileManager) setTiles(tiles map[string]config.TileData) error {
	defs := make([]TileDef, 0, len(tiles))
	for key, td := range tiles {
		defs = append(defs, TileDef{Key: key, TileData: td})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })

	byKey := make(map[string]TileCode, len(defs))
	for i, def := range defs {
		if def.Code != uint32(i+1) {
			return fmt.Errorf("tile %q has code %d, expected %d (codes must run 1..%d)", def.Key, def.Code, i+1, len(defs))
		}
		byKey[def.Key] = TileCode(def.Code)
	}

	tm.byCode = defs
	tm.byKey = byKey
	logger.Debug("tile table loaded", zap.Int("tiles", len(defs)))
	return nil
}

// Len is the number of defined wall tiles (the largest valid code).
func (tm *TileManager) Len() int {
	return len(tm.byCode)
}

// Definition returns the tile for code, which must lie in 1..Len().
func (tm *TileManager) Definition(code TileCode) (TileDef, error) {
	if code == TileEmpty || int(code) > len(tm.byCode) {
		return TileDef{}, fmt.Errorf("tile code %d of %d: %w", code, len(tm.byCode), ErrInvalidTexture)
	}
	return tm.byCode[code-1], nil
}

// CodeForKey looks a tile code up by its YAML key.
func (tm *TileManager) CodeForKey(key string) (TileCode, bool) {
	code, ok := tm.byKey[key]
	return code, ok
}

// Definitions returns all tiles ordered by code.
func (tm *TileManager) Definitions() []TileDef {
	return tm.byCode
}

// ValidateGrid checks that every non-empty cell has a tile definition.
func (tm *TileManager) ValidateGrid(g *Grid) error {
	var firstErr error
	g.Walk(func(row, col int, code TileCode) {
		if firstErr != nil || code == TileEmpty {
			return
		}
		if _, err := tm.Definition(code); err != nil {
			firstErr = fmt.Errorf("cell (%d, %d): %w", row, col, err)
		}
	})
	return firstErr
}
