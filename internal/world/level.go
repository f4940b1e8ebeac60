package world

import (
	"fmt"
	"os"
	"path/filepath"

	"gridcaster/internal/config"
	"gridcaster/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Level is a loaded map plus everything placed on it.
type Level struct {
	Name         string
	Grid         *Grid
	FloorTile    TileCode
	CeilingTile  TileCode
	Start        config.StartConfig
	SpriteImages map[string]config.SpriteData
	Sprites      []config.SpritePlacement
	Switches     []*Switch
}

// LoadLevel reads the named level from a levels YAML file. Map paths are
// relative to the YAML file. Every tile code used by the level must be
// defined in tm.
func LoadLevel(levelsFile, name string, tm *TileManager) (*Level, error) {
	data, err := os.ReadFile(levelsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels file: %w", err)
	}

	var configs config.MapConfigs
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to parse levels file: %w", err)
	}

	mc, ok := configs.Maps[name]
	if !ok {
		return nil, fmt.Errorf("level %q not found in %s", name, levelsFile)
	}

	grid, err := NewMapLoader().LoadMap(filepath.Join(filepath.Dir(levelsFile), mc.File))
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}

	level := &Level{
		Name:         name,
		Grid:         grid,
		FloorTile:    TileCode(mc.FloorTile),
		CeilingTile:  TileCode(mc.CeilingTile),
		Start:        mc.Start,
		SpriteImages: mc.SpriteImages,
		Sprites:      mc.Sprites,
	}
	if mc.Name != "" {
		level.Name = mc.Name
	}
	for _, sc := range mc.Switches {
		level.Switches = append(level.Switches, &Switch{
			Name: sc.Name,
			Row:  sc.Row,
			Col:  sc.Col,
			On:   TileCode(sc.On),
			Off:  TileCode(sc.Off),
		})
	}

	if err := level.Validate(tm); err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}

	logger.Info("level loaded",
		zap.String("level", level.Name),
		zap.Int("rows", grid.Rows()),
		zap.Int("columns", grid.Columns()),
		zap.Int("sprites", len(level.Sprites)),
		zap.Int("switches", len(level.Switches)))
	return level, nil
}

// Validate checks tile codes, the start cell and sprite image references.
func (l *Level) Validate(tm *TileManager) error {
	if err := tm.ValidateGrid(l.Grid); err != nil {
		return err
	}
	if _, err := tm.Definition(l.FloorTile); err != nil {
		return fmt.Errorf("floor tile: %w", err)
	}
	if _, err := tm.Definition(l.CeilingTile); err != nil {
		return fmt.Errorf("ceiling tile: %w", err)
	}

	row, col := int(l.Start.X), int(l.Start.Y)
	if l.Grid.IsSolid(row, col) {
		return fmt.Errorf("start (%.2f, %.2f) is not an empty cell", l.Start.X, l.Start.Y)
	}
	if l.Start.DirX == 0 && l.Start.DirY == 0 {
		return fmt.Errorf("start direction is zero")
	}

	for _, s := range l.Switches {
		if _, err := l.Grid.TileAt(s.Row, s.Col); err != nil {
			return fmt.Errorf("switch %q: %w", s.Name, err)
		}
		for _, code := range []TileCode{s.On, s.Off} {
			if code == TileEmpty {
				continue
			}
			if _, err := tm.Definition(code); err != nil {
				return fmt.Errorf("switch %q: %w", s.Name, err)
			}
		}
	}

	for i, sp := range l.Sprites {
		if _, ok := l.SpriteImages[sp.Image]; !ok {
			return fmt.Errorf("sprite %d uses unknown image %q", i, sp.Image)
		}
	}
	return nil
}

// SwitchNear returns the closest switch whose cell center lies within reach
// of (x, y), or nil.
func (l *Level) SwitchNear(x, y, reach float64) *Switch {
	var best *Switch
	bestDist := reach * reach
	for _, s := range l.Switches {
		if d := s.CenterDistSq(x, y); d <= bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}
