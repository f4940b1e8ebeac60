package world

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gridcaster/internal/logger"

	"go.uber.org/zap"
)

// MapLoader handles loading tile grids from text files.
//
// A map file holds one grid row per line as whitespace- or comma-separated
// tile codes. Blank lines and lines starting with # are skipped.
type MapLoader struct{}

// NewMapLoader creates a new map loader
func NewMapLoader() *MapLoader {
	return &MapLoader{}
}

// LoadMap loads a grid from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*Grid, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	var tiles []TileCode
	columns := 0
	rows := 0
	lineNo := 0
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", mapPath, lineNo, err)
		}
		if columns == 0 {
			columns = len(row)
		} else if len(row) != columns {
			return nil, fmt.Errorf("%s:%d: row has %d tiles, expected %d", mapPath, lineNo, len(row), columns)
		}
		tiles = append(tiles, row...)
		rows++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}

	if rows == 0 {
		return nil, fmt.Errorf("map file %s contains no valid map data", mapPath)
	}

	logger.Debug("map loaded", zap.String("path", mapPath), zap.Int("rows", rows), zap.Int("columns", columns))
	return NewGrid(columns, tiles)
}

func parseRow(line string) ([]TileCode, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	row := make([]TileCode, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid tile code %q: %w", f, err)
		}
		row = append(row, TileCode(v))
	}
	return row, nil
}
