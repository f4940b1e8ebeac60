package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"gridcaster/internal/config"
	"gridcaster/internal/logger"
	"gridcaster/internal/threading/core"
	"gridcaster/internal/world"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
)

// TextureRequest names an image file and the placeholder to use without it.
type TextureRequest struct {
	Name    string
	File    string
	Color   color.RGBA
	Pattern string
}

// TextureManager loads textures from a list of search directories and falls
// back to procedural placeholders for missing files.
type TextureManager struct {
	searchPaths []string

	mu    sync.Mutex
	cache map[string]*Texture
}

func NewTextureManager(searchPaths []string) *TextureManager {
	return &TextureManager{
		searchPaths: searchPaths,
		cache:       make(map[string]*Texture),
	}
}

// Load returns the texture for req, decoding it once per name.
func (tm *TextureManager) Load(req TextureRequest) *Texture {
	tm.mu.Lock()
	if tex, ok := tm.cache[req.Name]; ok {
		tm.mu.Unlock()
		return tex
	}
	tm.mu.Unlock()

	tex, err := tm.loadFile(req)
	if err != nil {
		logger.Warn("texture missing, using placeholder",
			zap.String("texture", req.Name),
			zap.String("file", req.File),
			zap.Error(err))
		tex = NewPlaceholder(req.Name, req.Color, req.Pattern)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if cached, ok := tm.cache[req.Name]; ok {
		return cached
	}
	tm.cache[req.Name] = tex
	return tex
}

// LoadAll decodes requests in parallel, preserving order.
func (tm *TextureManager) LoadAll(reqs []TextureRequest) []*Texture {
	return core.ParallelMap(reqs, tm.Load)
}

func (tm *TextureManager) loadFile(req TextureRequest) (*Texture, error) {
	if req.File == "" {
		return nil, fmt.Errorf("no file configured")
	}
	for _, dir := range tm.searchPaths {
		path := filepath.Join(dir, req.File)
		img, err := decodeFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return NewTexture(req.Name, img), nil
	}
	return nil, fmt.Errorf("%s not found in %v", req.File, tm.searchPaths)
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// TileTextures binds wall tile codes to textures (code c uses index c-1).
type TileTextures struct {
	textures []*Texture
}

func NewTileTextures(textures []*Texture) *TileTextures {
	return &TileTextures{textures: textures}
}

// TextureFor requires 1 <= code <= Len().
func (tt *TileTextures) TextureFor(code world.TileCode) (*Texture, error) {
	if code == world.TileEmpty || int(code) > len(tt.textures) {
		return nil, fmt.Errorf("texture for code %d of %d: %w", code, len(tt.textures), world.ErrInvalidTexture)
	}
	return tt.textures[code-1], nil
}

func (tt *TileTextures) Len() int {
	return len(tt.textures)
}

// LoadTileTextures loads one texture per tile definition, ordered by code.
func (tm *TextureManager) LoadTileTextures(tiles *world.TileManager) *TileTextures {
	defs := tiles.Definitions()
	reqs := make([]TextureRequest, len(defs))
	for i, def := range defs {
		reqs[i] = TextureRequest{
			Name:    def.Key,
			File:    def.Texture,
			Color:   RGBFromConfig(def.Color),
			Pattern: def.Pattern,
		}
	}
	textures := tm.LoadAll(reqs)
	logger.Info("tile textures loaded", zap.Int("count", len(textures)))
	return NewTileTextures(textures)
}

// LoadSpriteTextures loads the sprite images a level declares, keyed by image name.
func (tm *TextureManager) LoadSpriteTextures(images map[string]config.SpriteData) map[string]*Texture {
	names := make([]string, 0, len(images))
	reqs := make([]TextureRequest, 0, len(images))
	for name, data := range images {
		names = append(names, name)
		reqs = append(reqs, TextureRequest{
			Name:    "sprite:" + name,
			File:    data.Texture,
			Color:   RGBFromConfig(data.Color),
			Pattern: PatternSprite,
		})
	}

	textures := tm.LoadAll(reqs)
	out := make(map[string]*Texture, len(names))
	for i, name := range names {
		out[name] = textures[i]
	}
	return out
}
