// Package session wires a loaded level, its textures and a camera to the
// frame pipeline. Front ends drive it with Controls and draw the frames it
// returns.
package session

import (
	"fmt"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/logger"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/raycast"
	"gridcaster/internal/world"

	"go.uber.org/zap"
)

// Session is one running level.
type Session struct {
	Config   *config.Config
	Tiles    *world.TileManager
	Level    *world.Level
	Textures *graphics.TileTextures
	Camera   *camera.Camera
	Sprites  []raycast.Sprite

	pipeline *raycast.Pipeline
	floorTex *graphics.Texture
	ceilTex  *graphics.Texture
}

// Load reads the tile table, the configured level and every texture they
// name, and places the camera at the level start.
func Load(cfg *config.Config, opts ...raycast.Option) (*Session, error) {
	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.Assets.TilesFile); err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}

	level, err := world.LoadLevel(cfg.Level.File, cfg.Level.Name, tiles)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	texMgr := graphics.NewTextureManager(cfg.Assets.TextureDirs)
	textures := texMgr.LoadTileTextures(tiles)

	floorTex, err := textures.TextureFor(level.FloorTile)
	if err != nil {
		return nil, fmt.Errorf("floor texture: %w", err)
	}
	ceilTex, err := textures.TextureFor(level.CeilingTile)
	if err != nil {
		return nil, fmt.Errorf("ceiling texture: %w", err)
	}

	spriteTex := texMgr.LoadSpriteTextures(level.SpriteImages)
	sprites := make([]raycast.Sprite, 0, len(level.Sprites))
	for _, p := range level.Sprites {
		sprites = append(sprites, raycast.Sprite{
			Name:    p.Image,
			Pos:     mathutil.V(p.X, p.Y),
			Texture: spriteTex[p.Image],
		})
	}

	s := &Session{
		Config:   cfg,
		Tiles:    tiles,
		Level:    level,
		Textures: textures,
		Sprites:  sprites,
		pipeline: raycast.NewPipeline(&cfg.Render, opts...),
		floorTex: floorTex,
		ceilTex:  ceilTex,
	}
	s.ResetCamera()

	logger.Info("session ready",
		zap.String("level", level.Name),
		zap.Int("textures", textures.Len()),
		zap.Int("sprites", len(sprites)))
	return s, nil
}

// ResetCamera puts the camera back at the level start.
func (s *Session) ResetCamera() {
	st := s.Level.Start
	cam := camera.New(mathutil.V(st.X, st.Y), mathutil.V(st.DirX, st.DirY), s.Config.Camera.PlaneLength)
	cam.PitchLimit = s.Config.Render.PitchLimit
	cam.HeightLimit = s.Config.Render.HeightLimit
	s.Camera = cam
}

// Scene assembles the pipeline input for the current state. The floor
// strategy follows the fast floors setting at call time.
func (s *Session) Scene() raycast.Scene {
	return raycast.Scene{
		Grid:     s.Level.Grid,
		Textures: s.Textures,
		Camera:   s.Camera,
		Sprites:  s.Sprites,
		Floor:    raycast.NewFloorCaster(&s.Config.Render, s.floorTex, s.ceilTex),
	}
}

// Render produces the next frame. It is valid until the following call.
func (s *Session) Render() (*raycast.Frame, error) {
	return s.pipeline.Render(s.Scene())
}
