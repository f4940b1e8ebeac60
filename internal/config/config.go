// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRender is returned when render settings cannot drive a frame.
var ErrInvalidRender = errors.New("invalid render config")

// Config holds all configuration values
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Movement  MovementConfig  `yaml:"movement"`
	Level     LevelConfig     `yaml:"level"`
	Assets    AssetsConfig    `yaml:"assets"`
	Threading ThreadingConfig `yaml:"threading"`
	Logging   LoggingConfig   `yaml:"logging"`
	Debug     DebugConfig     `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

// RenderConfig is the shading/render parameter table read by the frame pipeline.
// ScreenWidth/ScreenHeight are the internal render resolution, not the window size.
type RenderConfig struct {
	Shadows                 bool    `yaml:"shadows"`
	DarkShading             bool    `yaml:"dark_shading"`
	Nightvision             bool    `yaml:"nightvision"`
	FastFloors              bool    `yaml:"fast_floors"`
	WallShadingMultiplier   float64 `yaml:"wall_shading_multiplier"`
	FloorShadingMultiplier  float64 `yaml:"floor_shading_multiplier"`
	CeilShadingMultiplier   float64 `yaml:"ceil_shading_multiplier"`
	SpriteShadingMultiplier float64 `yaml:"sprite_shading_multiplier"`
	ScreenWidth             int     `yaml:"screen_width"`
	ScreenHeight            int     `yaml:"screen_height"`
	PitchLimit              float64 `yaml:"pitch_limit"`
	HeightLimit             float64 `yaml:"height_limit"`
}

type CameraConfig struct {
	// PlaneLength is the camera plane magnitude; 0.66 gives roughly a 66 degree FOV.
	PlaneLength float64 `yaml:"plane_length"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	LookSpeed     float64 `yaml:"look_speed"`  // pitch pixels per second
	RaiseSpeed    float64 `yaml:"raise_speed"` // height units per second
	InteractReach float64 `yaml:"interact_reach"`
}

type LevelConfig struct {
	File string `yaml:"file"`
	Name string `yaml:"name"`
}

type AssetsConfig struct {
	TilesFile   string   `yaml:"tiles_file"`
	TextureDirs []string `yaml:"texture_dirs"`
}

type ThreadingConfig struct {
	Parallel bool `yaml:"parallel"`
	Workers  int  `yaml:"workers"` // 0 means one per CPU
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

type DebugConfig struct {
	PerfLog     bool `yaml:"perf_log"`
	ShowMinimap bool `yaml:"show_minimap"`
	ShowHUD     bool `yaml:"show_hud"`
}

// TileConfig is the wall tile table (assets/tiles.yaml).
type TileConfig struct {
	TileData map[string]TileData `yaml:"tiles"`
}

type TileData struct {
	Code    uint32 `yaml:"code"`
	Texture string `yaml:"texture"`
	Color   [3]int `yaml:"color"` // placeholder color when the texture file is missing
	Pattern string `yaml:"pattern"`
}

// SpriteData binds a sprite texture name to its image file.
type SpriteData struct {
	Texture string `yaml:"texture"`
	Color   [3]int `yaml:"color"`
}

type MapConfig struct {
	Name         string                `yaml:"name"`
	File         string                `yaml:"file"`
	FloorTile    uint32                `yaml:"floor_tile"`
	CeilingTile  uint32                `yaml:"ceiling_tile"`
	Start        StartConfig           `yaml:"start"`
	SpriteImages map[string]SpriteData `yaml:"sprite_images"`
	Sprites      []SpritePlacement     `yaml:"sprites"`
	Switches     []SwitchConfig        `yaml:"switches"`
}

type StartConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	DirX float64 `yaml:"dir_x"`
	DirY float64 `yaml:"dir_y"`
}

type SpritePlacement struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Image string  `yaml:"image"`
}

// SwitchConfig describes a cell that flips between two tile codes when used.
type SwitchConfig struct {
	Name string `yaml:"name"`
	Row  int    `yaml:"row"`
	Col  int    `yaml:"col"`
	On   uint32 `yaml:"on"`
	Off  uint32 `yaml:"off"`
}

type MapConfigs struct {
	Maps map[string]MapConfig `yaml:"maps"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 896,
			WindowTitle:  "gridcaster",
			Resizable:    true,
			TPS:          60,
		},
		Render: RenderConfig{
			Shadows:                 true,
			DarkShading:             true,
			WallShadingMultiplier:   0.2,
			FloorShadingMultiplier:  0.25,
			CeilShadingMultiplier:   0.3,
			SpriteShadingMultiplier: 0.2,
			ScreenWidth:             256,
			ScreenHeight:            224,
			PitchLimit:              100,
			HeightLimit:             100,
		},
		Camera: CameraConfig{
			PlaneLength: 0.66,
		},
		Movement: MovementConfig{
			MoveSpeed:     4,
			RotationSpeed: 3,
			LookSpeed:     200,
			RaiseSpeed:    150,
			InteractReach: 1.5,
		},
		Level: LevelConfig{
			File: "assets/levels/levels.yaml",
			Name: "station",
		},
		Assets: AssetsConfig{
			TilesFile:   "assets/tiles.yaml",
			TextureDirs: []string{"assets/textures", "assets/sprites"},
		},
		Threading: ThreadingConfig{
			Parallel: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			ShowHUD: true,
		},
	}
}

// Validate checks the render table for values the frame pipeline cannot use.
func (r *RenderConfig) Validate() error {
	if r.ScreenWidth <= 0 || r.ScreenHeight <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidRender, r.ScreenWidth, r.ScreenHeight)
	}
	if r.PitchLimit < 0 || r.HeightLimit < 0 {
		return fmt.Errorf("%w: negative pitch/height limit", ErrInvalidRender)
	}
	if r.WallShadingMultiplier <= 0 || r.FloorShadingMultiplier <= 0 ||
		r.CeilShadingMultiplier <= 0 || r.SpriteShadingMultiplier <= 0 {
		return fmt.Errorf("%w: shading multipliers must be positive", ErrInvalidRender)
	}
	return nil
}

// Global config instance
var GlobalConfig *Config

// LoadConfig loads the configuration from a YAML file on top of the defaults.
func LoadConfig(filename string) (*Config, error) {
	config := Default()
	if err := loadFromFile(config, filename); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", filename, err)
	}
	if err := config.Render.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetRenderWidth() int {
	return c.Render.ScreenWidth
}

func (c *Config) GetRenderHeight() int {
	return c.Render.ScreenHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotationSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetTPS() int {
	if c.Display.TPS <= 0 {
		return 60
	}
	return c.Display.TPS
}
