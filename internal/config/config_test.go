package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRenderIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Render.Validate(); err != nil {
		t.Fatalf("default render config invalid: %v", err)
	}
	if cfg.Render.ScreenWidth != 256 || cfg.Render.ScreenHeight != 224 {
		t.Errorf("expected 256x224 render target, got %dx%d", cfg.Render.ScreenWidth, cfg.Render.ScreenHeight)
	}
	if cfg.Camera.PlaneLength != 0.66 {
		t.Errorf("expected plane length 0.66, got %v", cfg.Camera.PlaneLength)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
render:
  nightvision: true
  screen_width: 320
movement:
  move_speed: 6
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.Render.Nightvision {
		t.Error("expected nightvision from file")
	}
	if cfg.GetRenderWidth() != 320 {
		t.Errorf("expected render width 320, got %d", cfg.GetRenderWidth())
	}
	// Untouched keys keep their defaults.
	if cfg.GetRenderHeight() != 224 {
		t.Errorf("expected default render height 224, got %d", cfg.GetRenderHeight())
	}
	if cfg.GetMoveSpeed() != 6 {
		t.Errorf("expected move speed 6, got %v", cfg.GetMoveSpeed())
	}
	if cfg.GetRotationSpeed() != 3 {
		t.Errorf("expected default rotation speed 3, got %v", cfg.GetRotationSpeed())
	}
	if GlobalConfig != cfg {
		t.Error("LoadConfig should set GlobalConfig")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestRenderValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RenderConfig)
	}{
		{"zero width", func(r *RenderConfig) { r.ScreenWidth = 0 }},
		{"negative height", func(r *RenderConfig) { r.ScreenHeight = -1 }},
		{"negative pitch limit", func(r *RenderConfig) { r.PitchLimit = -5 }},
		{"zero wall multiplier", func(r *RenderConfig) { r.WallShadingMultiplier = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default().Render
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidRender) {
				t.Errorf("expected ErrInvalidRender, got %v", err)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := Default()
	*flagDebug = true
	*flagWidth = 128
	*flagLevel = "annex"
	defer func() {
		*flagDebug = false
		*flagWidth = 0
		*flagLevel = ""
	}()

	applyFlags(cfg)

	if cfg.Logging.Level != "debug" || !cfg.Debug.PerfLog {
		t.Error("debug flag should enable debug logging and perf log")
	}
	if cfg.Render.ScreenWidth != 128 {
		t.Errorf("expected width 128, got %d", cfg.Render.ScreenWidth)
	}
	if cfg.Level.Name != "annex" {
		t.Errorf("expected level annex, got %q", cfg.Level.Name)
	}
}
