package session

import (
	"math"
	"testing"

	"gridcaster/internal/config"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/raycast"
	"gridcaster/internal/world"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Assets.TilesFile = "../../assets/tiles.yaml"
	cfg.Assets.TextureDirs = []string{t.TempDir()}
	cfg.Level.File = "../../assets/levels/levels.yaml"
	cfg.Level.Name = "station"
	cfg.Render.ScreenWidth = 64
	cfg.Render.ScreenHeight = 48
	return cfg
}

func loadStation(t *testing.T) *Session {
	t.Helper()
	s, err := Load(testConfig(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLoadAndRenderStation(t *testing.T) {
	s := loadStation(t)

	if s.Textures.Len() != 14 {
		t.Errorf("Expected 14 wall textures, got %d", s.Textures.Len())
	}
	if len(s.Sprites) != 20 {
		t.Errorf("Expected 20 sprites, got %d", len(s.Sprites))
	}
	for _, sp := range s.Sprites {
		if sp.Texture == nil {
			t.Errorf("sprite %q has no texture", sp.Name)
		}
	}
	if s.Camera.Pos != mathutil.V(22, 11.5) {
		t.Errorf("Expected start (22, 11.5), got %v", s.Camera.Pos)
	}

	f, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Stats.Escaped != 0 || f.Stats.InvalidTextures != 0 {
		t.Errorf("Closed level should hit a wall in every column, got %+v", f.Stats)
	}
	if len(f.Walls) != 64 {
		t.Errorf("Expected 64 wall commands, got %d", len(f.Walls))
	}
}

func TestLoadUnknownLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Level.Name = "nowhere"
	if _, err := Load(cfg); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestStepMovesAndTurns(t *testing.T) {
	s := loadStation(t)

	s.Step(Controls{Forward: true}, 0.1)
	if math.Abs(s.Camera.Pos.X-21.6) > 1e-9 || s.Camera.Pos.Y != 11.5 {
		t.Errorf("Expected (21.6, 11.5) after moving forward, got %v", s.Camera.Pos)
	}

	planeLen := s.Camera.Plane.Len()
	s.Step(Controls{TurnLeft: true}, 0.25)
	if math.Abs(s.Camera.Dir.Len()-1) > 1e-9 || math.Abs(s.Camera.Plane.Len()-planeLen) > 1e-9 {
		t.Error("Turning must keep dir and plane lengths")
	}
	if math.Abs(s.Camera.Dir.Dot(s.Camera.Plane)) > 1e-9 {
		t.Error("Turning must keep dir and plane perpendicular")
	}

	s.Step(Controls{LookUp: true, Rise: true}, 10)
	if s.Camera.Pitch != s.Config.Render.PitchLimit || s.Camera.Z != s.Config.Render.HeightLimit {
		t.Errorf("Expected pitch and height clamped, got %v and %v", s.Camera.Pitch, s.Camera.Z)
	}

	s.ResetCamera()
	if s.Camera.Pos != mathutil.V(22, 11.5) || s.Camera.Pitch != 0 {
		t.Error("ResetCamera should restore the start")
	}
}

func TestUseDoor(t *testing.T) {
	s := loadStation(t)
	grid := s.Level.Grid

	if sw, _, _ := s.Use(); sw != nil {
		t.Fatalf("No switch should be in reach at the start, got %q", sw.Name)
	}

	s.Camera.Pos = mathutil.V(20.5, 9.5)
	sw, changed, err := s.Use()
	if err != nil || sw == nil || !changed {
		t.Fatalf("Use = (%v, %v, %v), want the south door opened", sw, changed, err)
	}
	if code, _ := grid.TileAt(20, 8); code != world.TileEmpty {
		t.Errorf("Door should be open, cell holds %d", code)
	}

	// Standing in the doorway keeps it open.
	s.Camera.Pos = mathutil.V(20.5, 8.5)
	if _, changed, _ := s.Use(); changed {
		t.Error("Door must not close on the player")
	}

	s.Camera.Pos = mathutil.V(20.5, 9.5)
	if _, changed, _ := s.Use(); !changed {
		t.Error("Door should close again")
	}
	if code, _ := grid.TileAt(20, 8); code != 12 {
		t.Errorf("Door should be closed, cell holds %d", code)
	}
}

func TestToggleAffectsNextFrame(t *testing.T) {
	s := loadStation(t)

	if on := s.Toggle(SettingNightvision); !on {
		t.Fatal("Nightvision should now be on")
	}
	f, err := s.Render()
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range f.Walls {
		if w.Tint != raycast.NightvisionTint {
			t.Fatalf("Expected nightvision tint, got %v", w.Tint)
		}
	}

	if s.Toggle(SettingFastFloors) != true {
		t.Error("Fast floors should now be on")
	}
	if _, ok := s.Scene().Floor.(raycast.FlatFloor); !ok {
		t.Error("Fast floors should select the flat floor")
	}

	if s.Toggle(SettingShadows) {
		t.Error("Shadows start on, toggle should turn them off")
	}
	if SettingDarkShading.String() != "dark shading" {
		t.Errorf("unexpected name %q", SettingDarkShading)
	}
}
