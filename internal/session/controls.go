package session

import (
	"gridcaster/internal/logger"
	"gridcaster/internal/world"

	"go.uber.org/zap"
)

// Controls is the held-key state for one update.
type Controls struct {
	Forward, Back           bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
	LookUp, LookDown        bool
	Rise, Sink              bool
}

// Step advances the camera by dt seconds of input.
func (s *Session) Step(c Controls, dt float64) {
	mv := s.Config.Movement
	move, turn := s.Config.GetMoveSpeed()*dt, s.Config.GetRotationSpeed()*dt
	cam := s.Camera
	grid := s.Level.Grid

	if c.Forward {
		cam.Move(move, grid)
	}
	if c.Back {
		cam.Move(-move, grid)
	}
	if c.StrafeRight {
		cam.Strafe(move, grid)
	}
	if c.StrafeLeft {
		cam.Strafe(-move, grid)
	}
	if c.TurnLeft {
		cam.Rotate(turn)
	}
	if c.TurnRight {
		cam.Rotate(-turn)
	}
	if c.LookUp {
		cam.Look(mv.LookSpeed * dt)
	}
	if c.LookDown {
		cam.Look(-mv.LookSpeed * dt)
	}
	if c.Rise {
		cam.Raise(mv.RaiseSpeed * dt)
	}
	if c.Sink {
		cam.Raise(-mv.RaiseSpeed * dt)
	}
}

// Use activates the nearest switch within reach. It returns the switch and
// whether the grid changed; nil when nothing is in reach.
func (s *Session) Use() (*world.Switch, bool, error) {
	pos := s.Camera.Pos
	sw := s.Level.SwitchNear(pos.X, pos.Y, s.Config.Movement.InteractReach)
	if sw == nil {
		return nil, false, nil
	}

	row, col := s.Camera.Cell()
	changed, err := sw.Activate(s.Level.Grid, row, col)
	if err != nil {
		return sw, false, err
	}
	if changed {
		code, _ := s.Level.Grid.TileAt(sw.Row, sw.Col)
		logger.Debug("switch used", zap.String("switch", sw.Name), zap.Uint32("tile", uint32(code)))
	}
	return sw, changed, nil
}

// Setting is a render toggle.
type Setting int

const (
	SettingShadows Setting = iota
	SettingDarkShading
	SettingNightvision
	SettingFastFloors
)

func (st Setting) String() string {
	switch st {
	case SettingShadows:
		return "shadows"
	case SettingDarkShading:
		return "dark shading"
	case SettingNightvision:
		return "nightvision"
	case SettingFastFloors:
		return "fast floors"
	default:
		return "unknown"
	}
}

// Toggle flips a render setting and returns its new value. The change is
// seen by the next Render.
func (s *Session) Toggle(st Setting) bool {
	r := &s.Config.Render
	var v *bool
	switch st {
	case SettingShadows:
		v = &r.Shadows
	case SettingDarkShading:
		v = &r.DarkShading
	case SettingNightvision:
		v = &r.Nightvision
	case SettingFastFloors:
		v = &r.FastFloors
	default:
		return false
	}
	*v = !*v
	logger.Debug("setting toggled", zap.Stringer("setting", st), zap.Bool("on", *v))
	return *v
}
