package game

import (
	"gridcaster/internal/game/keytracker"
	"gridcaster/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a one-shot command triggered by a key press.
type Action int

const (
	ActionUse Action = iota
	ActionToggleShadows
	ActionToggleDarkShading
	ActionToggleNightvision
	ActionToggleFastFloors
	ActionToggleHUD
	ActionToggleMinimap
	ActionResetCamera
	ActionScreenshot
	ActionQuit
)

// settingFor maps toggle actions to render settings.
func settingFor(a Action) (session.Setting, bool) {
	switch a {
	case ActionToggleShadows:
		return session.SettingShadows, true
	case ActionToggleDarkShading:
		return session.SettingDarkShading, true
	case ActionToggleNightvision:
		return session.SettingNightvision, true
	case ActionToggleFastFloors:
		return session.SettingFastFloors, true
	}
	return 0, false
}

// InputHandler turns keyboard state into held controls and one-shot actions.
type InputHandler struct {
	bindings keytracker.Bindings[Action]
	pressed  func(ebiten.Key) bool
	actions  []Action
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	ih := &InputHandler{pressed: ebiten.IsKeyPressed}
	ih.bindings.Bind(ebiten.KeySpace, ActionUse)
	ih.bindings.Bind(ebiten.KeyF, ActionUse)
	ih.bindings.Bind(ebiten.KeyF1, ActionToggleShadows)
	ih.bindings.Bind(ebiten.KeyF2, ActionToggleDarkShading)
	ih.bindings.Bind(ebiten.KeyF3, ActionToggleNightvision)
	ih.bindings.Bind(ebiten.KeyF4, ActionToggleFastFloors)
	ih.bindings.Bind(ebiten.KeyTab, ActionToggleHUD)
	ih.bindings.Bind(ebiten.KeyM, ActionToggleMinimap)
	ih.bindings.Bind(ebiten.KeyBackspace, ActionResetCamera)
	return ih
}

// Controls reads the held movement keys.
func (ih *InputHandler) Controls() session.Controls {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ih.pressed(k) {
				return true
			}
		}
		return false
	}
	return session.Controls{
		Forward:     held(ebiten.KeyW, ebiten.KeyUp),
		Back:        held(ebiten.KeyS, ebiten.KeyDown),
		StrafeLeft:  held(ebiten.KeyQ),
		StrafeRight: held(ebiten.KeyE),
		TurnLeft:    held(ebiten.KeyA, ebiten.KeyLeft),
		TurnRight:   held(ebiten.KeyD, ebiten.KeyRight),
		LookUp:      held(ebiten.KeyPageUp),
		LookDown:    held(ebiten.KeyPageDown),
		Rise:        held(ebiten.KeyR),
		Sink:        held(ebiten.KeyC),
	}
}

// Actions returns the commands pressed this tick. The slice is reused.
func (ih *InputHandler) Actions() []Action {
	ih.actions = ih.bindings.Poll(ih.pressed, ih.actions[:0])
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		ih.actions = append(ih.actions, ActionScreenshot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ih.actions = append(ih.actions, ActionQuit)
	}
	return ih.actions
}
