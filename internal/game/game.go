// Package game is the ebiten front end: it feeds keyboard input to a
// session and presents the frames the session renders.
package game

import (
	"fmt"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/logger"
	"gridcaster/internal/raster"
	"gridcaster/internal/raycast"
	"gridcaster/internal/session"
	"gridcaster/internal/threading"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Game implements ebiten.Game over a session.
type Game struct {
	config    *config.Config
	session   *session.Session
	threading *threading.ThreadingComponents
	input     *InputHandler
	renderer  *FrameRenderer
	hud       *HUD

	showHUD     bool
	showMinimap bool
	screenshot  bool
	renderErr   error

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	perfDebugEnabled   bool
	perfLowFpsSince    time.Time
	perfLastPerfLog    time.Time
}

// NewGame creates the front end for a loaded session.
func NewGame(cfg *config.Config, s *session.Session, tc *threading.ThreadingComponents) *Game {
	return &Game{
		config:           cfg,
		session:          s,
		threading:        tc,
		input:            NewInputHandler(),
		renderer:         NewFrameRenderer(tc.SliceCache, tc.CommandBatch),
		hud:              NewHUD(s.Tiles),
		showHUD:          cfg.Debug.ShowHUD,
		showMinimap:      cfg.Debug.ShowMinimap,
		perfDebugEnabled: cfg.Debug.PerfLog,
	}
}

func (g *Game) tickSeconds() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = g.config.GetTPS()
	}
	return 1 / float64(tps)
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() { g.lastUpdateDuration = time.Since(start) }()

	g.session.Step(g.input.Controls(), g.tickSeconds())

	for _, a := range g.input.Actions() {
		if err := g.apply(a); err != nil {
			return err
		}
	}

	g.maybeLogPerfDrop()
	return nil
}

// apply runs a one-shot action. It returns ebiten.Termination on quit.
func (g *Game) apply(a Action) error {
	if st, ok := settingFor(a); ok {
		on := g.session.Toggle(st)
		g.hud.Notify(fmt.Sprintf("%s %s", st, onOff(on)))
		return nil
	}

	switch a {
	case ActionUse:
		sw, changed, err := g.session.Use()
		switch {
		case err != nil:
			logger.Warn("switch failed", zap.Error(err))
		case sw == nil:
			g.hud.Notify("nothing to use")
		case !changed:
			g.hud.Notify(sw.Name + " is blocked")
		default:
			g.hud.Notify(sw.Name)
		}
	case ActionToggleHUD:
		g.showHUD = !g.showHUD
	case ActionToggleMinimap:
		g.showMinimap = !g.showMinimap
	case ActionResetCamera:
		g.session.ResetCamera()
	case ActionScreenshot:
		g.screenshot = true
	case ActionQuit:
		return ebiten.Termination
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() { g.lastDrawDuration = time.Since(start) }()

	frameTimer := g.threading.PerformanceMonitor.StartFrame()
	frame, err := g.session.Render()
	frameTimer.EndFrame()
	if err != nil {
		if g.renderErr == nil || g.renderErr.Error() != err.Error() {
			logger.Error("render failed", zap.Error(err))
		}
		g.renderErr = err
		return
	}
	g.renderErr = nil

	g.renderer.Draw(screen, frame)
	st := frame.Stats
	g.threading.PerformanceMonitor.RecordFrameStats(st.Columns, st.Escaped, st.InvalidTextures, st.SpriteColumns)

	if g.screenshot {
		g.screenshot = false
		g.saveScreenshot(frame)
	}

	if g.showMinimap {
		g.hud.DrawMinimap(screen, g.session.Level.Grid, g.session.Camera)
	}
	if g.showHUD {
		g.hud.Draw(screen, &g.config.Render, ebiten.ActualFPS())
		g.hud.DrawHelp(screen)
	}
}

// saveScreenshot writes the software composite of frame, without the overlay.
func (g *Game) saveScreenshot(frame *raycast.Frame) {
	path := fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
	if err := raster.SavePNG(path, raster.Render(frame)); err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	g.hud.Notify("saved " + path)
	logger.Info("screenshot saved", zap.String("path", path))
}

// Layout fixes the logical screen to the render target; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetRenderWidth(), g.config.GetRenderHeight()
}

// Close releases GPU resources.
func (g *Game) Close() {
	g.renderer.Close()
}
