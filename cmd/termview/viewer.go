package main

import (
	"fmt"
	"image"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/logger"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/raster"
	"gridcaster/internal/raycast"
	"gridcaster/internal/session"
	"gridcaster/internal/threading"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const (
	frameInterval = 33 * time.Millisecond
	// Terminals deliver key repeats rather than held state, so each press
	// advances the camera by a fixed slice of time.
	keyStep = 0.08
)

type viewer struct {
	cfg       *config.Config
	screen    tcell.Screen
	session   *session.Session
	threading *threading.ThreadingComponents
	img       *image.RGBA
	status    string
}

func newViewer(cfg *config.Config, screen tcell.Screen) (*viewer, error) {
	screen.HideCursor()
	screen.Clear()

	v := &viewer{cfg: cfg, screen: screen}
	v.fit()

	tc := threading.NewThreadingComponents(cfg.Threading)
	s, err := session.Load(cfg,
		raycast.WithParallel(tc.Parallel()),
		raycast.WithProfiler(tc.PerformanceMonitor))
	if err != nil {
		tc.Shutdown()
		return nil, err
	}
	v.session = s
	v.threading = tc
	return v, nil
}

// fit sizes the render target to the terminal, keeping the last row for status.
func (v *viewer) fit() {
	cols, rows := v.screen.Size()
	w, h := renderSize(cols, rows)
	v.cfg.Render.ScreenWidth = w
	v.cfg.Render.ScreenHeight = h
	logger.Debug("render target", zap.Int("width", w), zap.Int("height", h))
}

// renderSize maps a terminal of cols x rows cells to a pixel size: one pixel
// per column and two per row, minus the status row.
func renderSize(cols, rows int) (int, int) {
	return mathutil.IntMax(cols, 1), mathutil.IntMax(rows-1, 1) * 2
}

func (v *viewer) run() {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				quit, changed := v.handleKey(ev.Key(), ev.Rune())
				if quit {
					return
				}
				dirty = dirty || changed
			case *tcell.EventResize:
				v.screen.Sync()
				v.fit()
				dirty = true
			}
		case <-ticker.C:
			if dirty {
				v.draw()
				dirty = false
			}
		}
	}
}

// handleKey applies one key press. It reports whether to quit and whether
// the view changed.
func (v *viewer) handleKey(k tcell.Key, r rune) (quit, changed bool) {
	a := actionForKey(k, r)
	switch a {
	case actionQuit:
		return true, false
	case actionUse:
		sw, ok, err := v.session.Use()
		switch {
		case err != nil:
			logger.Warn("switch failed", zap.Error(err))
		case sw == nil:
			v.status = "nothing to use"
		case !ok:
			v.status = sw.Name + " is blocked"
		default:
			v.status = sw.Name
		}
		return false, true
	case actionReset:
		v.session.ResetCamera()
		return false, true
	case actionNone:
	default:
		if st, ok := settingForAction(a); ok {
			on := v.session.Toggle(st)
			v.status = fmt.Sprintf("%s %v", st, on)
			return false, true
		}
	}

	if c, ok := controlsForKey(k, r); ok {
		v.session.Step(c, keyStep)
		return false, true
	}
	return false, false
}

func (v *viewer) draw() {
	timer := v.threading.PerformanceMonitor.StartFrame()
	f, err := v.session.Render()
	timer.EndFrame()
	if err != nil {
		logger.Error("render failed", zap.Error(err))
		return
	}
	if v.img == nil || v.img.Bounds().Dx() != f.Width || v.img.Bounds().Dy() != f.Height {
		v.img = image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	}
	raster.Composite(v.img, f)
	v.threading.PerformanceMonitor.RecordFrameStats(f.Stats.Columns, f.Stats.Escaped, f.Stats.InvalidTextures, f.Stats.SpriteColumns)

	drawHalfBlocks(v.screen.SetContent, v.img)

	_, rows := v.screen.Size()
	m := v.threading.PerformanceMonitor.GetCurrentMetrics()
	line := fmt.Sprintf(" render %v  %s", m.FrameTime.Round(time.Microsecond), v.status)
	drawText(v.screen.SetContent, 0, rows-1, line, f.Width)
	v.screen.Show()
}

func (v *viewer) close() {
	if v.threading != nil {
		v.threading.Shutdown()
	}
}
