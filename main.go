package main

import (
	"fmt"
	"log"
	"os"

	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/logger"
	"gridcaster/internal/raster"
	"gridcaster/internal/raycast"
	"gridcaster/internal/session"
	"gridcaster/internal/threading"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatalf("logger: %v", err)
	}

	err = run(cfg)
	if err != nil {
		logger.Error("exiting", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource that needs cleanup, so its defers finish before
// main decides the exit code.
func run(cfg *config.Config) error {
	tc := threading.NewThreadingComponents(cfg.Threading)
	defer tc.Shutdown()

	s, err := session.Load(cfg,
		raycast.WithParallel(tc.Parallel()),
		raycast.WithProfiler(tc.PerformanceMonitor))
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}

	if path := config.ScreenshotPath(); path != "" {
		if err := screenshot(s, cfg, path); err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
		logger.Info("screenshot saved", zap.String("path", path))
		return nil
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())

	g := game.NewGame(cfg, s, tc)
	defer g.Close()
	return ebiten.RunGame(g)
}

// screenshot renders one frame in software, scales it to the window size and
// writes it as PNG.
func screenshot(s *session.Session, cfg *config.Config, path string) error {
	f, err := s.Render()
	if err != nil {
		return err
	}
	img := raster.Scale(raster.Render(f), cfg.GetScreenWidth(), cfg.GetScreenHeight())
	return raster.SavePNG(path, img)
}
