// Command termview renders a level into the terminal with half-block
// characters: each cell shows two pixels, the upper one as the foreground
// of '▀' and the lower one as the background.
package main

import (
	"fmt"
	"os"

	"gridcaster/internal/config"
	"gridcaster/internal/logger"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const defaultLogFile = "termview.log"

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to tcell, so logs only go to a file.
	logPath := cfg.Logging.LogFile
	if logPath == "" {
		logPath = defaultLogFile
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logPath), false); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start tcell: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init tcell.Screen: %v\n", err)
		os.Exit(1)
	}

	v, err := newViewer(cfg, screen)
	if err != nil {
		screen.Fini()
		logger.Error("viewer setup failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
	v.run()
	v.close()
	screen.Fini()
}
