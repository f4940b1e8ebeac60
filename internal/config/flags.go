package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagLevel      = flag.String("level", "", "Level name to load")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and perf snapshots")
	flagWidth      = flag.Int("width", 0, "Render width in pixels")
	flagHeight     = flag.Int("height", 0, "Render height in pixels")
	flagFastFloors = flag.Bool("fast-floors", false, "Use flat floor and ceiling fills")
	flagScreenshot = flag.String("screenshot", "", "Render one frame to this PNG file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// ScreenshotPath returns the -screenshot target, empty when not requested.
func ScreenshotPath() string {
	return *flagScreenshot
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagLevel != "" {
		cfg.Level.Name = *flagLevel
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.PerfLog = true
	}
	if *flagWidth > 0 {
		cfg.Render.ScreenWidth = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.ScreenHeight = *flagHeight
	}
	if *flagFastFloors {
		cfg.Render.FastFloors = true
	}
}
