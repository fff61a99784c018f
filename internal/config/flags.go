package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagRoot       = flag.String("root", "", "Root path for assets and the error log")
	flagFirstState = flag.String("first-state", "", "Id of the first game state")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFPS        = flag.Int("fps", -1, "Frame rate limit (0 = unpaced)")
	flagMute       = flag.Bool("mute", false, "Disable audio")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRoot != "" {
		cfg.RootPath = *flagRoot
	}
	if *flagFirstState != "" {
		cfg.FirstState = *flagFirstState
	}
	if *flagWindowed {
		cfg.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.WindowWidth = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.WindowHeight = *flagHeight
	}
	if *flagFPS >= 0 {
		cfg.FPSLimit = *flagFPS
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
