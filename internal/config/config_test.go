package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.RootPath != "." {
		t.Errorf("expected root path '.', got %s", cfg.RootPath)
	}
	if cfg.WindowTitle != "UbiEngine" {
		t.Errorf("expected title UbiEngine, got %s", cfg.WindowTitle)
	}
	if cfg.WindowWidth != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.WindowWidth)
	}
	if cfg.WindowHeight != 720 {
		t.Errorf("expected height 720, got %d", cfg.WindowHeight)
	}
	if cfg.FirstState != "" {
		t.Errorf("expected no first state by default, got %s", cfg.FirstState)
	}
	if len(cfg.InputManagers) != 0 {
		t.Errorf("expected no input managers, got %v", cfg.InputManagers)
	}
	if !cfg.VSync {
		t.Error("expected vsync to be true by default")
	}
	if !cfg.Audio.Enabled {
		t.Error("expected audio to be enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestValidateMissingFirstState(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}

	// Defaults are filled even when validation fails
	if cfg.RootPath != "." {
		t.Errorf("expected root path '.', got %q", cfg.RootPath)
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := &Config{FirstState: "title", FPSLimit: -5}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RootPath != DefaultRootPath {
		t.Errorf("root path = %q, want %q", cfg.RootPath, DefaultRootPath)
	}
	if cfg.WindowTitle != DefaultWindowTitle {
		t.Errorf("title = %q, want %q", cfg.WindowTitle, DefaultWindowTitle)
	}
	if cfg.WindowWidth != DefaultWindowWidth || cfg.WindowHeight != DefaultWindowHeight {
		t.Errorf("size = %dx%d, want %dx%d", cfg.WindowWidth, cfg.WindowHeight, DefaultWindowWidth, DefaultWindowHeight)
	}
	if cfg.FPSLimit != 0 {
		t.Errorf("fps limit = %d, want 0", cfg.FPSLimit)
	}
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		RootPath:     "/games/demo",
		WindowTitle:  "Demo",
		WindowWidth:  640,
		WindowHeight: 480,
		FirstState:   "title",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RootPath != "/games/demo" || cfg.WindowTitle != "Demo" {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
	if cfg.WindowWidth != 640 || cfg.WindowHeight != 480 {
		t.Errorf("explicit size overwritten: %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ubiengine.yaml")

	yamlContent := `
root_path: assets
window_title: "Pong"
window_width: 800
window_height: 600
fullscreen: true
vsync: false
fps_limit: 144
first_state: title
input_managers:
  - keyboard
  - mouse

audio:
  enabled: false
  master_volume: 0.5

logging:
  level: "debug"
  log_file: "game.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.RootPath != filepath.Join(tmpDir, "assets") {
		t.Errorf("expected root path relative to config file, got %s", cfg.RootPath)
	}
	if cfg.WindowTitle != "Pong" {
		t.Errorf("expected title Pong, got %s", cfg.WindowTitle)
	}
	if cfg.WindowWidth != 800 || cfg.WindowHeight != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if !cfg.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.FPSLimit)
	}
	if cfg.FirstState != "title" {
		t.Errorf("expected first state 'title', got %s", cfg.FirstState)
	}
	if len(cfg.InputManagers) != 2 || cfg.InputManagers[0] != "keyboard" || cfg.InputManagers[1] != "mouse" {
		t.Errorf("unexpected input managers %v", cfg.InputManagers)
	}
	if cfg.Audio.Enabled {
		t.Error("expected audio to be disabled")
	}
	if cfg.Audio.MasterVolume != 0.5 {
		t.Errorf("expected master volume 0.5, got %f", cfg.Audio.MasterVolume)
	}
	// Untouched keys keep their defaults
	if cfg.Audio.SFXVolume != 1.0 {
		t.Errorf("expected sfx volume default 1.0, got %f", cfg.Audio.SFXVolume)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileAbsoluteRoot(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ubiengine.yaml")

	if err := os.WriteFile(configPath, []byte("root_path: /srv/game\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.RootPath != "/srv/game" {
		t.Errorf("expected absolute root kept, got %s", cfg.RootPath)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window_width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/path/ubiengine.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "ubiengine.yaml"), []byte("first_state: title\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find ubiengine.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "root and first state flags",
			setup: func() {
				*flagRoot = "/tmp/game"
				*flagFirstState = "play"
			},
			verify: func(cfg *Config) {
				if cfg.RootPath != "/tmp/game" {
					t.Errorf("expected root /tmp/game, got %s", cfg.RootPath)
				}
				if cfg.FirstState != "play" {
					t.Errorf("expected first state play, got %s", cfg.FirstState)
				}
			},
			teardown: func() {
				*flagRoot = ""
				*flagFirstState = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.WindowWidth != 2560 || cfg.WindowHeight != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "fps and mute flags",
			setup: func() {
				*flagFPS = 0
				*flagMute = true
			},
			verify: func(cfg *Config) {
				if cfg.FPSLimit != 0 {
					t.Errorf("expected unpaced, got %d", cfg.FPSLimit)
				}
				if cfg.Audio.Enabled {
					t.Error("expected audio disabled with mute flag")
				}
			},
			teardown: func() {
				*flagFPS = -1
				*flagMute = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ubiengine.yaml")

	yamlContent := `
window_width: 1600
window_height: 900
first_state: title
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.WindowWidth != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.WindowWidth)
	}
	if cfg.WindowHeight != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.WindowHeight)
	}
	if cfg.FirstState != "title" {
		t.Errorf("expected first state from file, got %s", cfg.FirstState)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ubiengine.yaml")

	cfg := Default()
	cfg.RootPath = "/srv/game"
	cfg.FirstState = "title"
	cfg.InputManagers = []string{"keyboard"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.FirstState != "title" || len(loaded.InputManagers) != 1 {
		t.Errorf("saved config not restored: %+v", loaded)
	}
}
