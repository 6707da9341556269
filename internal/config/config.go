package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Camera   CameraConfig             `koanf:"camera" yaml:"camera"`
	Detector DetectorConfig           `koanf:"detector" yaml:"detector"`
	Assets   AssetsConfig             `koanf:"assets" yaml:"assets"`
	Overlay  OverlayConfig            `koanf:"overlay" yaml:"overlay"`
	Gestures map[string]GestureConfig `koanf:"gestures" yaml:"gestures,omitempty"`
	// Priority overrides the display precedence, highest first.
	Priority []string     `koanf:"priority" yaml:"priority,omitempty"`
	Store    StoreConfig  `koanf:"store" yaml:"store"`
	Server   ServerConfig  `koanf:"server" yaml:"server"`
	Actions  ActionsConfig `koanf:"actions" yaml:"actions"`
	Log      LogConfig     `koanf:"log" yaml:"log"`
}

// CameraConfig selects and sizes the capture device.
type CameraConfig struct {
	Device int  `koanf:"device" yaml:"device"`
	Width  int  `koanf:"width" yaml:"width"`
	Height int  `koanf:"height" yaml:"height"`
	Mirror bool `koanf:"mirror" yaml:"mirror"`
}

// DetectorConfig tunes the landmark model.
type DetectorConfig struct {
	MaxHands              int     `koanf:"max_hands" yaml:"max_hands"`
	ModelComplexity       int     `koanf:"model_complexity" yaml:"model_complexity"`
	MinConfidence         float64 `koanf:"min_confidence" yaml:"min_confidence"`
	MinTrackingConfidence float64 `koanf:"min_tracking_confidence" yaml:"min_tracking_confidence"`
}

// AssetsConfig locates the icon files.
type AssetsConfig struct {
	Dir string `koanf:"dir" yaml:"dir"`
}

// OverlayConfig positions the gesture indicator.
type OverlayConfig struct {
	X             int     `koanf:"x" yaml:"x"`
	Y             int     `koanf:"y" yaml:"y"`
	LabelX        int     `koanf:"label_x" yaml:"label_x"`
	LabelY        int     `koanf:"label_y" yaml:"label_y"`
	FallbackAlpha float64 `koanf:"fallback_alpha" yaml:"fallback_alpha"`
	DrawLandmarks bool    `koanf:"draw_landmarks" yaml:"draw_landmarks"`
}

// GestureConfig overrides parts of a built-in gesture. Zero values keep the default.
type GestureConfig struct {
	ActivateFrames   int    `koanf:"activate_frames" yaml:"activate_frames,omitempty"`
	DeactivateFrames int    `koanf:"deactivate_frames" yaml:"deactivate_frames,omitempty"`
	Icon             string `koanf:"icon" yaml:"icon,omitempty"`
	Label            string `koanf:"label" yaml:"label,omitempty"`
	Enabled          *bool  `koanf:"enabled" yaml:"enabled,omitempty"`
}

// StoreConfig locates the event journal. An empty path disables it.
type StoreConfig struct {
	Path string `koanf:"path" yaml:"path"`
}

// ServerConfig configures the status server. An empty address disables it.
type ServerConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// ActionsConfig binds gesture transitions to plugin actions.
type ActionsConfig struct {
	// Dir holds one subdirectory per plugin, each with a plugin.json manifest.
	Dir       string `koanf:"dir" yaml:"dir"`
	TimeoutMS int    `koanf:"timeout_ms" yaml:"timeout_ms"`
	QueueSize int    `koanf:"queue_size" yaml:"queue_size"`

	// Bindings maps a gesture key such as "thumbs_up" to the actions it triggers.
	Bindings map[string][]BindingConfig `koanf:"bindings" yaml:"bindings,omitempty"`
}

// BindingConfig names one plugin action.
type BindingConfig struct {
	Plugin    string         `koanf:"plugin" yaml:"plugin"`
	Action    string         `koanf:"action" yaml:"action"`
	OnRelease bool           `koanf:"on_release" yaml:"on_release,omitempty"`
	Params    map[string]any `koanf:"params" yaml:"params,omitempty"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `koanf:"level" yaml:"level"`
}

const (
	// DefaultConfigFilename is the config file name inside DefaultDir.
	DefaultConfigFilename = "config.yaml"

	// DefaultFilePermissions is the permission used when saving config files.
	DefaultFilePermissions = 0o600
)

var errConfigIsNotSet = errors.New("configuration is not set")

// DefaultDir returns ~/.mudra, or .mudra when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), DefaultConfigFilename)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Device: 0,
			Width:  640,
			Height: 480,
			Mirror: true,
		},
		Detector: DetectorConfig{
			MaxHands:              1,
			ModelComplexity:       1,
			MinConfidence:         0.6,
			MinTrackingConfidence: 0.6,
		},
		Assets: AssetsConfig{Dir: "assets"},
		Overlay: OverlayConfig{
			X:             20,
			Y:             20,
			LabelX:        20,
			LabelY:        60,
			FallbackAlpha: 0.85,
			DrawLandmarks: true,
		},
		Store: StoreConfig{Path: filepath.Join(DefaultDir(), "mudra.db")},
		Actions: ActionsConfig{
			Dir:       filepath.Join(DefaultDir(), "plugins"),
			TimeoutMS: 5000,
			QueueSize: 16,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultPath()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
