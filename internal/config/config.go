package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxConfigFileBytes caps how large a config file may be.
const MaxConfigFileBytes = 1 << 20 // 1 MiB

// CameraConfig describes the camera hardware to drive.
// Revision selects a concrete implementation (e.g., "ov5647").
type CameraConfig struct {
	Revision string `yaml:"revision"` // hardware revision string, e.g. "ov5647"
	Device   string `yaml:"device"`   // V4L2 device node
	LEDPin   int    `yaml:"led_pin"`  // BCM pin for the camera LED. 0 = default.
}

// RecordingConfig contains video recording parameters.
type RecordingConfig struct {
	DefaultSeconds int `yaml:"default_seconds"` // recording duration when none is given
}

// DefaultsConfig contains generic parameters.
type DefaultsConfig struct {
	DebugLevel   int  `yaml:"debug_level"`   // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockHardware bool `yaml:"mock_hardware"` // use mock camera/GPIO (true=dev/test, false=real Raspberry Pi)
}

// Setting is one named camera setting from the config file.
type Setting struct {
	Name  string
	Value interface{}
}

// Settings preserves the file's key order, which is the order the
// settings are applied in. Duplicate keys both apply; the later one
// wins, matching plain attribute assignment.
type Settings []Setting

// UnmarshalYAML decodes a YAML mapping while keeping its entry order.
func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("settings must be a mapping, got %v", node.Kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("decode settings key: %w", err)
		}
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("decode settings value for %q: %w", key, err)
		}
		*s = append(*s, Setting{Name: key, Value: value})
	}
	return nil
}

// Config aggregates all application configuration.
type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Settings  Settings        `yaml:"settings"`
	Recording RecordingConfig `yaml:"recording"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

// ValidateConfigPath checks that path points to a .yaml file inside a
// configs/ directory and does not escape it via traversal.
func ValidateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if filepath.Ext(path) != ".yaml" {
		return fmt.Errorf("config file must have a .yaml extension: %s", path)
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if filepath.Base(filepath.Dir(abs)) != "configs" {
		return fmt.Errorf("config file must live in a configs/ directory: %s", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	if err := ValidateConfigPath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > MaxConfigFileBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxConfigFileBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// Basic validation
	if cfg.Camera.Revision == "" {
		return nil, fmt.Errorf("camera.revision is required")
	}
	if cfg.Defaults.DebugLevel < 0 || cfg.Defaults.DebugLevel > 4 {
		return nil, fmt.Errorf("debug_level must be between 0 and 4, got %d", cfg.Defaults.DebugLevel)
	}
	if cfg.Recording.DefaultSeconds < 0 {
		return nil, fmt.Errorf("recording.default_seconds must be >= 0, got %d", cfg.Recording.DefaultSeconds)
	}

	// Default values
	if cfg.Camera.Device == "" {
		cfg.Camera.Device = "/dev/video0"
	}
	if cfg.Camera.LEDPin <= 0 {
		cfg.Camera.LEDPin = 5 // CAM_LED on boards that expose it
	}
	if cfg.Recording.DefaultSeconds == 0 {
		cfg.Recording.DefaultSeconds = 10
	}

	return &cfg, nil
}

// RecordDuration returns the default recording duration.
func (c *Config) RecordDuration() time.Duration {
	return time.Duration(c.Recording.DefaultSeconds) * time.Second
}
