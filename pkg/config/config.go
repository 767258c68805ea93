// Package config loads, validates and persists serialscope settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/serialscope/pkg/dotdir"
	"github.com/papercomputeco/serialscope/pkg/serialport"
)

const (
	configFile = "config.toml"

	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

// orderedKeys lists the config keys in TOML section order.
var orderedKeys = []string{
	"serial.port",
	"serial.baud_rate",
	"serial.read_timeout_ms",
	"extract.label",
	"extract.window_capacity",
	"stream.queue_size",
	"display.y_min",
	"display.y_max",
	"display.log_lines",
	"mock.interval_ms",
	"mock.base",
	"mock.jitter",
}

type Configer struct {
	ddm        *dotdir.Manager
	targetPath string
}

func NewConfiger(override string) (*Configer, error) {
	cfger := &Configer{}

	cfger.ddm = dotdir.NewManager()
	target, err := cfger.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	if target == "" {
		return cfger, nil
	}

	path := filepath.Join(target, configFile)
	_, err = os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfger.targetPath = path

	return cfger, nil
}

// ValidConfigKeys returns all supported configuration key names in a
// stable order matching the TOML layout.
func ValidConfigKeys() []string {
	keys := make([]string, 0, len(orderedKeys))
	for _, k := range orderedKeys {
		if _, ok := configKeys[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// IsValidConfigKey returns true if the given key is a supported configuration key.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

func (c *Configer) GetTarget() string {
	return c.targetPath
}

// LoadConfig loads config.toml from the target directory. A missing file
// yields NewDefaultConfig(); fields absent from the file keep their defaults.
func (c *Configer) LoadConfig() (*Config, error) {
	if c.targetPath == "" {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(c.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills zero-value fields in cfg with values from NewDefaultConfig().
func applyDefaults(cfg *Config) {
	defaults := NewDefaultConfig()

	if cfg.Serial.BaudRate == 0 {
		cfg.Serial.BaudRate = defaults.Serial.BaudRate
	}
	if cfg.Serial.ReadTimeoutMS == 0 {
		cfg.Serial.ReadTimeoutMS = defaults.Serial.ReadTimeoutMS
	}

	if cfg.Extract.Label == "" {
		cfg.Extract.Label = defaults.Extract.Label
	}
	if cfg.Extract.WindowCapacity == 0 {
		cfg.Extract.WindowCapacity = defaults.Extract.WindowCapacity
	}

	if cfg.Stream.QueueSize == 0 {
		cfg.Stream.QueueSize = defaults.Stream.QueueSize
	}

	if cfg.Display.YMin == 0 && cfg.Display.YMax == 0 {
		cfg.Display.YMin = defaults.Display.YMin
		cfg.Display.YMax = defaults.Display.YMax
	}
	if cfg.Display.LogLines == 0 {
		cfg.Display.LogLines = defaults.Display.LogLines
	}

	if cfg.Mock.IntervalMS == 0 {
		cfg.Mock.IntervalMS = defaults.Mock.IntervalMS
	}
	if cfg.Mock.Base == 0 {
		cfg.Mock.Base = defaults.Mock.Base
	}
	if cfg.Mock.Jitter == 0 {
		cfg.Mock.Jitter = defaults.Mock.Jitter
	}
}

// SaveConfig persists the configuration to config.toml in the target directory.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	if c.targetPath == "" {
		return errors.New("cannot save empty target path")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SetConfigValue loads the config, sets the given key to the given value, and saves it.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue loads the config and returns the string representation of the given key.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}

// ParseConfigTOML parses raw TOML bytes into a Config.
// Returns an error if the version field is present and not equal to CurrentV.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}

	if cfg.Version != 0 && cfg.Version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentV)
	}

	return cfg, nil
}

// Validate checks the settings a monitor session depends on. Problems are
// reported as *serialport.ConfigurationError before any device is opened.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Serial.Port) == "" {
		return &serialport.ConfigurationError{Field: "port", Reason: "port name cannot be empty"}
	}
	if c.Serial.BaudRate <= 0 {
		return &serialport.ConfigurationError{Field: "baud rate", Reason: "must be a positive integer"}
	}
	if c.Serial.ReadTimeoutMS <= 0 {
		return &serialport.ConfigurationError{Field: "read timeout", Reason: "must be a positive number of milliseconds"}
	}
	if c.Extract.Label == "" {
		return &serialport.ConfigurationError{Field: "label", Reason: "cannot be empty"}
	}
	if c.Extract.WindowCapacity <= 0 {
		return &serialport.ConfigurationError{Field: "window capacity", Reason: "must be a positive integer"}
	}
	if c.Stream.QueueSize < 2 {
		return &serialport.ConfigurationError{Field: "queue size", Reason: "must be at least 2"}
	}
	if c.Display.YMax <= c.Display.YMin {
		return &serialport.ConfigurationError{Field: "display range", Reason: "y_max must be greater than y_min"}
	}
	return nil
}

// SerialSettings converts the serial section into connection settings.
// Ports found in known are used as enumerated sources; anything else is a
// manual entry.
func (c *Config) SerialSettings(known []serialport.Enumerated) serialport.Config {
	return serialport.Config{
		Source:      serialport.Resolve(strings.TrimSpace(c.Serial.Port), known),
		BaudRate:    c.Serial.BaudRate,
		ReadTimeout: time.Duration(c.Serial.ReadTimeoutMS) * time.Millisecond,
	}
}

// MockInterval returns the mock sender period.
func (c *Config) MockInterval() time.Duration {
	return time.Duration(c.Mock.IntervalMS) * time.Millisecond
}
