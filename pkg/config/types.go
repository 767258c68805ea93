package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent serialscope configuration stored as
// config.toml in the .serialscope/ directory.
type Config struct {
	Version int           `toml:"version"`
	Serial  SerialConfig  `toml:"serial"`
	Extract ExtractConfig `toml:"extract"`
	Stream  StreamConfig  `toml:"stream"`
	Display DisplayConfig `toml:"display"`
	Mock    MockConfig    `toml:"mock"`
}

// SerialConfig holds the connection settings.
type SerialConfig struct {
	Port          string `toml:"port,omitempty"`
	BaudRate      int    `toml:"baud_rate,omitempty"`
	ReadTimeoutMS int    `toml:"read_timeout_ms,omitempty"`
}

// ExtractConfig holds the reading extraction rule.
type ExtractConfig struct {
	Label          string `toml:"label,omitempty"`
	WindowCapacity int    `toml:"window_capacity,omitempty"`
}

// StreamConfig holds the background reader settings.
type StreamConfig struct {
	QueueSize int `toml:"queue_size,omitempty"`
}

// DisplayConfig holds monitor presentation settings. YMin and YMax are the
// initial value range of the plot.
type DisplayConfig struct {
	YMin     float64 `toml:"y_min"`
	YMax     float64 `toml:"y_max"`
	LogLines int     `toml:"log_lines,omitempty"`
}

// MockConfig holds the settings of the mock sender.
type MockConfig struct {
	IntervalMS int     `toml:"interval_ms,omitempty"`
	Base       float64 `toml:"base,omitempty"`
	Jitter     float64 `toml:"jitter,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func intKey(name string, field func(c *Config) *int) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.Itoa(*field(c))
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = n
			return nil
		},
	}
}

func floatKey(name string, field func(c *Config) *float64) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			return strconv.FormatFloat(*field(c), 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = f
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"serial.port": {
		get: func(c *Config) string { return c.Serial.Port },
		set: func(c *Config, v string) error { c.Serial.Port = v; return nil },
	},
	"serial.baud_rate":       intKey("serial.baud_rate", func(c *Config) *int { return &c.Serial.BaudRate }),
	"serial.read_timeout_ms": intKey("serial.read_timeout_ms", func(c *Config) *int { return &c.Serial.ReadTimeoutMS }),
	"extract.label": {
		get: func(c *Config) string { return c.Extract.Label },
		set: func(c *Config, v string) error { c.Extract.Label = v; return nil },
	},
	"extract.window_capacity": intKey("extract.window_capacity", func(c *Config) *int { return &c.Extract.WindowCapacity }),
	"stream.queue_size":       intKey("stream.queue_size", func(c *Config) *int { return &c.Stream.QueueSize }),
	"display.y_min":           floatKey("display.y_min", func(c *Config) *float64 { return &c.Display.YMin }),
	"display.y_max":           floatKey("display.y_max", func(c *Config) *float64 { return &c.Display.YMax }),
	"display.log_lines":       intKey("display.log_lines", func(c *Config) *int { return &c.Display.LogLines }),
	"mock.interval_ms":        intKey("mock.interval_ms", func(c *Config) *int { return &c.Mock.IntervalMS }),
	"mock.base":               floatKey("mock.base", func(c *Config) *float64 { return &c.Mock.Base }),
	"mock.jitter":             floatKey("mock.jitter", func(c *Config) *float64 { return &c.Mock.Jitter }),
}
