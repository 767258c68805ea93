package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/serialscope/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the SERIALSCOPE_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (SERIALSCOPE_SERIAL_PORT, SERIALSCOPE_SERIAL_BAUD_RATE, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("SERIALSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper resolves every setting through v's precedence chain.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Serial: SerialConfig{
			Port:          v.GetString("serial.port"),
			BaudRate:      v.GetInt("serial.baud_rate"),
			ReadTimeoutMS: v.GetInt("serial.read_timeout_ms"),
		},
		Extract: ExtractConfig{
			Label:          v.GetString("extract.label"),
			WindowCapacity: v.GetInt("extract.window_capacity"),
		},
		Stream: StreamConfig{
			QueueSize: v.GetInt("stream.queue_size"),
		},
		Display: DisplayConfig{
			YMin:     v.GetFloat64("display.y_min"),
			YMax:     v.GetFloat64("display.y_max"),
			LogLines: v.GetInt("display.log_lines"),
		},
		Mock: MockConfig{
			IntervalMS: v.GetInt("mock.interval_ms"),
			Base:       v.GetFloat64("mock.base"),
			Jitter:     v.GetFloat64("mock.jitter"),
		},
	}
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Serial
	v.SetDefault("serial.port", d.Serial.Port)
	v.SetDefault("serial.baud_rate", d.Serial.BaudRate)
	v.SetDefault("serial.read_timeout_ms", d.Serial.ReadTimeoutMS)

	// Extraction
	v.SetDefault("extract.label", d.Extract.Label)
	v.SetDefault("extract.window_capacity", d.Extract.WindowCapacity)

	// Stream
	v.SetDefault("stream.queue_size", d.Stream.QueueSize)

	// Display
	v.SetDefault("display.y_min", d.Display.YMin)
	v.SetDefault("display.y_max", d.Display.YMax)
	v.SetDefault("display.log_lines", d.Display.LogLines)

	// Mock sender
	v.SetDefault("mock.interval_ms", d.Mock.IntervalMS)
	v.SetDefault("mock.base", d.Mock.Base)
	v.SetDefault("mock.jitter", d.Mock.Jitter)
}
