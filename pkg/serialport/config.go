package serialport

import (
	"strings"
	"time"
)

const (
	// DefaultBaudRate matches the rate most hobby boards ship with.
	DefaultBaudRate = 115200

	// DefaultReadTimeout bounds every blocking read so a stop request is
	// observed within roughly this long.
	DefaultReadTimeout = time.Second
)

// Config describes one serial connection.
type Config struct {
	Source      PortSource
	BaudRate    int
	ReadTimeout time.Duration
}

// Validate checks the connection settings without touching the device.
// It returns a *ConfigurationError on the first problem found.
func (c Config) Validate() error {
	if c.Source == nil || strings.TrimSpace(c.Source.Device()) == "" {
		return &ConfigurationError{Field: "port", Reason: "port name cannot be empty"}
	}

	if c.BaudRate <= 0 {
		return &ConfigurationError{Field: "baud rate", Reason: "must be a positive integer"}
	}

	if c.ReadTimeout < 0 {
		return &ConfigurationError{Field: "read timeout", Reason: "cannot be negative"}
	}

	return nil
}

func (c Config) readTimeout() time.Duration {
	if c.ReadTimeout == 0 {
		return DefaultReadTimeout
	}
	return c.ReadTimeout
}
