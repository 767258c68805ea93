// Package serialport is a thin wrapper over go.bug.st/serial that opens
// devices with a bounded read timeout, enumerates ports, and turns driver
// failures into typed errors.
package serialport

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Port is an open serial device.
type Port interface {
	io.ReadWriteCloser
}

// Open validates cfg and opens the device with 8N1 framing. Reads on the
// returned Port return (0, nil) when the read timeout elapses without data.
func Open(cfg Config) (Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	device := cfg.Source.Device()
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, newConnectionError(device, err)
	}

	if err := port.SetReadTimeout(cfg.readTimeout()); err != nil {
		_ = port.Close()
		return nil, newConnectionError(device, fmt.Errorf("setting read timeout: %w", err))
	}

	return port, nil
}
