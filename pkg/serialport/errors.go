package serialport

import (
	"errors"
	"fmt"
	"os"

	"go.bug.st/serial"
)

// ConfigurationError reports connection settings that were rejected before
// any attempt to open the device.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FailureKind classifies why a device could not be opened.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureNotFound
	FailurePermission
	FailureBusy
)

func (k FailureKind) String() string {
	switch k {
	case FailureNotFound:
		return "not found"
	case FailurePermission:
		return "permission denied"
	case FailureBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// ConnectionError is returned when the device exists in the configuration
// but the operating system refused to open it. It is never retried.
type ConnectionError struct {
	Device string
	Kind   FailureKind
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error opening port %s: %v", e.Device, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// newConnectionError wraps a driver error and classifies it.
func newConnectionError(device string, err error) *ConnectionError {
	return &ConnectionError{
		Device: device,
		Kind:   classify(err),
		Err:    err,
	}
}

func classify(err error) FailureKind {
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortNotFound:
			return FailureNotFound
		case serial.PermissionDenied:
			return FailurePermission
		case serial.PortBusy:
			return FailureBusy
		}
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return FailureNotFound
	case errors.Is(err, os.ErrPermission):
		return FailurePermission
	default:
		return FailureUnknown
	}
}
