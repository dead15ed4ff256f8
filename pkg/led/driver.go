// Package led drives the four board LEDs addressed by UART commands.
package led

import (
	"errors"
	"fmt"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

// Driver sets the physical state of a LED.
type Driver interface {
	SetLED(ledcmd.Led, ledcmd.LedState) error
}

// DriverFunc is the func form of Driver.
type DriverFunc func(ledcmd.Led, ledcmd.LedState) error

// SetLED implements Driver.
func (f DriverFunc) SetLED(led ledcmd.Led, state ledcmd.LedState) error {
	return f(led, state)
}

var (
	// ErrUnknownDriver indicates the driver name is not supported.
	ErrUnknownDriver = errors.New("unknown LED driver")
	// ErrInvalidLed indicates the LED is out of range.
	ErrInvalidLed = errors.New("invalid LED")
)

// DriverError wraps an error from the driver for a specific LED.
type DriverError struct {
	Led ledcmd.Led
	Err error
}

// Error implements error.
func (e *DriverError) Error() string {
	return fmt.Sprintf("%s: %v", e.Led, e.Err)
}

// Unwrap returns the underlying error.
func (e *DriverError) Unwrap() error {
	return e.Err
}

// Driver names.
const (
	DriverSysfs = "sysfs"
	DriverLog   = "log"
)

// NewDriver creates a driver by name. root and names are only used by sysfs.
func NewDriver(name, root string, names map[string]string) (Driver, error) {
	switch name {
	case DriverSysfs:
		return NewSysfsFromNames(root, names)
	case DriverLog, "":
		return LogDriver{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}
