package led

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

// DefaultSysfsRoot is where Linux exposes LED class devices.
const DefaultSysfsRoot = "/sys/class/leds"

// Sysfs implements Driver using the Linux sysfs LED interface.
type Sysfs struct {
	Root  string
	Names [ledcmd.LedCount]string // indexed by Led.Ordinal
}

// NewSysfsFromNames creates Sysfs from a map of LED keyword to sysfs
// device name, e.g. {"led1": "green:status"}.
func NewSysfsFromNames(root string, names map[string]string) (*Sysfs, error) {
	if root == "" {
		root = DefaultSysfsRoot
	}
	s := &Sysfs{Root: root}
	for key, name := range names {
		led, ok := ledcmd.LedByName(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLed, key)
		}
		s.Names[led.Ordinal()] = name
	}
	return s, nil
}

// Path returns the sysfs directory of the LED, empty if not mapped.
func (s *Sysfs) Path(led ledcmd.Led) string {
	if !led.IsValid() {
		return ""
	}
	name := s.Names[led.Ordinal()]
	if name == "" {
		return ""
	}
	return filepath.Join(s.Root, name)
}

// SetLED implements Driver.
func (s *Sysfs) SetLED(led ledcmd.Led, state ledcmd.LedState) error {
	dir := s.Path(led)
	if dir == "" {
		return &DriverError{Led: led, Err: fmt.Errorf("not mapped to a sysfs LED")}
	}
	value := []byte("0")
	if state.IsOn() {
		value = []byte("1")
	}
	// the trigger must be "none" for brightness to stick.
	if err := os.WriteFile(filepath.Join(dir, "trigger"), []byte("none"), 0644); err != nil && !os.IsNotExist(err) {
		return &DriverError{Led: led, Err: err}
	}
	if err := os.WriteFile(filepath.Join(dir, "brightness"), value, 0644); err != nil {
		return &DriverError{Led: led, Err: err}
	}
	return nil
}
