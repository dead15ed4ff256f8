package led

import (
	"sync"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

// Status is the state of one LED.
type Status struct {
	Led   ledcmd.Led
	State ledcmd.LedState
}

// Bank keeps the state of all LEDs and applies changes through a Driver.
// All LEDs start Off.
type Bank struct {
	driver Driver
	states [ledcmd.LedCount]ledcmd.LedState
	lock   sync.Mutex
}

// NewBank creates a Bank.
func NewBank(driver Driver) *Bank {
	b := &Bank{driver: driver}
	for i := range b.states {
		b.states[i] = ledcmd.Off
	}
	return b
}

// Set changes a LED. The cached state is only updated when the driver
// succeeds. changed reports whether the state differs from before.
func (b *Bank) Set(led ledcmd.Led, state ledcmd.LedState) (changed bool, err error) {
	if !led.IsValid() {
		return false, ErrInvalidLed
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.driver != nil {
		if err = b.driver.SetLED(led, state); err != nil {
			return false, err
		}
	}
	changed = b.states[led.Ordinal()] != state
	b.states[led.Ordinal()] = state
	return
}

// Apply applies a successfully parsed command.
func (b *Bank) Apply(cmd ledcmd.Command) (changed bool, err error) {
	if !cmd.Success {
		return false, nil
	}
	return b.Set(cmd.Led, cmd.State)
}

// State returns the cached state of a LED.
func (b *Bank) State(led ledcmd.Led) ledcmd.LedState {
	if !led.IsValid() {
		return ledcmd.Off
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.states[led.Ordinal()]
}

// Snapshot returns the state of all LEDs in LED order.
func (b *Bank) Snapshot() []Status {
	b.lock.Lock()
	defer b.lock.Unlock()
	s := make([]Status, len(b.states))
	for i, state := range b.states {
		s[i] = Status{Led: ledcmd.Led(i + 1), State: state}
	}
	return s
}

// SetDriver replaces the driver and pushes the cached states to it.
func (b *Bank) SetDriver(driver Driver) error {
	b.lock.Lock()
	b.driver = driver
	b.lock.Unlock()
	return b.Reapply()
}

// Reapply pushes all cached states to the driver.
func (b *Bank) Reapply() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.driver == nil {
		return nil
	}
	for i, state := range b.states {
		if err := b.driver.SetLED(ledcmd.Led(i+1), state); err != nil {
			return err
		}
	}
	return nil
}
