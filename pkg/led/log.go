package led

import (
	"github.com/golang/glog"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

// LogDriver only logs LED changes, for boards without usable LEDs.
type LogDriver struct{}

// SetLED implements Driver.
func (LogDriver) SetLED(led ledcmd.Led, state ledcmd.LedState) error {
	glog.Infof("LED %s -> %s", led, state)
	return nil
}
