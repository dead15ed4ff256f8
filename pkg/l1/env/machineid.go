package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID salts the machine ID so the device ID doesn't expose it.
const AppID = "uartled"

// MachineID retrieves the unique ID identifying the machine.
// It falls back to the hostname when the machine ID is not available.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return ""
}
