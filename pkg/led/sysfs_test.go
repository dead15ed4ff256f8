package led

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

func TestSysfsSetLED(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "usr_led"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "usr_led", "trigger"), []byte("heartbeat"), 0644))

	s, err := NewSysfsFromNames(root, map[string]string{"led1": "usr_led"})
	require.NoError(t, err)

	require.NoError(t, s.SetLED(ledcmd.Led1, ledcmd.On))
	content, err := os.ReadFile(filepath.Join(root, "usr_led", "brightness"))
	require.NoError(t, err)
	require.Equal(t, "1", string(content))
	content, err = os.ReadFile(filepath.Join(root, "usr_led", "trigger"))
	require.NoError(t, err)
	require.Equal(t, "none", string(content))

	require.NoError(t, s.SetLED(ledcmd.Led1, ledcmd.Off))
	content, err = os.ReadFile(filepath.Join(root, "usr_led", "brightness"))
	require.NoError(t, err)
	require.Equal(t, "0", string(content))
}

func TestSysfsUnmapped(t *testing.T) {
	s, err := NewSysfsFromNames(t.TempDir(), nil)
	require.NoError(t, err)
	err = s.SetLED(ledcmd.Led2, ledcmd.On)
	var derr *DriverError
	require.True(t, errors.As(err, &derr))
	require.Equal(t, ledcmd.Led2, derr.Led)
	require.Equal(t, "", s.Path(ledcmd.Led(0)))
}

func TestSysfsMissingDevice(t *testing.T) {
	s, err := NewSysfsFromNames(t.TempDir(), map[string]string{"led3": "gone"})
	require.NoError(t, err)
	require.Error(t, s.SetLED(ledcmd.Led3, ledcmd.On))
}

func TestNewDriver(t *testing.T) {
	d, err := NewDriver(DriverLog, "", nil)
	require.NoError(t, err)
	require.NoError(t, d.SetLED(ledcmd.Led1, ledcmd.On))

	d, err = NewDriver(DriverSysfs, "", map[string]string{"led4": "blue_led"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(DefaultSysfsRoot, "blue_led"), d.(*Sysfs).Path(ledcmd.Led4))

	_, err = NewDriver(DriverSysfs, "", map[string]string{"led5": "x"})
	require.True(t, errors.Is(err, ErrInvalidLed))

	_, err = NewDriver("gpio", "", nil)
	require.True(t, errors.Is(err, ErrUnknownDriver))
}
