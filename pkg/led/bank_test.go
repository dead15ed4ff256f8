package led

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

type recordingDriver struct {
	calls []Status
	err   error
}

func (d *recordingDriver) SetLED(led ledcmd.Led, state ledcmd.LedState) error {
	if d.err != nil {
		return d.err
	}
	d.calls = append(d.calls, Status{Led: led, State: state})
	return nil
}

func TestBankSet(t *testing.T) {
	d := &recordingDriver{}
	b := NewBank(d)
	for _, s := range b.Snapshot() {
		require.Equal(t, ledcmd.Off, s.State)
	}

	changed, err := b.Set(ledcmd.Led2, ledcmd.On)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, ledcmd.On, b.State(ledcmd.Led2))

	changed, err = b.Set(ledcmd.Led2, ledcmd.On)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, d.calls, 2)

	_, err = b.Set(ledcmd.Led(7), ledcmd.On)
	require.Equal(t, ErrInvalidLed, err)

	require.Equal(t, []Status{
		{ledcmd.Led1, ledcmd.Off},
		{ledcmd.Led2, ledcmd.On},
		{ledcmd.Led3, ledcmd.Off},
		{ledcmd.Led4, ledcmd.Off},
	}, b.Snapshot())
}

func TestBankDriverError(t *testing.T) {
	errHW := errors.New("hw")
	b := NewBank(&recordingDriver{err: errHW})
	changed, err := b.Set(ledcmd.Led1, ledcmd.On)
	require.Equal(t, errHW, err)
	require.False(t, changed)
	require.Equal(t, ledcmd.Off, b.State(ledcmd.Led1))
}

func TestBankApply(t *testing.T) {
	b := NewBank(nil)
	changed, err := b.Apply(ledcmd.Rejected())
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = b.Apply(ledcmd.ParseString("esp led4 on"))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, ledcmd.On, b.State(ledcmd.Led4))
}

func TestBankSetDriverReapplies(t *testing.T) {
	b := NewBank(nil)
	b.Set(ledcmd.Led3, ledcmd.On)
	d := &recordingDriver{}
	require.NoError(t, b.SetDriver(d))
	require.Equal(t, b.Snapshot(), d.calls)
}
