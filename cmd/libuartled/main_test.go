package main

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

func parseBytes(input []byte) abiCommand {
	if len(input) == 0 {
		return toABI(parseRaw(nil, 0))
	}
	return toABI(parseRaw(unsafe.Pointer(&input[0]), uint32(len(input))))
}

func TestParseRaw(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  abiCommand
	}{
		{"led1 on", "esp led1 on", abiCommand{true, 0, 0}},
		{"led4 off", "esp led4 off", abiCommand{true, 3, 1}},
		{"lenient keywords", "esp asled2df onnnn", abiCommand{true, 1, 0}},
		{"bad prefix", "xesp led1 on", abiCommand{false, 0, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, parseBytes([]byte(tc.input)))
		})
	}
}

func TestParseRawEmptyView(t *testing.T) {
	rejected := abiCommand{false, 0, 1}
	require.Equal(t, rejected, toABI(parseRaw(nil, 0)))
	require.Equal(t, rejected, toABI(parseRaw(nil, 12)))

	buf := []byte("esp led1 on")
	require.Equal(t, rejected, toABI(parseRaw(unsafe.Pointer(&buf[0]), 0)))
}

func TestParseRawHonorsLength(t *testing.T) {
	buf := []byte("esp led2 onled1 off")
	p := unsafe.Pointer(&buf[0])
	require.Equal(t, abiCommand{true, 0, 1}, toABI(parseRaw(p, uint32(len(buf)))))
	require.Equal(t, abiCommand{true, 1, 0}, toABI(parseRaw(p, 11)))
	require.Equal(t, abiCommand{false, 0, 1}, toABI(parseRaw(p, 10)))
}

func TestToABI(t *testing.T) {
	require.Equal(t, abiCommand{false, 0, 1}, toABI(ledcmd.Rejected()))
	for n, l := range []ledcmd.Led{ledcmd.Led1, ledcmd.Led2, ledcmd.Led3, ledcmd.Led4} {
		got := toABI(ledcmd.Command{Success: true, Led: l, State: ledcmd.On})
		require.Equal(t, abiCommand{true, uint32(n), 0}, got)
	}
}
