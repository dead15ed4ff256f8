package main

import (
	"unsafe"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

// abiCommand mirrors the C Command with 0-based enum values.
type abiCommand struct {
	success bool
	led     uint32
	state   uint32
}

func toABI(cmd ledcmd.Command) abiCommand {
	return abiCommand{
		success: cmd.Success,
		led:     cmd.Led.Ordinal(),
		state:   cmd.State.Ordinal(),
	}
}

// parseRaw parses n bytes at p. A nil p or zero n is empty input.
func parseRaw(p unsafe.Pointer, n uint32) ledcmd.Command {
	cmd := ledcmd.Rejected()
	fx.Guard(fx.Halt, func() {
		var input []byte
		if p != nil && n > 0 {
			input = unsafe.Slice((*byte)(p), n)
		}
		cmd = ledcmd.Parse(input)
	})
	return cmd
}

func main() {}
