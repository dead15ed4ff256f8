package ledcmd

import "bytes"

var (
	prefix    = []byte("esp ")
	separator = []byte(" ")
)

// Parse converts one complete buffer into a Command.
//
// The stages run in order and the first failing one rejects the buffer:
// prefix "esp " at position 0, a LED keyword, a single space right after
// the LED keyword, and a state keyword. Bytes after the state keyword
// are ignored.
func Parse(input []byte) Command {
	rest, ok := cutPrefix(input, prefix)
	if !ok {
		return rejected
	}
	led, rest, ok := MatchLed(rest)
	if !ok {
		return rejected
	}
	if rest, ok = cutPrefix(rest, separator); !ok {
		return rejected
	}
	state, _, ok := MatchState(rest)
	if !ok {
		return rejected
	}
	return Command{Success: true, Led: led, State: state}
}

// ParseString is Parse for text input.
func ParseString(s string) Command {
	return Parse([]byte(s))
}

func cutPrefix(input, p []byte) ([]byte, bool) {
	if !bytes.HasPrefix(input, p) {
		return nil, false
	}
	return input[len(p):], true
}
