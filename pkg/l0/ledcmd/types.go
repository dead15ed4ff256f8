package ledcmd

// Led identifies one of the four LEDs on the board.
type Led uint8

// LEDs
const (
	Led1 Led = iota + 1
	Led2
	Led3
	Led4
)

// LedCount is the number of LEDs a command can address.
const LedCount = 4

// IsValid checks if it's one of the four LEDs.
func (l Led) IsValid() bool {
	return l >= Led1 && l <= Led4
}

// Ordinal returns the 0-based enum value used on the C side.
func (l Led) Ordinal() uint32 {
	return uint32(l) - 1
}

// String implements fmt.Stringer.
func (l Led) String() string {
	for _, e := range ledLiterals {
		if e.led == l {
			return string(e.literal)
		}
	}
	return "led?"
}

// LedState is the desired state of a LED.
type LedState uint8

// States
const (
	On LedState = iota
	Off
)

// Ordinal returns the enum value used on the C side.
func (s LedState) Ordinal() uint32 {
	return uint32(s)
}

// IsOn is a shortcut for s == On.
func (s LedState) IsOn() bool {
	return s == On
}

// String implements fmt.Stringer.
func (s LedState) String() string {
	for _, e := range stateLiterals {
		if e.state == s {
			return string(e.literal)
		}
	}
	return "state?"
}

// StateOf converts a boolean into a LedState.
func StateOf(on bool) LedState {
	if on {
		return On
	}
	return Off
}

// Command is the result of parsing one buffer.
// Led and State are only meaningful when Success is true, otherwise
// they carry Led1 and Off.
type Command struct {
	Success bool
	Led     Led
	State   LedState
}

// rejected is what every failed parse returns.
var rejected = Command{Led: Led1, State: Off}

// Rejected returns the Command produced for a rejected buffer.
func Rejected() Command {
	return rejected
}

// Format renders the canonical wire text of a successful command,
// e.g. "esp led1 on". It returns an empty string for a failed command.
func (c Command) Format() string {
	if !c.Success {
		return ""
	}
	return string(prefix) + c.Led.String() + string(separator) + c.State.String()
}

// String implements fmt.Stringer.
func (c Command) String() string {
	if !c.Success {
		return "rejected"
	}
	return c.Led.String() + "=" + c.State.String()
}
