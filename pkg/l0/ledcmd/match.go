package ledcmd

type ledLiteral struct {
	literal []byte
	led     Led
}

type stateLiteral struct {
	literal []byte
	state   LedState
}

// Priority tables, scanned top-down. The first literal found anywhere
// in the input wins even if a later one occurs earlier in the input.
var (
	ledLiterals = [...]ledLiteral{
		{[]byte("led1"), Led1},
		{[]byte("led2"), Led2},
		{[]byte("led3"), Led3},
		{[]byte("led4"), Led4},
	}
	stateLiterals = [...]stateLiteral{
		{[]byte("on"), On},
		{[]byte("off"), Off},
	}
)

// Keyword is an entry of a priority table.
type Keyword struct {
	Literal string
	Led     Led
	State   LedState
}

// LedLiterals returns the LED keywords in priority order.
func LedLiterals() []Keyword {
	kws := make([]Keyword, len(ledLiterals))
	for n, e := range ledLiterals {
		kws[n] = Keyword{Literal: string(e.literal), Led: e.led}
	}
	return kws
}

// StateLiterals returns the state keywords in priority order.
func StateLiterals() []Keyword {
	kws := make([]Keyword, len(stateLiterals))
	for n, e := range stateLiterals {
		kws[n] = Keyword{Literal: string(e.literal), State: e.state}
	}
	return kws
}

// MatchLed locates a LED keyword anywhere in input.
// On success, rest is everything after the matched keyword.
// It doesn't check what precedes or follows the keyword:
//
//	"led1"     -> Led1, ""
//	"asled2df" -> Led2, "df"
//	"led4led1" -> Led1, ""
//	"asdf"     -> no match
func MatchLed(input []byte) (led Led, rest []byte, ok bool) {
	for _, e := range ledLiterals {
		if pos := Index(input, e.literal); pos >= 0 {
			return e.led, input[pos+len(e.literal):], true
		}
	}
	return rejected.Led, nil, false
}

// MatchState locates a state keyword anywhere in input, same rules as
// MatchLed:
//
//	"on"     -> On, ""
//	"onnnnn" -> On, "nnnn"
//	"offon"  -> On, ""
//	"ofna"   -> no match
func MatchState(input []byte) (state LedState, rest []byte, ok bool) {
	for _, e := range stateLiterals {
		if pos := Index(input, e.literal); pos >= 0 {
			return e.state, input[pos+len(e.literal):], true
		}
	}
	return rejected.State, nil, false
}

// LedByName looks up a LED by its exact keyword.
func LedByName(name string) (Led, bool) {
	for _, e := range ledLiterals {
		if string(e.literal) == name {
			return e.led, true
		}
	}
	return rejected.Led, false
}

// StateByName looks up a state by its exact keyword.
func StateByName(name string) (LedState, bool) {
	for _, e := range stateLiterals {
		if string(e.literal) == name {
			return e.state, true
		}
	}
	return rejected.State, false
}
