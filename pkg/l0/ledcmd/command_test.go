package ledcmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func accepted(led Led, state LedState) Command {
	return Command{Success: true, Led: led, State: state}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect Command
	}{
		{"led1 on", "esp led1 on", accepted(Led1, On)},
		{"led2 off", "esp led2 off", accepted(Led2, Off)},
		{"led3 on trailing", "esp led3 on\r\n garbage", accepted(Led3, On)},
		{"led4 off", "esp led4 off", accepted(Led4, Off)},
		{"bad state", "esp led2 ofna", Rejected()},
		{"no prefix", "led1 on", Rejected()},
		{"prefix not at start", " esp led1 on", Rejected()},
		{"prefix without space", "espled1 on", Rejected()},
		{"upper case prefix", "ESP led1 on", Rejected()},
		{"prefix only", "esp ", Rejected()},
		{"empty", "", Rejected()},
		{"no led", "esp lamp1 on", Rejected()},
		{"no separator", "esp led1on", Rejected()},
		{"two spaces", "esp led1  on", accepted(Led1, On)},
		{"tab separator", "esp led1\ton", Rejected()},
		{"no state", "esp led1 ", Rejected()},
		{"lenient led", "esp xxled2 off", accepted(Led2, Off)},
		{"lenient state", "esp led1 onnnnn", accepted(Led1, On)},
		{"state in garbage", "esp led1 xoffx", accepted(Led1, Off)},
		{"led priority", "esp led3 led1 off", accepted(Led1, Off)},
		{"led priority keeps separator rule", "esp led1x led3 on", Rejected()},
		{"state priority", "esp led1 off on", accepted(Led1, On)},
		{"led keyword after led", "esp led4 on led2", Rejected()},
		{"state before led", "esp on led4 off", accepted(Led4, Off)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Parse([]byte(tc.input)))
			require.Equal(t, tc.expect, ParseString(tc.input))
		})
	}
}

func TestParseNil(t *testing.T) {
	require.Equal(t, Rejected(), Parse(nil))
}

func TestRejectedDefaults(t *testing.T) {
	cmd := Rejected()
	require.False(t, cmd.Success)
	require.Equal(t, Led1, cmd.Led)
	require.Equal(t, Off, cmd.State)
}

func TestParseComposed(t *testing.T) {
	leds := []string{"led1", "led2", "led3", "led4"}
	states := []string{"on", "off"}
	for li, led := range leds {
		for si, state := range states {
			for _, pre := range []string{"", "x", "ledx"} {
				for _, trailing := range []string{"", "\n", " garbage", "\x00\xff"} {
					input := "esp " + pre + led + " " + state + trailing
					t.Run(input, func(t *testing.T) {
						cmd := Parse([]byte(input))
						require.True(t, cmd.Success)
						require.Equal(t, Led(li+1), cmd.Led)
						require.Equal(t, StateLiterals()[si].State, cmd.State)
					})
				}
			}
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	for _, input := range []string{"esp led1 on", "esp led2 ofna", "", "esp led4 offon"} {
		buf := []byte(input)
		first := Parse(buf)
		require.Equal(t, first, Parse(buf))
		require.Equal(t, input, string(buf))
	}
}

func TestParseDoesNotReadPastView(t *testing.T) {
	buf := []byte("esp led1 onXXXX")
	require.Equal(t, accepted(Led1, On), Parse(buf[:11]))
	require.Equal(t, Rejected(), Parse(buf[:10]))
	require.Equal(t, Rejected(), Parse(buf[:9]))
}

func TestParseNoAlloc(t *testing.T) {
	inputs := [][]byte{
		[]byte("esp led1 on"),
		[]byte("esp led4 off trailing"),
		[]byte("esp led2 ofna"),
		[]byte("nope"),
	}
	allocs := testing.AllocsPerRun(100, func() {
		for _, in := range inputs {
			Parse(in)
		}
	})
	require.Zero(t, allocs)
}

func TestCommandFormat(t *testing.T) {
	require.Equal(t, "esp led3 off", accepted(Led3, Off).Format())
	require.Equal(t, "", Rejected().Format())
	for _, led := range []Led{Led1, Led2, Led3, Led4} {
		for _, state := range []LedState{On, Off} {
			cmd := accepted(led, state)
			require.Equal(t, cmd, ParseString(cmd.Format()))
		}
	}
	require.Equal(t, "led2=on", accepted(Led2, On).String())
	require.Equal(t, "rejected", Rejected().String())
}

func TestOrdinals(t *testing.T) {
	require.Equal(t, uint32(0), Led1.Ordinal())
	require.Equal(t, uint32(3), Led4.Ordinal())
	require.Equal(t, uint32(0), On.Ordinal())
	require.Equal(t, uint32(1), Off.Ordinal())
	require.True(t, Led2.IsValid())
	require.False(t, Led(0).IsValid())
	require.False(t, Led(5).IsValid())
	require.Equal(t, "led?", Led(9).String())
	require.Equal(t, On, StateOf(true))
	require.Equal(t, Off, StateOf(false))
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"esp led1 on", "esp led2 off", "esp led2 ofna", "led1 on", "esp led3 on\n\n"} {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		orig := append([]byte(nil), input...)
		cmd := Parse(input)
		if !bytes.Equal(orig, input) {
			t.Fatalf("input mutated")
		}
		if !cmd.Success {
			if cmd != Rejected() {
				t.Fatalf("rejected command %+v carries non-default fields", cmd)
			}
			return
		}
		if !bytes.HasPrefix(input, prefix) {
			t.Fatalf("accepted %q without prefix", input)
		}
		if !cmd.Led.IsValid() {
			t.Fatalf("accepted %q with invalid led %d", input, cmd.Led)
		}
		if cmd != Parse(input) {
			t.Fatalf("parse of %q is not repeatable", input)
		}
	})
}
