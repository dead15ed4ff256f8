package uart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type framerStep struct {
	frame string
	err   error
}

func pushAll(f *Framer, in string) (steps []framerStep) {
	for i := 0; i < len(in); i++ {
		fr := f.Push(in[i])
		if fr.Frame != nil || fr.Err != nil {
			steps = append(steps, framerStep{frame: string(fr.Frame), err: fr.Err})
		}
	}
	return
}

func TestFramer(t *testing.T) {
	testCases := []struct {
		name   string
		max    int
		in     string
		expect []framerStep
	}{
		{
			name:   "single line",
			in:     "esp led1 on\n",
			expect: []framerStep{{frame: "esp led1 on"}},
		},
		{
			name:   "crlf",
			in:     "esp led1 on\r\nesp led2 off\r\n",
			expect: []framerStep{{frame: "esp led1 on"}, {frame: "esp led2 off"}},
		},
		{
			name: "empty lines skipped",
			in:   "\n\r\n\n",
		},
		{
			name: "no delimiter",
			in:   "esp led1 on",
		},
		{
			name:   "exact max",
			max:    4,
			in:     "abcd\n",
			expect: []framerStep{{frame: "abcd"}},
		},
		{
			name:   "too long",
			max:    4,
			in:     "abcde\nxy\n",
			expect: []framerStep{{err: ErrFrameTooLong}, {frame: "xy"}},
		},
		{
			name:   "too long by a lot",
			max:    2,
			in:     "abcdefgh\rok\r",
			expect: []framerStep{{err: ErrFrameTooLong}, {frame: "ok"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, pushAll(NewFramer(tc.max), tc.in))
		})
	}
}

func TestFramerTimeout(t *testing.T) {
	f := NewFramer(0)
	require.Equal(t, FrameResult{}, f.Timeout())

	pushAll(f, "esp le")
	require.True(t, f.Pending())
	require.Equal(t, ErrFrameTimeout, f.Timeout().Err)
	require.False(t, f.Pending())

	require.Equal(t, []framerStep{{frame: "esp led2 on"}}, pushAll(f, "esp led2 on\n"))
}

func TestFramerOverflowPending(t *testing.T) {
	f := NewFramer(1)
	pushAll(f, "ab")
	require.True(t, f.Pending())
	require.Equal(t, ErrFrameTimeout, f.Timeout().Err)
}

func TestFramerReusesBuffer(t *testing.T) {
	f := NewFramer(0)
	allocs := testing.AllocsPerRun(10, func() {
		for _, b := range []byte("esp led3 off\n") {
			f.Push(b)
		}
	})
	require.Zero(t, allocs)
}
