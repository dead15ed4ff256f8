package uart

// DefaultMaxFrame is the default maximum length of a frame, excluding
// the delimiter.
const DefaultMaxFrame = 64

// FrameResult indicates the result after pushing one byte.
type FrameResult struct {
	// Frame is a complete frame. It's only valid until the next Push.
	Frame []byte
	// Err is set when a frame was dropped.
	Err error
}

// IsDelimiter checks if b terminates a frame.
func IsDelimiter(b byte) bool {
	return b == '\n' || b == '\r'
}

// Framer splits a byte stream into frames.
type Framer struct {
	buf      []byte
	max      int
	overflow bool
}

// NewFramer creates a Framer. max <= 0 selects DefaultMaxFrame.
func NewFramer(max int) *Framer {
	if max <= 0 {
		max = DefaultMaxFrame
	}
	return &Framer{buf: make([]byte, 0, max), max: max}
}

// Pending indicates a partial frame is buffered.
func (f *Framer) Pending() bool {
	return len(f.buf) > 0 || f.overflow
}

// Push consumes one byte.
func (f *Framer) Push(b byte) (fr FrameResult) {
	if IsDelimiter(b) {
		switch {
		case f.overflow:
			fr.Err = ErrFrameTooLong
		case len(f.buf) > 0:
			fr.Frame = f.buf
		}
		f.buf, f.overflow = f.buf[:0], false
		return
	}
	if f.overflow {
		return
	}
	if len(f.buf) >= f.max {
		f.buf, f.overflow = f.buf[:0], true
		return
	}
	f.buf = append(f.buf, b)
	return
}

// Timeout drops a partial frame.
func (f *Framer) Timeout() (fr FrameResult) {
	if f.Pending() {
		fr.Err = ErrFrameTimeout
	}
	f.Reset()
	return
}

// Reset drops buffered bytes.
func (f *Framer) Reset() {
	f.buf, f.overflow = f.buf[:0], false
}
