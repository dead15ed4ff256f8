package uart

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
)

// FrameHandler is called when a frame is received.
// The frame must not be retained after HandleFrame returns.
type FrameHandler interface {
	HandleFrame(context.Context, []byte)
}

// HandleFrameFunc is func type of FrameHandler.
type HandleFrameFunc func(context.Context, []byte)

// HandleFrame implements FrameHandler.
func (f HandleFrameFunc) HandleFrame(ctx context.Context, frame []byte) {
	f(ctx, frame)
}

// DefaultTimeout is the default inter-byte timeout.
const DefaultTimeout = 500 * time.Millisecond

// Stats counts what happened on a Link.
type Stats struct {
	Frames  uint64
	TooLong uint64
	Timeout uint64
}

// Link receives frames from a serial line.
type Link struct {
	Name        string
	ReadWriter  io.ReadWriter
	Handler     FrameHandler
	Timeout     time.Duration
	// ReadTimeout is set if Read of ReadWriter returns on its own timeout.
	// A zero-byte Read with a nil error or io.EOF is then an idle line,
	// as tarm/serial reports VTIME expiry as (0, io.EOF).
	ReadTimeout bool

	framer    *Framer
	stats     Stats
	lock      sync.Mutex
	sendLock  sync.Mutex
	byteTimer <-chan time.Time
}

// NewLink creates a Link.
func NewLink(rw io.ReadWriter, maxFrame int) *Link {
	return &Link{
		ReadWriter: rw,
		Timeout:    DefaultTimeout,
		framer:     NewFramer(maxFrame),
	}
}

// WithHandler sets Handler.
func (l *Link) WithHandler(h FrameHandler) *Link {
	l.Handler = h
	return l
}

// Stats returns a copy of the counters.
func (l *Link) Stats() Stats {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.stats
}

// Send writes one frame followed by '\n'.
func (l *Link) Send(frame []byte) error {
	if bytes.IndexAny(frame, "\r\n") >= 0 {
		return ErrInvalidFrame
	}
	l.sendLock.Lock()
	defer l.sendLock.Unlock()
	if _, err := l.ReadWriter.Write(frame); err != nil {
		return err
	}
	_, err := l.ReadWriter.Write([]byte{'\n'})
	return err
}

// Run processes received bytes in the background.
func (l *Link) Run(ctx context.Context) error {
	if l.framer == nil {
		l.framer = NewFramer(0)
	}
	if l.ReadTimeout {
		buf := make([]byte, 1)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			n, err := l.ReadWriter.Read(buf)
			switch {
			case isReadTimeout(n, err):
				l.apply(ctx, l.framer.Timeout())
			case err != nil:
				return err
			default:
				l.push(ctx, buf[0])
			}
		}
	}

	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go l.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			l.push(ctx, b)
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case <-l.byteTimer:
			l.byteTimer = nil
			l.apply(ctx, l.framer.Timeout())
		}
	}
}

func isReadTimeout(n int, err error) bool {
	if n == 0 && (err == nil || err == io.EOF) {
		return true
	}
	return err != nil && os.IsTimeout(err)
}

func (l *Link) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		_, err := l.ReadWriter.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

func (l *Link) push(ctx context.Context, b byte) {
	l.apply(ctx, l.framer.Push(b))
	if !l.ReadTimeout && l.Timeout > 0 {
		if l.framer.Pending() {
			l.byteTimer = time.After(l.Timeout)
		} else {
			l.byteTimer = nil
		}
	}
}

func (l *Link) apply(ctx context.Context, fr FrameResult) {
	l.lock.Lock()
	switch {
	case fr.Err == ErrFrameTooLong:
		l.stats.TooLong++
	case fr.Err == ErrFrameTimeout:
		l.stats.Timeout++
	case fr.Frame != nil:
		l.stats.Frames++
	}
	l.lock.Unlock()

	if fr.Err != nil {
		glog.Warningf("uart %s: frame dropped: %v", l.Name, fr.Err)
		return
	}
	if fr.Frame == nil {
		return
	}
	if glog.V(2) {
		glog.Infof("uart %s: RCV %q", l.Name, fr.Frame)
	}
	if h := l.Handler; h != nil {
		h.HandleFrame(ctx, fr.Frame)
	}
}
