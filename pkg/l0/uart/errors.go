package uart

import "errors"

var (
	// ErrFrameTooLong indicates a frame was dropped for exceeding MaxFrame.
	ErrFrameTooLong = errors.New("frame too long")
	// ErrFrameTimeout indicates a partial frame was dropped on timeout.
	ErrFrameTimeout = errors.New("frame timeout")
	// ErrInvalidFrame indicates a frame to send contains a delimiter.
	ErrInvalidFrame = errors.New("invalid frame")
)
