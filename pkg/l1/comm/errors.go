package comm

import "errors"

var (
	// ErrConnClosed indicates the connection closed before a reply arrived.
	ErrConnClosed = errors.New("connection closed")
	// ErrNotCommand indicates a message sent as command is not a command.
	ErrNotCommand = errors.New("message is not a command")
	// ErrNotEvent indicates a message sent as event is not an event.
	ErrNotEvent = errors.New("message is not an event")
)
