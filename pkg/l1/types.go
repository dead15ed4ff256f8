package l1

import (
	"context"

	fx "github.com/robotalks/uartled/pkg/framework"
)

// Registrar registers a LED device to a registry so clients can find it.
// Commands received from clients are handed to a CommandHandler.
type Registrar interface {
	// SendEvent sends an event to all connected clients.
	SendEvent(context.Context, fx.Message) error
}

// Command represents a received command to be processed.
type Command interface {
	Msg() fx.Message
	Done(fx.Message) error
}

// CommandHandler processes a received command.
// It must eventually call Command.Done with a reply.
type CommandHandler interface {
	HandleCommand(context.Context, Command)
}

// HandleCommandFunc is func form of CommandHandler.
type HandleCommandFunc func(context.Context, Command)

// HandleCommand implements CommandHandler.
func (f HandleCommandFunc) HandleCommand(ctx context.Context, cmd Command) {
	f(ctx, cmd)
}

// DeviceRef is a reference to a LED device.
type DeviceRef struct {
	// Type is the device type.
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r DeviceRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates DeviceRef is valid.
func (r DeviceRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// DeviceMeta provides metadata for a device.
type DeviceMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// DeviceInfo provides information of a device.
type DeviceInfo struct {
	Ref  DeviceRef
	Meta DeviceMeta
}

// Connector is used by clients to connect to a device.
type Connector interface {
	// Discover enumerates registered devices.
	Discover(context.Context) ([]DeviceInfo, error)
	// Connect connects to the specified device.
	Connect(context.Context, DeviceRef) (DeviceConn, error)
}

// DeviceConn is the connection to a device.
type DeviceConn interface {
	fx.Runnable
	// DoCommand executes a command.
	DoCommand(fx.Message) CommandFuture
	// OnEvent sets the handler receiving events from the device.
	OnEvent(fx.MessageHandler)
}

// Result represents result of a command.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture is the future of sent command.
type CommandFuture interface {
	ResultChan() <-chan Result
}

// Wait waits for the result of a command, or until ctx is done.
func Wait(ctx context.Context, f CommandFuture) (fx.Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-f.ResultChan():
		return r.Msg, r.Err
	}
}
