package comm

import (
	"context"

	"github.com/golang/glog"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/msgs"
)

// Registrar implements l1.Registrar with Pipe.
// Received commands are dispatched to Handler.
type Registrar struct {
	Handler l1.CommandHandler

	pipe Pipe
}

// NewRegistrar creates a Registrar.
func NewRegistrar(rw PacketReadWriter, handler l1.CommandHandler) *Registrar {
	r := &Registrar{}
	r.Init(rw, handler)
	return r
}

// Init initializes the Registrar with defaults.
func (r *Registrar) Init(rw PacketReadWriter, handler l1.CommandHandler) {
	r.Handler = handler
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(r.handleTypedMsg)
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.pipe.SendEventMsg(msg)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	return r.pipe.Run(ctx)
}

func (r *Registrar) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if !typed.IsCommand() || typed.IsReply() {
		glog.V(2).Infof("ignore %s from client", msgs.TypeName(msg))
		return nil
	}
	h := r.Handler
	if h == nil {
		h = Unsupported
	}
	h.HandleCommand(ctx, &command{seq: typed.Sequence, msg: msg, pipe: &r.pipe})
	return nil
}

type command struct {
	seq  uint32
	msg  fx.Message
	pipe *Pipe
}

func (c *command) Msg() fx.Message {
	return c.msg
}

func (c *command) Done(msg fx.Message) error {
	return c.pipe.SendCommandMsg(msg, c.seq)
}

// RegistrarMux registers a device with multiple Registrars.
type RegistrarMux struct {
	Registrars []l1.Registrar
}

// SendEvent implements Registrar.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	for _, reg := range r.Registrars {
		errs.AddFrom(reg, reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// Run implements Runnable. It runs all Registrars which are Runnable.
func (r *RegistrarMux) Run(ctx context.Context) error {
	runner := fx.NewRunnerWith(ctx)
	for _, reg := range r.Registrars {
		if runnable, ok := reg.(fx.Runnable); ok {
			runner.Go(runnable)
		}
	}
	return runner.Wait()
}

// Add adds more registrars.
func (r *RegistrarMux) Add(regs ...l1.Registrar) {
	r.Registrars = append(r.Registrars, regs...)
}

// Unsupported replies all commands as unsupported.
var Unsupported l1.CommandHandler = l1.HandleCommandFunc(func(ctx context.Context, cmd l1.Command) {
	if err := cmd.Done(msgs.NewCommandErr(msgs.ErrUnsupportedCommand)); err != nil {
		glog.Errorf("reply unsupported command failed: %v", err)
	}
})
