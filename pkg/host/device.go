// Package host connects the UART command parser to LEDs and the network.
package host

import (
	"context"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l0/ledcmd"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/msgs"
	"github.com/robotalks/uartled/pkg/led"
)

// Event sources.
const (
	SourceUART    = "uart"
	SourceNetwork = "network"
)

// Device is a LED board driven by UART commands and network clients.
type Device struct {
	Bank      *led.Bank
	Registrar l1.Registrar
	Metrics   *Metrics
	// Faults handles panics while processing a frame or command.
	// The frame or command is dropped when the handler returns.
	Faults fx.FaultHandler

	accepted uint64
	rejected uint64
}

// NewDevice creates a Device.
func NewDevice(bank *led.Bank) *Device {
	return &Device{Bank: bank}
}

// WithRegistrar sets the Registrar for events.
func (d *Device) WithRegistrar(reg l1.Registrar) *Device {
	d.Registrar = reg
	return d
}

// WithMetrics sets Metrics.
func (d *Device) WithMetrics(m *Metrics) *Device {
	d.Metrics = m
	return d
}

// WithFaultHandler sets Faults.
func (d *Device) WithFaultHandler(h fx.FaultHandler) *Device {
	d.Faults = h
	return d
}

// Counters returns the number of accepted and rejected frames.
func (d *Device) Counters() (accepted, rejected uint64) {
	return atomic.LoadUint64(&d.accepted), atomic.LoadUint64(&d.rejected)
}

// HandleFrame implements uart.FrameHandler.
func (d *Device) HandleFrame(ctx context.Context, frame []byte) {
	d.guard(func() { d.Execute(ctx, frame, SourceUART, true) })
}

// Execute parses the input and applies it to the LEDs if apply is set.
// Events are sent for rejected input and LED changes.
func (d *Device) Execute(ctx context.Context, input []byte, source string, apply bool) (cmd ledcmd.Command, changed bool, err error) {
	cmd = ledcmd.Parse(input)
	if !cmd.Success {
		atomic.AddUint64(&d.rejected, 1)
		d.frameMetric(source, ResultRejected)
		glog.V(2).Infof("%s: rejected %q", source, input)
		d.sendEvent(ctx, msgs.NewFrameRejected(input, source))
		return
	}
	atomic.AddUint64(&d.accepted, 1)
	glog.V(2).Infof("%s: %q => %s", source, input, cmd)
	if !apply {
		d.frameMetric(source, ResultAccepted)
		return
	}
	if changed, err = d.apply(ctx, cmd, source); err != nil {
		d.frameMetric(source, ResultFailed)
		glog.Errorf("%s: apply %s failed: %v", source, cmd, err)
		return
	}
	d.frameMetric(source, ResultAccepted)
	return
}

// HandleCommand implements l1.CommandHandler.
func (d *Device) HandleCommand(ctx context.Context, cmd l1.Command) {
	var reply fx.Message
	if !d.guard(func() { reply = d.doCommand(ctx, cmd.Msg()) }) {
		reply = msgs.NewCommandErr(errCommandFault)
	}
	if err := cmd.Done(reply); err != nil {
		glog.Errorf("reply %s failed: %v", msgs.TypeName(cmd.Msg()), err)
	}
}

func (d *Device) doCommand(ctx context.Context, msg fx.Message) fx.Message {
	if m := d.Metrics; m != nil {
		m.Command(msgs.TypeName(msg))
	}
	switch m := msg.(type) {
	case *msgs.LedSet:
		cmd, err := m.Command()
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		if _, err = d.apply(ctx, cmd, SourceNetwork); err != nil {
			return msgs.NewCommandErr(err)
		}
		return msgs.NewCommandOK()
	case *msgs.LedStatusQuery:
		return d.Status()
	case *msgs.ParseRequest:
		cmd, changed, err := d.Execute(ctx, m.Input, SourceNetwork, m.Apply)
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		return msgs.ParseReplyFrom(cmd, changed)
	default:
		return msgs.NewCommandErr(msgs.ErrUnsupportedCommand)
	}
}

// Status reports the LED states and frame counters.
func (d *Device) Status() *msgs.LedStatus {
	status := &msgs.LedStatus{}
	for _, s := range d.Bank.Snapshot() {
		status.AddLed(s.Led, s.State)
	}
	status.FramesAccepted, status.FramesRejected = d.Counters()
	return status
}

func (d *Device) apply(ctx context.Context, cmd ledcmd.Command, source string) (bool, error) {
	changed, err := d.Bank.Apply(cmd)
	if err != nil {
		return false, err
	}
	if m := d.Metrics; m != nil {
		m.Led(cmd.Led, cmd.State)
	}
	if changed {
		glog.Infof("%s %s by %s", cmd.Led, cmd.State, source)
		d.sendEvent(ctx, msgs.NewLedChanged(cmd.Led, cmd.State, source))
	}
	return changed, nil
}

func (d *Device) sendEvent(ctx context.Context, msg fx.Message) {
	if reg := d.Registrar; reg != nil {
		if err := reg.SendEvent(ctx, msg); err != nil {
			glog.Warningf("send %s failed: %v", msgs.TypeName(msg), err)
		}
	}
}

func (d *Device) frameMetric(source, result string) {
	if m := d.Metrics; m != nil {
		m.Frame(source, result)
	}
}

func (d *Device) guard(fn func()) bool {
	h := d.Faults
	if h == nil {
		h = fx.FaultHandlerFunc(func(fault interface{}) {
			glog.Errorf("fault: %v", fault)
		})
	}
	return fx.Guard(h, fn)
}
