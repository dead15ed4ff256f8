package host

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l0/ledcmd"
	"github.com/robotalks/uartled/pkg/l1/msgs"
	"github.com/robotalks/uartled/pkg/led"
)

type eventRecorder struct {
	lock   sync.Mutex
	events []fx.Message
}

func (r *eventRecorder) SendEvent(ctx context.Context, msg fx.Message) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, msg)
	return nil
}

type testCommand struct {
	msg   fx.Message
	reply fx.Message
}

func (c *testCommand) Msg() fx.Message { return c.msg }

func (c *testCommand) Done(msg fx.Message) error {
	c.reply = msg
	return nil
}

func newTestDevice(driver led.Driver) (*Device, *eventRecorder) {
	rec := &eventRecorder{}
	d := NewDevice(led.NewBank(driver)).WithRegistrar(rec).WithMetrics(NewMetrics())
	return d, rec
}

func TestHandleFrame(t *testing.T) {
	var set []string
	d, rec := newTestDevice(led.DriverFunc(func(l ledcmd.Led, s ledcmd.LedState) error {
		set = append(set, l.String()+"="+s.String())
		return nil
	}))
	ctx := context.Background()

	d.HandleFrame(ctx, []byte("esp led1 on"))
	d.HandleFrame(ctx, []byte("esp led1 on"))
	d.HandleFrame(ctx, []byte("esp led9 on"))
	d.HandleFrame(ctx, []byte("esp led4 off"))

	require.Equal(t, []string{"led1=on", "led1=on", "led4=off"}, set)
	require.Equal(t, ledcmd.On, d.Bank.State(ledcmd.Led1))
	accepted, rejected := d.Counters()
	require.EqualValues(t, 3, accepted)
	require.EqualValues(t, 1, rejected)

	require.Len(t, rec.events, 2)
	changed, ok := rec.events[0].(*msgs.LedChanged)
	require.True(t, ok)
	require.EqualValues(t, 1, changed.Led)
	require.True(t, changed.On)
	require.Equal(t, SourceUART, changed.Source)
	frameRejected, ok := rec.events[1].(*msgs.FrameRejected)
	require.True(t, ok)
	require.Equal(t, []byte("esp led9 on"), frameRejected.Input)

	require.Equal(t, 3.0, testutil.ToFloat64(d.Metrics.frames.WithLabelValues(SourceUART, ResultAccepted)))
	require.Equal(t, 1.0, testutil.ToFloat64(d.Metrics.frames.WithLabelValues(SourceUART, ResultRejected)))
	require.Equal(t, 1.0, testutil.ToFloat64(d.Metrics.ledOn.WithLabelValues("led1")))
	require.Equal(t, 0.0, testutil.ToFloat64(d.Metrics.ledOn.WithLabelValues("led4")))
}

func TestHandleFrameDriverError(t *testing.T) {
	boom := errors.New("boom")
	d, rec := newTestDevice(led.DriverFunc(func(ledcmd.Led, ledcmd.LedState) error { return boom }))
	_, _, err := d.Execute(context.Background(), []byte("esp led2 on"), SourceUART, true)
	require.Equal(t, boom, err)
	require.Equal(t, ledcmd.Off, d.Bank.State(ledcmd.Led2))
	require.Empty(t, rec.events)
	require.Equal(t, 1.0, testutil.ToFloat64(d.Metrics.frames.WithLabelValues(SourceUART, ResultFailed)))
}

func TestHandleFrameFault(t *testing.T) {
	var faults []interface{}
	d, _ := newTestDevice(led.DriverFunc(func(ledcmd.Led, ledcmd.LedState) error { panic("driver crashed") }))
	d.WithFaultHandler(fx.FaultHandlerFunc(func(f interface{}) { faults = append(faults, f) }))

	d.HandleFrame(context.Background(), []byte("esp led3 on"))
	require.Equal(t, []interface{}{"driver crashed"}, faults)

	cmd := &testCommand{msg: msgs.LedSetFrom(ledcmd.ParseString("esp led3 on"))}
	d.HandleCommand(context.Background(), cmd)
	require.Len(t, faults, 2)
	cmdErr, ok := cmd.reply.(*msgs.CommandErr)
	require.True(t, ok)
	require.Equal(t, errCommandFault.Error(), cmdErr.Error())
}

func TestHandleCommand(t *testing.T) {
	d, rec := newTestDevice(nil)
	ctx := context.Background()

	set := msgs.LedSetFrom(ledcmd.ParseString("esp led2 on"))
	cmd := &testCommand{msg: set}
	d.HandleCommand(ctx, cmd)
	_, ok := cmd.reply.(*msgs.CommandOK)
	require.True(t, ok)
	require.Len(t, rec.events, 1)
	require.Equal(t, SourceNetwork, rec.events[0].(*msgs.LedChanged).Source)

	bad := &msgs.LedSet{}
	bad.Led = 7
	cmd = &testCommand{msg: bad}
	d.HandleCommand(ctx, cmd)
	require.Equal(t, msgs.ErrInvalidLed.Error(), cmd.reply.(*msgs.CommandErr).Error())

	cmd = &testCommand{msg: msgs.NewParseRequest([]byte("esp led3 on"), false)}
	d.HandleCommand(ctx, cmd)
	reply := cmd.reply.(*msgs.ParseReply)
	require.True(t, reply.Success)
	require.EqualValues(t, 3, reply.Led)
	require.False(t, reply.Changed)
	require.Equal(t, ledcmd.Off, d.Bank.State(ledcmd.Led3))

	cmd = &testCommand{msg: msgs.NewParseRequest([]byte("esp led3 on"), true)}
	d.HandleCommand(ctx, cmd)
	require.True(t, cmd.reply.(*msgs.ParseReply).Changed)
	require.Equal(t, ledcmd.On, d.Bank.State(ledcmd.Led3))

	cmd = &testCommand{msg: msgs.NewParseRequest([]byte("esp led3"), true)}
	d.HandleCommand(ctx, cmd)
	require.False(t, cmd.reply.(*msgs.ParseReply).Success)

	cmd = &testCommand{msg: &msgs.LedStatusQuery{}}
	d.HandleCommand(ctx, cmd)
	status := cmd.reply.(*msgs.LedStatus)
	require.Len(t, status.Leds, 4)
	require.False(t, status.Leds[0].On)
	require.True(t, status.Leds[1].On)
	require.True(t, status.Leds[2].On)
	require.False(t, status.Leds[3].On)
	require.EqualValues(t, 2, status.FramesAccepted)
	require.EqualValues(t, 1, status.FramesRejected)

	cmd = &testCommand{msg: msgs.NewCommandOK()}
	d.HandleCommand(ctx, cmd)
	require.Equal(t, msgs.ErrUnsupportedCommand.Error(), cmd.reply.(*msgs.CommandErr).Error())
}

func TestMetricsHandler(t *testing.T) {
	d, _ := newTestDevice(nil)
	d.HandleFrame(context.Background(), []byte("esp led1 on"))
	w := httptest.NewRecorder()
	d.Metrics.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body := w.Body.String()
	require.True(t, strings.Contains(body, `uartled_frames_total{result="accepted",source="uart"} 1`), body)
	require.True(t, strings.Contains(body, `uartled_led_on{led="led1"} 1`), body)
}
