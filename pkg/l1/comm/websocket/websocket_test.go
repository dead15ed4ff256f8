package websocket

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l0/ledcmd"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm/stream"
	"github.com/robotalks/uartled/pkg/l1/msgs"
)

var testInfo = l1.DeviceInfo{
	Ref:  l1.DeviceRef{Type: "uartled", ID: "test"},
	Meta: l1.DeviceMeta{Description: "test board", Labels: map[string]string{"leds": "4"}},
}

func startServer(t *testing.T) (*Server, *httptest.Server, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(testInfo, l1.HandleCommandFunc(func(ctx context.Context, cmd l1.Command) {
		if _, ok := cmd.Msg().(*msgs.LedStatusQuery); ok {
			status := &msgs.LedStatus{}
			status.AddLed(ledcmd.Led1, ledcmd.On)
			cmd.Done(status)
			return
		}
		cmd.Done(msgs.NewCommandErr(msgs.ErrUnsupportedCommand))
	})).WithContext(ctx)
	hs := httptest.NewServer(srv.Handler())
	return srv, hs, func() {
		cancel()
		hs.Close()
	}
}

func TestConnectorDiscover(t *testing.T) {
	_, hs, stop := startServer(t)
	defer stop()

	c, err := NewConnector(hs.URL)
	require.NoError(t, err)
	infos, err := c.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, testInfo.Ref, infos[0].Ref)
	require.Equal(t, "test board", infos[0].Meta.Description)
	require.Equal(t, "4", infos[0].Meta.Labels["leds"])
}

func TestConnectorConnect(t *testing.T) {
	srv, hs, stop := startServer(t)
	defer stop()

	c, err := NewConnector("ws" + hs.URL[len("http"):])
	require.NoError(t, err)

	_, err = c.Connect(context.Background(), l1.DeviceRef{Type: "uartled", ID: "other"})
	require.Equal(t, ErrDeviceMismatch, err)

	conn, err := c.Connect(context.Background(), testInfo.Ref)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	evCh := make(chan fx.Message, 1)
	conn.OnEvent(fx.HandleMessageFunc(func(ctx context.Context, msg fx.Message) { evCh <- msg }))
	go conn.Run(ctx)

	waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
	defer waitCancel()
	reply, err := l1.Wait(waitCtx, conn.DoCommand(&msgs.LedStatusQuery{}))
	require.NoError(t, err)
	status, ok := reply.(*msgs.LedStatus)
	require.True(t, ok)
	require.Len(t, status.Leds, 1)

	_, err = l1.Wait(waitCtx, conn.DoCommand(msgs.LedSetFrom(ledcmd.ParseString("esp led1 off"))))
	require.Error(t, err)

	require.Equal(t, 1, srv.Clients())
	require.NoError(t, srv.SendEvent(ctx, msgs.NewLedChanged(ledcmd.Led1, ledcmd.Off, "uart")))
	select {
	case msg := <-evCh:
		_, ok := msg.(*msgs.LedChanged)
		require.True(t, ok)
	case <-waitCtx.Done():
		t.Fatal("no event")
	}
}

func TestNewConnectorScheme(t *testing.T) {
	_, err := NewConnector("mqtt://localhost")
	require.Error(t, err)
	c, err := NewConnector("wss://example.com/led/")
	require.NoError(t, err)
	require.Equal(t, "wss://example.com/led/ws", c.endpoint(PathWS, true))
	require.Equal(t, "https://example.com/led/meta", c.endpoint(PathMeta, false))
}

func TestOversizedMessageSkipped(t *testing.T) {
	_, hs, stop := startServer(t)
	defer stop()

	ws, err := websocket.Dial("ws"+hs.URL[len("http"):]+PathWS, "", hs.URL)
	require.NoError(t, err)
	rw := New(ws)
	defer rw.Close()

	big := make([]byte, stream.MaxPacketSize+1)
	require.Equal(t, websocket.ErrFrameTooLarge, rw.WritePacket(big))
	require.NoError(t, websocket.Message.Send(ws, big))

	typed, err := msgs.TypedFrom(&msgs.LedStatusQuery{})
	require.NoError(t, err)
	typed.Sequence = 7
	data, err := typed.Encode()
	require.NoError(t, err)
	require.NoError(t, rw.WritePacket(data))

	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	reply, err := msgs.DecodeTyped(pkt)
	require.NoError(t, err)
	require.Equal(t, uint32(7), reply.Sequence)
	require.True(t, reply.IsReply())
	msg, err := reply.Decode()
	require.NoError(t, err)
	_, ok := msg.(*msgs.LedStatus)
	require.True(t, ok)
}
