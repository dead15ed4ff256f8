package websocket

import (
	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/uartled/pkg/l1/comm/stream"
)

// ReadWriter carries one typed packet per binary websocket message.
// Messages larger than stream.MaxPacketSize are refused, same as the
// TCP transport.
type ReadWriter struct {
	conn *websocket.Conn
}

// New wraps websocket.Conn and switches it to binary frames.
func New(conn *websocket.Conn) *ReadWriter {
	conn.PayloadType = websocket.BinaryFrame
	conn.MaxPayloadBytes = stream.MaxPacketSize
	return &ReadWriter{conn: conn}
}

// ReadPacket implements PacketReader. Oversized messages are skipped.
func (p *ReadWriter) ReadPacket() (pkt []byte, err error) {
	for {
		err = websocket.Message.Receive(p.conn, &pkt)
		if err != websocket.ErrFrameTooLarge {
			return
		}
		glog.Warningf("websocket %s: oversized message dropped", p.conn.RemoteAddr())
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	if len(pkt) > stream.MaxPacketSize {
		return websocket.ErrFrameTooLarge
	}
	return websocket.Message.Send(p.conn, pkt)
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	return p.conn.Close()
}
