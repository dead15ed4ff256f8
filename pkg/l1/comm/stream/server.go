package stream

import (
	"context"
	"errors"
	"net"

	"github.com/golang/glog"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm"
)

// ErrDiscoverUnsupported indicates a plain stream can't enumerate devices.
var ErrDiscoverUnsupported = errors.New("discovery not supported over tcp")

// Server implements l1.Registrar by accepting TCP clients.
type Server struct {
	Listener net.Listener

	hub comm.Hub
}

// Listen creates a Server listening on addr.
func Listen(addr string, handler l1.CommandHandler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{Listener: ln}
	s.hub.Handler = handler
	return s, nil
}

// Name implements Named.
func (s *Server) Name() string {
	return "tcp"
}

// SendEvent implements Registrar.
func (s *Server) SendEvent(ctx context.Context, msg fx.Message) error {
	return s.hub.SendEvent(ctx, msg)
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	return s.hub.Len()
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, s.Listener, func() error {
		for {
			conn, err := s.Listener.Accept()
			if err != nil {
				return err
			}
			glog.V(2).Infof("tcp client %s connected", conn.RemoteAddr())
			go func(conn net.Conn) {
				err := s.hub.Serve(ctx, New(conn))
				glog.V(2).Infof("tcp client %s disconnected: %v", conn.RemoteAddr(), err)
			}(conn)
		}
	})
}

// Connector implements l1.Connector to a Server.
type Connector struct {
	Addr string
}

// Discover implements Connector.
func (c *Connector) Discover(ctx context.Context) ([]l1.DeviceInfo, error) {
	return nil, ErrDiscoverUnsupported
}

// Connect implements Connector. The ref is ignored: the address
// identifies the device.
func (c *Connector) Connect(ctx context.Context, ref l1.DeviceRef) (l1.DeviceConn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return nil, err
	}
	return comm.NewDeviceConn(New(conn)), nil
}
