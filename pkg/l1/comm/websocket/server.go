package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm"
)

// Paths served by Server.
const (
	PathWS   = "/ws"
	PathMeta = "/meta"
)

// MetaDoc is the document served on PathMeta.
type MetaDoc struct {
	Type string        `json:"type"`
	ID   string        `json:"id"`
	Meta l1.DeviceMeta `json:"meta"`
}

// Server implements l1.Registrar over websocket connections.
// Every connection is a client of the device.
type Server struct {
	Info l1.DeviceInfo

	hub comm.Hub
	ctx context.Context
}

// NewServer creates a Server.
func NewServer(info l1.DeviceInfo, handler l1.CommandHandler) *Server {
	s := &Server{Info: info, ctx: context.Background()}
	s.hub.Handler = handler
	return s
}

// Name implements Named.
func (s *Server) Name() string {
	return "websocket"
}

// WithContext sets the context which closes all connections when done.
func (s *Server) WithContext(ctx context.Context) *Server {
	s.ctx = ctx
	return s
}

// Register adds the handlers to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.Handle(PathWS, websocket.Handler(s.serveConn))
	mux.HandleFunc(PathMeta, s.serveMeta)
}

// Handler returns an http.Handler serving the device.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	return s.hub.Len()
}

// SendEvent implements Registrar.
func (s *Server) SendEvent(ctx context.Context, msg fx.Message) error {
	return s.hub.SendEvent(ctx, msg)
}

func (s *Server) serveConn(conn *websocket.Conn) {
	remote := conn.Request().RemoteAddr
	glog.V(2).Infof("websocket client %s connected", remote)
	err := s.hub.Serve(s.ctx, New(conn))
	glog.V(2).Infof("websocket client %s disconnected: %v", remote, err)
}

func (s *Server) serveMeta(w http.ResponseWriter, r *http.Request) {
	doc := MetaDoc{Type: s.Info.Ref.Type, ID: s.Info.Ref.ID, Meta: s.Info.Meta}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&doc); err != nil {
		glog.Errorf("write meta failed: %v", err)
	}
}
