package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/websocket"

	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm"
)

// ErrDeviceMismatch indicates the server hosts a different device.
var ErrDeviceMismatch = errors.New("device not served on this endpoint")

// Connector implements l1.Connector against a single device Server.
type Connector struct {
	// BaseURL is the http(s) URL of the device Server.
	BaseURL *url.URL
	Client  *http.Client
}

// NewConnector creates a Connector. Both ws(s):// and http(s):// URLs are accepted.
func NewConnector(serverURL string) (*Connector, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "ws", "http":
		u.Scheme = "http"
	case "wss", "https":
		u.Scheme = "https"
	default:
		return nil, fmt.Errorf("unsupported websocket scheme: %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return &Connector{BaseURL: u, Client: http.DefaultClient}, nil
}

func (c *Connector) endpoint(path string, ws bool) string {
	u := *c.BaseURL
	u.Path += path
	if ws {
		if u.Scheme == "https" {
			u.Scheme = "wss"
		} else {
			u.Scheme = "ws"
		}
	}
	return u.String()
}

// Discover implements Connector.
func (c *Connector) Discover(ctx context.Context) ([]l1.DeviceInfo, error) {
	req, err := http.NewRequest(http.MethodGet, c.endpoint(PathMeta, false), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover: %s", resp.Status)
	}
	var doc MetaDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("discover: %v", err)
	}
	return []l1.DeviceInfo{{Ref: l1.DeviceRef{Type: doc.Type, ID: doc.ID}, Meta: doc.Meta}}, nil
}

// Connect implements Connector.
// An invalid ref connects to whatever device is served.
func (c *Connector) Connect(ctx context.Context, ref l1.DeviceRef) (l1.DeviceConn, error) {
	if ref.IsValid() {
		infos, err := c.Discover(ctx)
		if err != nil {
			return nil, err
		}
		if infos[0].Ref != ref {
			return nil, ErrDeviceMismatch
		}
	}
	config, err := websocket.NewConfig(c.endpoint(PathWS, true), c.BaseURL.String())
	if err != nil {
		return nil, err
	}
	ws, err := config.DialContext(ctx)
	if err != nil {
		return nil, err
	}
	ws.PayloadType = websocket.BinaryFrame
	return comm.NewDeviceConn(New(ws)), nil
}
