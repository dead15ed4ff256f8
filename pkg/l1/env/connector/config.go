package connector

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm/mqtt"
	"github.com/robotalks/uartled/pkg/l1/comm/stream"
	"github.com/robotalks/uartled/pkg/l1/comm/websocket"
)

// Config provides common options to setup Connectors.
type Config struct {
	Ref l1.DeviceRef

	// RegistryURL specifies where devices are found.
	// e.g. mqtt://host:port/topic-prefix, ws://host:port, tcp://host:port
	RegistryURL string
}

var defaultConfig = Config{
	RegistryURL: "mqtt://localhost:1883/",
}

func init() {
	if val := os.Getenv("ULED_DEVICE_TYPE"); val != "" {
		defaultConfig.Ref.Type = val
	}
	if val := os.Getenv("ULED_DEVICE_ID"); val != "" {
		defaultConfig.Ref.ID = val
	}
	if val := os.Getenv("ULED_REGISTRY_URL"); val != "" {
		defaultConfig.RegistryURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Ref.Type, "device-type", defaultConfig.Ref.Type, "Device type to connect.")
	flag.StringVar(&defaultConfig.Ref.ID, "device-id", defaultConfig.Ref.ID, "Device ID to connect.")
	flag.StringVar(&defaultConfig.RegistryURL, "registry", defaultConfig.RegistryURL, "Device registry URL: mqtt://, ws://, tcp://")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConnector creates a Connector using current config.
func (c *Config) NewConnector() (l1.Connector, error) {
	parsedURL, err := url.Parse(c.RegistryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %v", err)
	}
	switch parsedURL.Scheme {
	case "mqtt", "mqtts":
		return mqtt.NewConnector(c.RegistryURL)
	case "ws", "wss", "http", "https":
		return websocket.NewConnector(c.RegistryURL)
	case "tcp":
		return &stream.Connector{Addr: parsedURL.Host}, nil
	default:
		return nil, fmt.Errorf("unknown registry URL scheme: %q", parsedURL.Scheme)
	}
}

// MustNewConnector creates a Connector and fails on error.
func (c *Config) MustNewConnector() l1.Connector {
	conn, err := c.NewConnector()
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}

// Connect directly connects to the device.
func (c *Config) Connect(ctx context.Context) (l1.DeviceConn, error) {
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	if _, isMQTT := connector.(*mqtt.Connector); isMQTT && !c.Ref.IsValid() {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	return connector.Connect(ctx, c.Ref)
}

// MustConnect connects to the device or fails.
func (c *Config) MustConnect(ctx context.Context) l1.DeviceConn {
	conn, err := c.Connect(ctx)
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}
