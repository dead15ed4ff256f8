package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm"
)

// Connector implements l1.Connector using MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	options     *paho.ClientOptions
	topicPrefix string
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Connector{
		DiscoverTimeout: DefaultDiscoverTimeout,
		options:         opts,
		topicPrefix:     topicPrefix,
	}, nil
}

// ParseMetaTopic extracts the device ref from <type>/<id>/meta.
func ParseMetaTopic(topic string) (ref l1.DeviceRef, ok bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || items[2] != TopicMeta {
		return
	}
	ref = l1.DeviceRef{Type: items[0], ID: items[1]}
	return ref, ref.IsValid()
}

// Discover implements Connector.
// Devices with an empty (cleared) meta are offline and skipped.
func (c *Connector) Discover(ctx context.Context) (res []l1.DeviceInfo, err error) {
	q := NewQueue(c.options, c.topicPrefix)
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	defer q.Close()
	resCh := make(chan l1.DeviceInfo, 1)
	q.Sub("+/+/"+TopicMeta, Handler(func(topic string, payload []byte) {
		ref, ok := ParseMetaTopic(topic)
		if !ok || len(payload) == 0 {
			return
		}
		info := l1.DeviceInfo{Ref: ref}
		if err := json.Unmarshal(payload, &info.Meta); err != nil {
			glog.Warningf("invalid meta of %s: %v", ref.Name(), err)
		}
		select {
		case resCh <- info:
		case <-time.After(time.Second):
		}
	}))

	dur := c.DiscoverTimeout
	if dur == 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.After(dur)
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-timeout:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

// Connect implements Connector.
func (c *Connector) Connect(ctx context.Context, ref l1.DeviceRef) (l1.DeviceConn, error) {
	conn := &DeviceConn{
		Queue: NewQueue(c.options, c.topicPrefix),
	}
	conn.Init(NewPacketReadWriter(conn.Queue).ForConnector(ref))
	token := conn.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	return conn, nil
}

// DeviceConn implements l1.DeviceConn using MQTT.
type DeviceConn struct {
	comm.DeviceConn
	Queue *Queue
}

// Run implements Runnable. The MQTT client disconnects when it returns.
func (c *DeviceConn) Run(ctx context.Context) error {
	defer c.Queue.Close()
	return c.DeviceConn.Run(ctx)
}
