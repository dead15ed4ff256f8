package mqtt

import (
	"context"
	"encoding/json"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/comm"
)

// Registrar implements l1.Registrar using MQTT.
// The device metadata is published retained to <type>/<id>/meta while
// connected and cleared by will message or on exit.
type Registrar struct {
	Queue *Queue
	Info  l1.DeviceInfo

	metaJSON  []byte
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info l1.DeviceInfo, handler l1.CommandHandler) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+metaTopic(info.Ref), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("uartled:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: meta,
	}
	r.Queue.OnConnect = func(*Queue) { r.onConnected() }
	r.registrar.Init(NewPacketReadWriter(r.Queue).ForDevice(info.Ref), handler)
	return r, nil
}

// Name implements Named.
func (r *Registrar) Name() string {
	return "mqtt"
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	if !r.Queue.Client.IsConnected() {
		return comm.ErrConnClosed
	}
	return r.registrar.SendEvent(ctx, msg)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	r.Queue.Connect()
	err := r.registrar.Run(ctx)
	r.Queue.PubWith(metaTopic(r.Info.Ref), nil, 1, true).Wait()
	r.Queue.Close()
	if err == context.Canceled {
		return nil
	}
	return err
}

func (r *Registrar) onConnected() {
	r.Queue.PubWith(metaTopic(r.Info.Ref), r.metaJSON, 1, true)
}

func metaTopic(ref l1.DeviceRef) string {
	return ref.Name() + "/" + TopicMeta
}
