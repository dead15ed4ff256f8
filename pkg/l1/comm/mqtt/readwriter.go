package mqtt

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/uartled/pkg/l1"
)

// Topic suffixes under <type>/<id>/.
const (
	TopicCmd  = "cmd"
	TopicMsg  = "msg"
	TopicMeta = "meta"
)

// DefaultPacketBuffer is the number of packets buffered before dropping.
const DefaultPacketBuffer = 16

// ReadWriter implements PacketReadWriter over a pair of topics.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh chan []byte
	done     chan struct{}
	lock     sync.RWMutex
	closed   bool
}

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:    q,
		packetCh: make(chan []byte, DefaultPacketBuffer),
		done:     make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForConnector sets topics using default convention for connector:
// SubTopic = type/id/msg
// PubTopic = type/id/cmd
func (p *ReadWriter) ForConnector(ref l1.DeviceRef) *ReadWriter {
	prefix := ref.Name() + "/"
	return p.WithTopics(prefix+TopicMsg, prefix+TopicCmd)
}

// ForDevice sets topics using default convention for device:
// SubTopic = type/id/cmd
// PubTopic = type/id/msg
func (p *ReadWriter) ForDevice(ref l1.DeviceRef) *ReadWriter {
	prefix := ref.Name() + "/"
	return p.WithTopics(prefix+TopicCmd, prefix+TopicMsg)
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.Queue.Sub(p.SubTopic, Handler(p.handleMsg))
	defer sub.Close()
	defer p.Close()
	<-ctx.Done()
	return ctx.Err()
}

// Close implements io.Closer. Pending ReadPacket returns io.EOF.
func (p *ReadWriter) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if !p.closed {
		p.closed = true
		close(p.done)
	}
	return nil
}

func (p *ReadWriter) handleMsg(topic string, payload []byte) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.packetCh <- payload:
	default:
		glog.Warningf("drop packet from %q: reader too slow", topic)
	}
}
