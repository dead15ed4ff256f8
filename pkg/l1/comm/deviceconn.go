package comm

import (
	"container/list"
	"context"
	"sync"
	"time"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l1"
	"github.com/robotalks/uartled/pkg/l1/msgs"
)

// DeviceConn provides base implementation for l1.DeviceConn using Pipe.
type DeviceConn struct {
	Expiration time.Duration

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	events   fx.MessageHandler
	lock     sync.Mutex
}

// DefaultCommandExpiration is the default expiration expecting a result.
const DefaultCommandExpiration = 1 * time.Second

// NewDeviceConn creates a DeviceConn.
func NewDeviceConn(rw PacketReadWriter) *DeviceConn {
	c := &DeviceConn{}
	c.Init(rw)
	return c
}

// Init initializes DeviceConn with defaults.
func (c *DeviceConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// OnEvent implements DeviceConn.
func (c *DeviceConn) OnEvent(h fx.MessageHandler) {
	c.lock.Lock()
	c.events = h
	c.lock.Unlock()
}

// DoCommand implements DeviceConn.
func (c *DeviceConn) DoCommand(msg fx.Message) l1.CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq++
	if c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: time.Now().Add(c.Expiration),
		result:   make(chan l1.Result, 1),
	}
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.result <- l1.Result{Err: err}
		close(f.result)
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// Pending returns the number of commands waiting for replies.
func (c *DeviceConn) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.commands.Len()
}

// Run implements Runnable.
// Pending commands fail with ErrConnClosed when it returns.
func (c *DeviceConn) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.purgeLoop(ctx)
	err := c.pipe.Run(ctx)
	c.failAll(ErrConnClosed)
	return err
}

// Close closes the underlying connection.
func (c *DeviceConn) Close() error {
	return c.pipe.Close()
}

func (c *DeviceConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		c.lock.Lock()
		h := c.events
		c.lock.Unlock()
		if h != nil {
			h.HandleMessage(ctx, msg)
		}
		return nil
	}
	if !typed.IsReply() {
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		return nil
	}
	c.commands.Remove(f.elem)
	delete(c.seqMap, typed.Sequence)
	result := l1.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	f.result <- result
	close(f.result)
	return nil
}

func (c *DeviceConn) purgeLoop(ctx context.Context) {
	interval := c.Expiration / 4
	if interval <= 0 {
		interval = DefaultCommandExpiration / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.purgeExpired(now)
		}
	}
}

func (c *DeviceConn) purgeExpired(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		elem := c.commands.Front()
		f := elem.Value.(*commandFuture)
		if f.expireAt.After(now) {
			break
		}
		c.commands.Remove(elem)
		delete(c.seqMap, f.seq)
		f.result <- l1.Result{Err: context.DeadlineExceeded}
		close(f.result)
	}
}

func (c *DeviceConn) failAll(err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		f := c.commands.Remove(c.commands.Front()).(*commandFuture)
		delete(c.seqMap, f.seq)
		f.result <- l1.Result{Err: err}
		close(f.result)
	}
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan l1.Result
}

func (c *commandFuture) ResultChan() <-chan l1.Result {
	return c.result
}
