package comm

import (
	"context"
	"sync"

	fx "github.com/robotalks/uartled/pkg/framework"
	"github.com/robotalks/uartled/pkg/l1"
)

// Hub serves a device over many packet connections.
// Each connection gets its own Registrar, events are sent to all of them.
type Hub struct {
	Handler l1.CommandHandler

	lock  sync.RWMutex
	conns map[*Registrar]struct{}
}

// Serve runs a Registrar on the connection until it's closed or ctx is done.
func (h *Hub) Serve(ctx context.Context, rw PacketReadWriter) error {
	reg := NewRegistrar(rw, h.Handler)
	h.lock.Lock()
	if h.conns == nil {
		h.conns = make(map[*Registrar]struct{})
	}
	h.conns[reg] = struct{}{}
	h.lock.Unlock()
	defer func() {
		h.lock.Lock()
		delete(h.conns, reg)
		h.lock.Unlock()
	}()
	return reg.Run(ctx)
}

// Len returns the number of connections being served.
func (h *Hub) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.conns)
}

// SendEvent implements Registrar.
func (h *Hub) SendEvent(ctx context.Context, msg fx.Message) error {
	h.lock.RLock()
	regs := make([]*Registrar, 0, len(h.conns))
	for reg := range h.conns {
		regs = append(regs, reg)
	}
	h.lock.RUnlock()
	var errs fx.AggregatedError
	for _, reg := range regs {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}
