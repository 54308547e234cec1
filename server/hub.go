package server

import (
	"context"
	"encoding/json"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gomacflow/model_problems/NavierStokes2D"
)

const (
	sendBuffer      = 16
	broadcastBuffer = 16
)

// Msg is the envelope written to every websocket client.
type Msg struct {
	Type     string                   `json:"type"` // "snapshot" or "finished"
	Snapshot *NavierStokes2D.Snapshot `json:"snapshot,omitempty"`
	Content  string                   `json:"content,omitempty"`
}

// Hub maintains the set of active clients and broadcasts messages to the clients.
type Hub struct {
	Logger log.FieldLogger
	// All client bookkeeping happens on the Run goroutine
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	count      int32
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Logger:     log.StandardLogger(),
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			atomic.StoreInt32(&h.count, int32(len(h.clients)))
			h.Logger.WithFields(log.Fields{"remote": c.remote, "clients": len(h.clients)}).Info("client connected")
		case c := <-h.unregister:
			h.drop(c)
		case data := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					h.Logger.WithFields(log.Fields{"remote": c.remote}).Warn("client too slow, dropping")
					h.drop(c)
				}
			}
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	atomic.StoreInt32(&h.count, int32(len(h.clients)))
	h.Logger.WithFields(log.Fields{"remote": c.remote, "clients": len(h.clients)}).Info("client disconnected")
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int { return int(atomic.LoadInt32(&h.count)) }

// Broadcast queues a snapshot for every connected client. It blocks while the
// broadcast queue is full and returns early if ctx ends or the hub stops.
func (h *Hub) Broadcast(ctx context.Context, s *NavierStokes2D.Snapshot) error {
	return h.send(ctx, Msg{Type: "snapshot", Snapshot: s})
}

// Finish tells clients that the run is over.
func (h *Hub) Finish(ctx context.Context, content string) error {
	return h.send(ctx, Msg{Type: "finished", Content: content})
}

func (h *Hub) send(ctx context.Context, msg Msg) (err error) {
	var data []byte
	select {
	case <-h.done:
		return context.Canceled
	default:
	}
	if data, err = json.Marshal(&msg); err != nil {
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
		err = context.Canceled
	case <-ctx.Done():
		err = ctx.Err()
	}
	return
}
