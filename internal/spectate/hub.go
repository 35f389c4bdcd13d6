package spectate

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// maxClients bounds concurrent viewers.
const maxClients = 64

// Hub fans frames out to connected viewers. New viewers receive the most
// recent frame immediately.
type Hub struct {
	mu         sync.Mutex
	clients    map[*client]bool
	last       []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	logger     *log.Logger
}

// NewHub creates a hub. Run must be started before viewers connect.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client, 16),
		unregister: make(chan *client, 16),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes viewer registrations until ctx is done, then disconnects
// everyone. A hub runs once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			if h.last != nil {
				c.enqueue(h.last)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("viewer joined", "addr", c.addr, "viewers", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("viewer left", "addr", c.addr, "viewers", n)

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Publish encodes a frame and queues it for every viewer. Slow viewers
// drop frames rather than stall the game.
func (h *Hub) Publish(f Frame) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = data
	for c := range h.clients {
		c.enqueue(data)
	}
	return nil
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// join hands a viewer to Run. It reports false once the hub has stopped.
func (h *Hub) join(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) full() bool {
	return h.ClientCount() >= maxClients
}
