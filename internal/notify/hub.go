package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/R0UTS/Animal-Hospitalty/internal/metrics"
)

// Hub keeps the connected clients of this process grouped by room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	all   map[*Client]struct{}
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		rooms: map[string]map[*Client]struct{}{},
		all:   map[*Client]struct{}{},
		log:   log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.all[c] = struct{}{}
	h.mu.Unlock()
	metrics.RelayClientConnected()
}

// unregister drops c from every room and closes its send queue.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[c]; !ok {
		return
	}
	delete(h.all, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
	metrics.RelayClientDisconnected()
}

func (h *Hub) Join(c *Client, room string) bool {
	if !KnownRoom(room) {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[c]; !ok {
		return false
	}
	members, ok := h.rooms[room]
	if !ok {
		members = map[*Client]struct{}{}
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	return true
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Deliver sends ev once to every client in any of rooms. Clients whose queue
// is full miss the event.
func (h *Hub) Deliver(rooms []string, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("relay marshal failed", slog.String("event", ev.Name), slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := map[*Client]struct{}{}
	for _, room := range rooms {
		for c := range h.rooms[room] {
			if _, done := sent[c]; done {
				continue
			}
			sent[c] = struct{}{}
			select {
			case c.send <- msg:
			default:
				metrics.ObserveRelayDropped(ev.Name)
			}
		}
	}
}

// Publish delivers locally; it makes the hub usable as a single-instance
// backplane.
func (h *Hub) Publish(_ context.Context, rooms []string, ev Event) error {
	h.Deliver(rooms, ev)
	return nil
}

// Count returns the clients in room.
func (h *Hub) Count(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
