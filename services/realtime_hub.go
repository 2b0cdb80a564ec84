package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type WSClient struct {
	UserKey string
	Conn    *websocket.Conn

	writeMu sync.Mutex
}

// Write serialises writes; gorilla connections allow one concurrent writer.
func (c *WSClient) Write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// RealtimeHub fans alerts out to every open socket of a user.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserKey] == nil {
		h.clients[c.UserKey] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserKey][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserKey]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserKey)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Connections returns the number of open sockets for a user.
func (h *RealtimeHub) Connections(userKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userKey])
}

func (h *RealtimeHub) Broadcast(userKey string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("marshal realtime payload")
		return
	}
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userKey]))
	for c := range h.clients[userKey] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Write(websocket.TextMessage, msg); err != nil {
			log.Debug().Err(err).Msg("realtime write failed")
		}
	}
}
