package mock

import (
	"sync"

	"github.com/hse-go/hses"
)

// Handler consumes a decoded request frame and the mutable state and
// returns a response payload, or a non-zero status/added-status pair on
// failure (§4.4, §6.3).
type Handler func(state *State, frame *hses.RequestFrame) (payload []byte, status byte, addedStatus uint16)

// HandlerRegistry maps command ids to Handlers (§6.3).
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[uint16]Handler
}

// NewHandlerRegistry returns an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[uint16]Handler)}
}

// Register installs h as the handler for commandID, replacing any
// existing handler for that id.
func (r *HandlerRegistry) Register(commandID uint16, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[commandID] = h
}

// Dispatch looks up the handler for frame's command id and invokes it.
// An unregistered command id yields StatusUndefinedCommand (§4.4).
func (r *HandlerRegistry) Dispatch(state *State, frame *hses.RequestFrame) (payload []byte, status byte, addedStatus uint16) {
	r.mu.RLock()
	h, ok := r.handlers[frame.CommandID]
	r.mu.RUnlock()

	if !ok {
		return nil, hses.StatusUndefinedCommand, 0
	}
	return h(state, frame)
}
