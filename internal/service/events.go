package service

import "github.com/wardrobeapp/wardrobe-server/internal/sse"

// EventEmitter publishes change notifications to connected clients.
// *sse.Manager satisfies it.
type EventEmitter interface {
	Emit(event sse.Event)
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

// Emit implements EventEmitter.
func (NoopEmitter) Emit(sse.Event) {}

var _ EventEmitter = (*sse.Manager)(nil)

func emitterOrNoop(e EventEmitter) EventEmitter {
	if e == nil {
		return NoopEmitter{}
	}
	return e
}
