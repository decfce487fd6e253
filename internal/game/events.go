package game

import (
	"slices"
	"sync"
)

// Event is a notification published by a game.
type Event interface {
	gameEvent()
}

// StartedEvent is published when a board is dealt.
type StartedEvent struct {
	Snapshot Snapshot
}

func (StartedEvent) gameEvent() {}

// ChangedEvent is published after a flip, a resolved pair or a clock tick.
type ChangedEvent struct {
	Snapshot Snapshot
}

func (ChangedEvent) gameEvent() {}

// FinishedEvent is published once per session, after the finishing step.
type FinishedEvent struct {
	Result Result
}

func (FinishedEvent) gameEvent() {}

// LocalChangedEvent is published by a two-player game on every change.
type LocalChangedEvent struct {
	Snapshot LocalSnapshot
}

func (LocalChangedEvent) gameEvent() {}

// LocalFinishedEvent is published when a two-player board is cleared.
type LocalFinishedEvent struct {
	Result LocalResult
}

func (LocalFinishedEvent) gameEvent() {}

// Listener receives game events. Listeners run on the goroutine that caused
// the event, after the game lock is released, and may call back into the game.
type Listener func(Event)

type emitter struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	next      int
}

// Subscribe registers l and returns a function that removes it.
func (e *emitter) Subscribe(l Listener) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[int]Listener)
	}
	id := e.next
	e.next++
	e.listeners[id] = l
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

func (e *emitter) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	e.mu.RLock()
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	listeners := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, e.listeners[id])
	}
	e.mu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}
