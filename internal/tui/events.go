// Package tui provides the Bubble Tea screens: the single-player board, the
// two-player board and the play history.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"memorygame/internal/game"
)

// eventMsg wakes a model after the game published an event. Models re-read
// the game snapshot on every wake-up; events are dropped when the buffer is
// full.
type eventMsg struct {
	event game.Event
}

type subscriber interface {
	Subscribe(l game.Listener) func()
}

// bridge forwards game events into the Bubble Tea loop.
type bridge struct {
	ch          chan game.Event
	unsubscribe func()
}

func newBridge(g subscriber) *bridge {
	b := &bridge{ch: make(chan game.Event, 64)}
	b.unsubscribe = g.Subscribe(func(e game.Event) {
		select {
		case b.ch <- e:
		default:
		}
	})
	return b
}

// wait returns a command that blocks until the next event.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-b.ch}
	}
}

func (b *bridge) close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}
