// Package state holds the synchronous part of a single-player session: the
// board, the two selection slots, counters, flags and the event log, driven
// through a looplab/fsm lifecycle. It has no clock and no locking; the game
// package serialises access and schedules the delayed steps.
package state

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"

	"memorygame/internal/board"
	"memorygame/internal/scoring"
)

// Lifecycle states.
const (
	Idle        = "idle"
	Playing     = "playing"
	Evaluating  = "evaluating"
	Won         = "won"
	TimeExpired = "timeExpired"
	Finished    = "finished"
)

// Lifecycle events.
const (
	EventDeal     = "deal"
	EventReveal   = "reveal"
	EventResolve  = "resolve"
	EventComplete = "complete"
	EventExpire   = "expire"
	EventFinish   = "finish"
	EventClear    = "clear"
)

// Config is the immutable configuration of one run.
type Config struct {
	Alias   string
	Rows    int
	Columns int
	Modes   scoring.Modes
}

// State is one session. Zero selection slots hold -1.
type State struct {
	Config   Config
	Cards    []board.Card
	First    int
	Second   int
	Attempts int
	Elapsed  int // Seconds
	Log      []string

	Won         bool
	TimeExpired bool
	// Deadline reached while a pair was being evaluated; applied on resolve.
	ExpirePending bool

	FSM    *fsm.FSM
	logger *log.Logger
}

// New returns an idle session.
func New(logger *log.Logger) *State {
	s := &State{First: -1, Second: -1, logger: logger}
	s.FSM = fsm.NewFSM(
		Idle,
		getStateTransitions(),
		getStateCallbacks(s),
	)
	return s
}

// Pick is the outcome of selecting a card.
type Pick int

const (
	PickIgnored Pick = iota
	PickFirst
	PickSecond // A pair is now awaiting evaluation
)

// Resolution is the outcome of evaluating the pending pair.
type Resolution struct {
	Matched   bool
	Completed bool // Every card is matched; the session is won
	Expired   bool // A deferred deadline was applied
}

// Deal discards any current run and starts a new one on cards.
func (s *State) Deal(ctx context.Context, cfg Config, cards []board.Card) error {
	if !s.FSM.Is(Idle) {
		if err := s.FSM.Event(ctx, EventClear); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	s.Config = cfg
	s.Cards = cards
	return s.FSM.Event(ctx, EventDeal)
}

// Clear returns the session to idle, dropping the board.
func (s *State) Clear(ctx context.Context) {
	if s.FSM.Is(Idle) {
		return
	}
	_ = s.FSM.Event(ctx, EventClear)
}

// Pick turns card id face up. It is ignored unless a game is in play and the
// card is face down and unmatched.
func (s *State) Pick(ctx context.Context, id int) Pick {
	if !s.FSM.Is(Playing) || id < 0 || id >= len(s.Cards) {
		return PickIgnored
	}
	c := &s.Cards[id]
	if c.FaceUp || c.Matched {
		return PickIgnored
	}

	c.FaceUp = true
	if s.First < 0 {
		s.First = id
		s.appendLog(fmt.Sprintf("Flip card 1: %s", c.Content))
		return PickFirst
	}

	s.Second = id
	s.appendLog(fmt.Sprintf("Flip card 2: %s", c.Content))
	s.Attempts++
	if err := s.FSM.Event(ctx, EventReveal); err != nil {
		s.logger.Error("reveal rejected", "err", err)
	}
	return PickSecond
}

// Resolve compares the pending pair. The second result is false when no
// pair is pending.
func (s *State) Resolve(ctx context.Context) (Resolution, bool) {
	if !s.FSM.Is(Evaluating) || s.First < 0 || s.Second < 0 {
		return Resolution{}, false
	}

	a, b := &s.Cards[s.First], &s.Cards[s.Second]
	var res Resolution
	if a.Content == b.Content {
		a.Matched, b.Matched = true, true
		res.Matched = true
		s.appendLog(fmt.Sprintf("Turn %d: %s + %s => Match", s.Attempts, a.Content, b.Content))
	} else {
		a.FaceUp, b.FaceUp = false, false
		s.appendLog(fmt.Sprintf("Turn %d: %s + %s ≠ Match", s.Attempts, a.Content, b.Content))
	}
	s.First, s.Second = -1, -1

	var event string
	switch {
	case res.Matched && board.AllMatched(s.Cards):
		event = EventComplete
		res.Completed = true
	case s.ExpirePending:
		event = EventExpire
		res.Expired = true
	default:
		event = EventResolve
	}
	if err := s.FSM.Event(ctx, event); err != nil {
		s.logger.Error("resolve rejected", "event", event, "err", err)
	}
	return res, true
}

// Tick advances the clock by one second. It reports false when the session
// is not running. deadline reports that the challenge limit was reached and
// the timer should stop; expired reports that time ran out right away rather
// than after the pending evaluation.
func (s *State) Tick(ctx context.Context, limitSeconds int) (ticked, deadline, expired bool) {
	if !s.InPlay() {
		return false, false, false
	}
	if s.ExpirePending {
		return false, true, false
	}

	s.Elapsed++
	if !s.Config.Modes.Challenge || s.Elapsed < limitSeconds {
		return true, false, false
	}

	if s.FSM.Is(Evaluating) {
		s.ExpirePending = true
		return true, true, false
	}
	if err := s.FSM.Event(ctx, EventExpire); err != nil {
		s.logger.Error("expire rejected", "err", err)
		return true, true, false
	}
	return true, true, true
}

// Finish closes a won or expired session. It fails for any other state,
// which makes the finishing step run at most once.
func (s *State) Finish(ctx context.Context) error {
	return s.FSM.Event(ctx, EventFinish)
}

func (s *State) appendLog(line string) {
	s.Log = append(s.Log, line)
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: EventDeal, Src: []string{Idle}, Dst: Playing},

		// Pair evaluation
		{Name: EventReveal, Src: []string{Playing}, Dst: Evaluating},
		{Name: EventResolve, Src: []string{Evaluating}, Dst: Playing},
		{Name: EventComplete, Src: []string{Evaluating}, Dst: Won},

		// Clock
		{Name: EventExpire, Src: []string{Playing, Evaluating}, Dst: TimeExpired},

		// End
		{Name: EventFinish, Src: []string{Won, TimeExpired}, Dst: Finished},
		{Name: EventClear, Src: []string{Playing, Evaluating, Won, TimeExpired, Finished}, Dst: Idle},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			s.logger.Debug("session transition", "event", e.Event, "from", e.Src, "to", e.Dst)
		},
		"enter_" + Idle: func(_ context.Context, e *fsm.Event) {
			s.Config = Config{}
			s.Cards = nil
			s.First, s.Second = -1, -1
			s.Attempts = 0
			s.Elapsed = 0
			s.Log = nil
			s.Won = false
			s.TimeExpired = false
			s.ExpirePending = false
		},
		"enter_" + Won: func(_ context.Context, e *fsm.Event) {
			s.Won = true
		},
		"enter_" + TimeExpired: func(_ context.Context, e *fsm.Event) {
			s.TimeExpired = true
			s.ExpirePending = false
		},
	}
}
