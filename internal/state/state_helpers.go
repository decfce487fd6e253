package state

import "memorygame/internal/board"

// InPlay reports whether the session accepts card picks or has a pair
// under evaluation.
func (s *State) InPlay() bool {
	return s.FSM.Is(Playing) || s.FSM.Is(Evaluating)
}

// IsEvaluating reports whether a pair is awaiting comparison.
func (s *State) IsEvaluating() bool {
	return s.FSM.Is(Evaluating)
}

// IsOver reports whether the session reached a terminal state.
func (s *State) IsOver() bool {
	return s.FSM.Is(Won) || s.FSM.Is(TimeExpired) || s.FSM.Is(Finished)
}

// TotalCards returns the number of cards dealt.
func (s *State) TotalCards() int {
	return len(s.Cards)
}

// MatchedPairs returns the number of pairs found so far.
func (s *State) MatchedPairs() int {
	return board.CountMatchedPairs(s.Cards)
}

// LostByTimeout reports a challenge game that ran out of time.
func (s *State) LostByTimeout(limitSeconds int) bool {
	return s.Config.Modes.Challenge && s.Elapsed >= limitSeconds && !s.Won
}

// CardsCopy returns a copy of the board.
func (s *State) CardsCopy() []board.Card {
	out := make([]board.Card, len(s.Cards))
	copy(out, s.Cards)
	return out
}

// LogCopy returns a copy of the event log.
func (s *State) LogCopy() []string {
	out := make([]string, len(s.Log))
	copy(out, s.Log)
	return out
}
