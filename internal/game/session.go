package game

import (
	"errors"

	"memorygame/internal/board"
	"memorygame/internal/catalog"
	"memorygame/internal/scoring"
)

// ErrInvalidConfiguration is returned for board sizes or options outside
// the supported bounds.
var ErrInvalidConfiguration = errors.New("invalid game configuration")

// Progression is the part of the player profile a game reads and rewards.
type Progression interface {
	Active(kind catalog.Kind) catalog.Item
	Achievements() scoring.AchievementSet
	Reward(coins int, titles []string) bool
}

// Options configure a single-player run.
type Options struct {
	Alias string
	Rows  int
	Modes scoring.Modes
}

// Snapshot is a read-only view of a session for presentation.
type Snapshot struct {
	SessionID   string
	State       string
	Alias       string
	Rows        int
	Columns     int
	Modes       scoring.Modes
	Cards       []board.Card
	Attempts    int
	Elapsed     int
	Evaluating  bool
	InPlay      bool // Playing or evaluating
	Over        bool // Won, expired or finished
	// Won and TimeExpired stay set after the session finishes, until the
	// next Start or Reset.
	Won         bool
	TimeExpired bool
	Matched     int // Pairs
	Pairs       int
	Log         []string
}

// Result is the outcome of a finished session.
type Result struct {
	SessionID       string
	Alias           string
	ElapsedSeconds  int // -1 when the timer was off
	GridSize        int // Rows
	Attempts        int
	Won             bool
	LostByTimeout   bool
	Mode            string
	CoinsEarned     int
	NewAchievements []string
}
