package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"memorygame/internal/board"
	"memorygame/internal/catalog"
	"memorygame/internal/clock"
	"memorygame/internal/config"
	"memorygame/internal/scoring"
	"memorygame/internal/state"
)

// Player identifies a seat in a two-player game. Tie is only returned by
// Winner.
type Player int

const (
	Tie Player = iota
	Player1
	Player2
)

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	}
	return "Tie"
}

// Winner compares final scores. Equal scores are a tie.
func Winner(p1Score, p2Score int) Player {
	switch {
	case p1Score > p2Score:
		return Player1
	case p2Score > p1Score:
		return Player2
	}
	return Tie
}

// LocalSnapshot is a read-only view of a two-player game.
type LocalSnapshot struct {
	State      string
	Names      [2]string
	Current    Player
	Scores     [2]int
	Cards      []board.Card
	Columns    int
	Evaluating bool
	InPlay     bool
	Won        bool
	Log        []string
}

// LocalResult is the outcome of a cleared two-player board.
type LocalResult struct {
	Names           [2]string
	Scores          [2]int
	Winner          Player
	CoinsEarned     int
	NewAchievements []string
}

// LocalGame is a hot-seat game for two players sharing one board. Players
// keep the turn while they find pairs. There is no clock and no history.
type LocalGame struct {
	mu sync.Mutex
	emitter

	st      *state.State
	names   [2]string
	current Player
	scores  [2]int
	epoch   uint64
	pending clock.Timer
	result  *LocalResult

	progress Progression
	sched    clock.Scheduler
	rules    config.Rules
	rng      *rand.Rand
	logger   *log.Logger
}

// NewLocalGame creates a two-player game.
func NewLocalGame(progress Progression, sched clock.Scheduler, rules config.Rules, logger *log.Logger, rng *rand.Rand) *LocalGame {
	logger = logger.With("component", "local")
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LocalGame{
		st:       state.New(logger),
		progress: progress,
		sched:    sched,
		rules:    rules,
		rng:      rng,
		logger:   logger,
	}
}

// Start deals pairCount pairs. Player 1 moves first.
func (g *LocalGame) Start(ctx context.Context, pairCount int, p1, p2 string) error {
	lr := g.rules.Local
	if pairCount < lr.MinPairs || pairCount > lr.MaxPairs {
		return fmt.Errorf("%w: two-player boards need %d-%d pairs, got %d",
			ErrInvalidConfiguration, lr.MinPairs, lr.MaxPairs, pairCount)
	}
	theme := g.progress.Active(catalog.KindTheme)

	g.mu.Lock()
	cards, err := board.Generate(pairCount, theme.Symbols, g.rng)
	if err != nil {
		g.mu.Unlock()
		return fmt.Errorf("theme %q: %w", theme.Name, err)
	}

	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.epoch++
	g.names = [2]string{defaultName(p1, Player1), defaultName(p2, Player2)}
	g.current = Player1
	g.scores = [2]int{}
	g.result = nil

	columns := g.rules.Board.Columns
	cfg := state.Config{Rows: (len(cards) + columns - 1) / columns, Columns: columns}
	if err := g.st.Deal(ctx, cfg, cards); err != nil {
		g.mu.Unlock()
		return fmt.Errorf("deal: %w", err)
	}
	g.logger.Info("local game started", "pairs", pairCount, "p1", g.names[0], "p2", g.names[1])
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.emit(LocalChangedEvent{Snapshot: snap})
	return nil
}

// Flip turns card id face up for the current player. It reports false when
// the flip was ignored.
func (g *LocalGame) Flip(ctx context.Context, id int) bool {
	g.mu.Lock()
	pick := g.st.Pick(ctx, id)
	if pick == state.PickIgnored {
		g.mu.Unlock()
		return false
	}
	if pick == state.PickSecond {
		epoch := g.epoch
		g.pending = g.sched.After(g.rules.Timing.MatchDelay(), func() { g.evaluate(epoch) })
	}
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.emit(LocalChangedEvent{Snapshot: snap})
	return true
}

func (g *LocalGame) evaluate(epoch uint64) {
	ctx := context.Background()

	g.mu.Lock()
	if epoch != g.epoch {
		g.mu.Unlock()
		return
	}
	g.pending = nil
	res, ok := g.st.Resolve(ctx)
	if !ok {
		g.mu.Unlock()
		return
	}

	if res.Matched {
		g.scores[g.current-1]++
	} else {
		g.current = other(g.current)
	}

	events := []Event{LocalChangedEvent{Snapshot: g.snapshotLocked()}}
	if res.Completed {
		if fin := g.finishLocked(ctx); fin != nil {
			events = append(events, fin)
		}
	}
	g.mu.Unlock()

	g.emit(events...)
}

func (g *LocalGame) finishLocked(ctx context.Context) Event {
	if err := g.st.Finish(ctx); err != nil {
		return nil
	}

	outcome := scoring.Evaluate(scoring.Stats{TwoPlayer: true, Rows: g.st.Config.Rows, TotalCards: g.st.TotalCards()},
		g.progress.Achievements(), g.rules.Scoring)
	g.progress.Reward(outcome.Coins, outcome.NewlyUnlocked)

	result := LocalResult{
		Names:           g.names,
		Scores:          g.scores,
		Winner:          Winner(g.scores[0], g.scores[1]),
		CoinsEarned:     outcome.Coins,
		NewAchievements: outcome.NewlyUnlocked,
	}
	g.result = &result
	g.logger.Info("local game finished", "scores", g.scores, "winner", result.Winner, "coins", result.CoinsEarned)
	return LocalFinishedEvent{Result: result}
}

// Result returns the outcome once the board is cleared.
func (g *LocalGame) Result() (LocalResult, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return LocalResult{}, false
	}
	r := *g.result
	r.NewAchievements = append([]string(nil), g.result.NewAchievements...)
	return r, true
}

// Snapshot returns the current view.
func (g *LocalGame) Snapshot() LocalSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Close invalidates a pending evaluation and returns the board to idle.
func (g *LocalGame) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.epoch++
	g.st.Clear(context.Background())
}

func (g *LocalGame) snapshotLocked() LocalSnapshot {
	return LocalSnapshot{
		State:      g.st.FSM.Current(),
		Names:      g.names,
		Current:    g.current,
		Scores:     g.scores,
		Cards:      g.st.CardsCopy(),
		Columns:    g.st.Config.Columns,
		Evaluating: g.st.IsEvaluating(),
		InPlay:     g.st.InPlay(),
		Won:        g.st.Won,
		Log:        g.st.LogCopy(),
	}
}

func other(p Player) Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func defaultName(name string, p Player) string {
	if name == "" {
		return p.String()
	}
	return name
}
