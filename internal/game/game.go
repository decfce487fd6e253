// Package game runs memory-game sessions. Game is the single-player engine;
// LocalGame is the hot-seat two-player variant.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"memorygame/internal/board"
	"memorygame/internal/catalog"
	"memorygame/internal/clock"
	"memorygame/internal/config"
	"memorygame/internal/history"
	"memorygame/internal/persist"
	"memorygame/internal/scoring"
	"memorygame/internal/state"
)

// Game encapsulates the single-player engine, independent of the UI.
// All methods are safe for concurrent use; scheduled callbacks take the
// same lock as callers.
type Game struct {
	mu sync.Mutex
	emitter

	st        *state.State
	opts      Options
	started   bool
	epoch     uint64
	sessionID string
	ticker    clock.Timer
	pending   clock.Timer // match evaluation
	result    *Result

	progress Progression
	history  history.Store
	writer   persist.Writer
	sched    clock.Scheduler
	rules    config.Rules
	rng      *rand.Rand
	now      func() time.Time
	logger   *log.Logger
}

// Option customises a Game.
type Option func(*Game)

// WithRand sets the random source used for dealing.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithNow sets the wall clock used to stamp history records.
func WithNow(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// NewGame initializes a new game instance.
func NewGame(
	progress Progression,
	hist history.Store,
	writer persist.Writer,
	sched clock.Scheduler,
	rules config.Rules,
	logger *log.Logger,
	opts ...Option,
) *Game {
	logger = logger.With("component", "game")
	g := &Game{
		st:       state.New(logger),
		progress: progress,
		history:  hist,
		writer:   writer,
		sched:    sched,
		rules:    rules,
		now:      time.Now,
		logger:   logger,
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Start deals a new board and discards any running session, including a
// pending evaluation. The alias and modes become the configuration reused
// by Reset. Challenge mode always runs the clock.
func (g *Game) Start(ctx context.Context, opts Options) error {
	if opts.Modes.Challenge {
		opts.Modes.Timer = true
	}
	if opts.Rows < 1 {
		return fmt.Errorf("%w: rows must be at least 1, got %d", ErrInvalidConfiguration, opts.Rows)
	}
	p := g.rules.Presets
	if opts.Modes.Custom && (opts.Rows < p.CustomMinRows || opts.Rows > p.CustomMaxRows) {
		return fmt.Errorf("%w: custom boards need %d-%d rows, got %d",
			ErrInvalidConfiguration, p.CustomMinRows, p.CustomMaxRows, opts.Rows)
	}

	theme := g.progress.Active(catalog.KindTheme)

	g.mu.Lock()
	cards, err := board.Generate(board.PairCount(opts.Rows, g.rules.Board.Columns), theme.Symbols, g.rng)
	if err != nil {
		g.mu.Unlock()
		if errors.Is(err, board.ErrInvalidPairCount) {
			return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		return fmt.Errorf("theme %q: %w", theme.Name, err)
	}

	g.stopTimersLocked()
	g.epoch++
	g.sessionID = uuid.NewString()
	g.result = nil
	g.opts = opts
	g.started = true

	cfg := state.Config{Alias: opts.Alias, Rows: opts.Rows, Columns: g.rules.Board.Columns, Modes: opts.Modes}
	if err := g.st.Deal(ctx, cfg, cards); err != nil {
		g.mu.Unlock()
		return fmt.Errorf("deal: %w", err)
	}
	if opts.Modes.Timer {
		epoch := g.epoch
		g.ticker = g.sched.Every(g.rules.Timing.TickInterval(), func() { g.tick(epoch) })
	}
	g.logger.Info("game started",
		"session", g.sessionID, "alias", opts.Alias, "rows", opts.Rows,
		"cards", len(cards), "mode", scoring.ModeLabel(opts.Modes), "theme", theme.Name)
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.emit(StartedEvent{Snapshot: snap})
	return nil
}

// Reset deals a fresh board of rows with the configuration of the last Start.
// Coins and achievements are untouched.
func (g *Game) Reset(ctx context.Context, rows int) error {
	g.mu.Lock()
	if !g.started {
		g.mu.Unlock()
		return fmt.Errorf("%w: reset before any game was started", ErrInvalidConfiguration)
	}
	opts := g.opts
	g.mu.Unlock()

	opts.Rows = rows
	return g.Start(ctx, opts)
}

// Flip turns card id face up. It reports false when the flip was ignored:
// the card is face up or matched, a pair is being evaluated, time ran out
// or no game is in play.
func (g *Game) Flip(ctx context.Context, id int) bool {
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

	g.emit(ChangedEvent{Snapshot: snap})
	return true
}

func (g *Game) evaluate(epoch uint64) {
	ctx := context.Background()

	g.mu.Lock()
	if epoch != g.epoch {
		g.mu.Unlock()
		g.logger.Debug("stale evaluation discarded", "epoch", epoch)
		return
	}
	g.pending = nil
	res, ok := g.st.Resolve(ctx)
	if !ok {
		g.mu.Unlock()
		return
	}

	var events []Event
	if res.Completed || res.Expired {
		g.stopTimersLocked()
	}
	events = append(events, ChangedEvent{Snapshot: g.snapshotLocked()})
	if res.Completed || res.Expired {
		if fin := g.finishLocked(ctx); fin != nil {
			events = append(events, fin)
		}
	}
	g.mu.Unlock()

	g.emit(events...)
}

func (g *Game) tick(epoch uint64) {
	ctx := context.Background()

	g.mu.Lock()
	if epoch != g.epoch {
		g.mu.Unlock()
		return
	}
	ticked, deadline, expired := g.st.Tick(ctx, g.rules.Timing.ChallengeSeconds)
	if deadline && g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
	}
	if !ticked {
		g.mu.Unlock()
		return
	}

	events := []Event{ChangedEvent{Snapshot: g.snapshotLocked()}}
	if expired {
		g.logger.Info("time expired", "session", g.sessionID, "elapsed", g.st.Elapsed)
		if fin := g.finishLocked(ctx); fin != nil {
			events = append(events, fin)
		}
	}
	g.mu.Unlock()

	g.emit(events...)
}

// finishLocked runs the finishing step for a won or expired session. The
// state machine only allows it once per session.
func (g *Game) finishLocked(ctx context.Context) Event {
	if err := g.st.Finish(ctx); err != nil {
		g.logger.Debug("finish skipped", "err", err)
		return nil
	}
	g.stopTimersLocked()

	st := g.st
	modes := st.Config.Modes
	var outcome scoring.Outcome
	if st.Won {
		stats := scoring.Stats{Modes: modes, Rows: st.Config.Rows, TotalCards: st.TotalCards(), Attempts: st.Attempts}
		outcome = scoring.Evaluate(stats, g.progress.Achievements(), g.rules.Scoring)
		g.progress.Reward(outcome.Coins, outcome.NewlyUnlocked)
	}

	elapsed := -1
	if modes.Timer {
		elapsed = st.Elapsed
	}
	mode := scoring.ModeLabel(modes)
	result := Result{
		SessionID:       g.sessionID,
		Alias:           st.Config.Alias,
		ElapsedSeconds:  elapsed,
		GridSize:        st.Config.Rows,
		Attempts:        st.Attempts,
		Won:             st.Won,
		LostByTimeout:   st.LostByTimeout(g.rules.Timing.ChallengeSeconds),
		Mode:            mode,
		CoinsEarned:     outcome.Coins,
		NewAchievements: outcome.NewlyUnlocked,
	}
	g.result = &result

	record := history.Record{
		SessionID:      g.sessionID,
		Alias:          st.Config.Alias,
		GridSize:       st.Config.Rows,
		UsedTimer:      modes.Timer,
		ElapsedSeconds: elapsed,
		Attempts:       st.Attempts,
		Won:            st.Won,
		PlayedAt:       g.now(),
		Mode:           mode,
		Log:            history.JoinLog(st.Log),
	}
	if g.history != nil {
		err := g.writer.Submit("history:append", func(ctx context.Context) error {
			_, err := g.history.Append(ctx, record)
			return err
		})
		if err != nil {
			g.logger.Error("failed to submit history record", "session", g.sessionID, "err", err)
		}
	}

	g.logger.Info("game finished",
		"session", g.sessionID, "won", result.Won, "attempts", result.Attempts,
		"elapsed", result.ElapsedSeconds, "coins", result.CoinsEarned,
		"achievements", len(result.NewAchievements))
	return FinishedEvent{Result: result}
}

// Result returns the outcome of the last finished session.
func (g *Game) Result() (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return Result{}, false
	}
	r := *g.result
	r.NewAchievements = append([]string(nil), g.result.NewAchievements...)
	return r, true
}

// Snapshot returns the current session view.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Close stops the clock, invalidates pending callbacks and returns the
// session to idle. The last result stays readable.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimersLocked()
	g.epoch++
	g.st.Clear(context.Background())
}

func (g *Game) stopTimersLocked() {
	if g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
	}
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
}

func (g *Game) snapshotLocked() Snapshot {
	st := g.st
	return Snapshot{
		SessionID:   g.sessionID,
		State:       st.FSM.Current(),
		Alias:       st.Config.Alias,
		Rows:        st.Config.Rows,
		Columns:     st.Config.Columns,
		Modes:       st.Config.Modes,
		Cards:       st.CardsCopy(),
		Attempts:    st.Attempts,
		Elapsed:     st.Elapsed,
		Evaluating:  st.IsEvaluating(),
		InPlay:      st.InPlay(),
		Over:        st.IsOver(),
		Won:         st.Won,
		TimeExpired: st.TimeExpired,
		Matched:     st.MatchedPairs(),
		Pairs:       st.TotalCards() / 2,
		Log:         st.LogCopy(),
	}
}
