package game

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"memorygame/internal/board"
	"memorygame/internal/catalog"
	"memorygame/internal/clock"
	"memorygame/internal/config"
	"memorygame/internal/history"
	"memorygame/internal/persist"
	"memorygame/internal/scoring"
)

// MockProgress implements Progression for testing.
type MockProgress struct {
	mu       sync.Mutex
	Theme    catalog.Item
	Unlocked scoring.AchievementSet
	Coins    int
	Writes   int
}

func newMockProgress() *MockProgress {
	return &MockProgress{Theme: catalog.New().Default(catalog.KindTheme)}
}

func (m *MockProgress) Active(kind catalog.Kind) catalog.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	if kind == catalog.KindTheme {
		return m.Theme
	}
	return catalog.Item{Kind: kind}
}

func (m *MockProgress) Achievements() scoring.AchievementSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Unlocked
}

func (m *MockProgress) Reward(coins int, titles []string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if coins <= 0 && len(titles) == 0 {
		return false
	}
	m.Coins += max(coins, 0)
	m.Unlocked = m.Unlocked.With(titles...)
	m.Writes++
	return true
}

// MockHistory implements history.Store for testing.
type MockHistory struct {
	mu      sync.Mutex
	Records []history.Record
}

func (m *MockHistory) Append(_ context.Context, r history.Record) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = int64(len(m.Records) + 1)
	m.Records = append(m.Records, r)
	return r.ID, nil
}

func (m *MockHistory) List(context.Context) ([]history.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]history.Record, len(m.Records))
	for i := range m.Records {
		out[len(out)-1-i] = m.Records[i]
	}
	return out, nil
}

func (m *MockHistory) Get(_ context.Context, id int64) (history.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Records {
		if r.ID == id {
			return r, nil
		}
	}
	return history.Record{}, history.ErrNotFound
}

func (m *MockHistory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = nil
	return nil
}

// MockWriter runs writes inline and records their names.
type MockWriter struct {
	mu    sync.Mutex
	Names []string
}

func (w *MockWriter) Submit(name string, fn persist.WriteFunc) error {
	w.mu.Lock()
	w.Names = append(w.Names, name)
	w.mu.Unlock()
	return fn(context.Background())
}

type fixture struct {
	game     *Game
	clock    *clock.Fake
	progress *MockProgress
	history  *MockHistory
	writer   *MockWriter
	events   []Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureRules(t, config.Default())
}

func newFixtureRules(t *testing.T, rules config.Rules) *fixture {
	t.Helper()
	f := &fixture{
		clock:    clock.NewFake(),
		progress: newMockProgress(),
		history:  &MockHistory{},
		writer:   &MockWriter{},
	}
	f.game = NewGame(f.progress, f.history, f.writer, f.clock, rules, log.New(io.Discard),
		WithRand(rand.New(rand.NewSource(1))))
	f.game.Subscribe(func(e Event) { f.events = append(f.events, e) })
	return f
}

func (f *fixture) start(t *testing.T, opts Options) {
	t.Helper()
	if err := f.game.Start(context.Background(), opts); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
}

func (f *fixture) flip(ids ...int) {
	for _, id := range ids {
		f.game.Flip(context.Background(), id)
	}
}

func (f *fixture) finished() []FinishedEvent {
	var out []FinishedEvent
	for _, e := range f.events {
		if fe, ok := e.(FinishedEvent); ok {
			out = append(out, fe)
		}
	}
	return out
}

// pairsOf returns the card ids of every pair on the board.
func pairsOf(cards []board.Card) [][2]int {
	first := map[string]int{}
	var pairs [][2]int
	for _, c := range cards {
		if id, ok := first[c.Content]; ok {
			pairs = append(pairs, [2]int{id, c.ID})
			continue
		}
		first[c.Content] = c.ID
	}
	return pairs
}

// mismatchOf returns two face-down unmatched cards with different content.
func mismatchOf(cards []board.Card) (int, int) {
	for _, a := range cards {
		for _, b := range cards {
			if !a.Matched && !b.Matched && a.Content != b.Content {
				return a.ID, b.ID
			}
		}
	}
	return -1, -1
}
