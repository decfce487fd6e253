package tui

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"memorygame/internal/audio"
	"memorygame/internal/board"
	"memorygame/internal/catalog"
	"memorygame/internal/clock"
	"memorygame/internal/config"
	"memorygame/internal/game"
	"memorygame/internal/history"
	"memorygame/internal/persist"
	"memorygame/internal/scoring"
)

type stubProgress struct{ theme catalog.Item }

func (s stubProgress) Active(catalog.Kind) catalog.Item        { return s.theme }
func (s stubProgress) Achievements() scoring.AchievementSet     { return scoring.AchievementSet{} }
func (s stubProgress) Reward(coins int, titles []string) bool { return coins > 0 || len(titles) > 0 }

type memHistory struct{ records []history.Record }

func (m *memHistory) Append(_ context.Context, r history.Record) (int64, error) {
	r.ID = int64(len(m.records) + 1)
	m.records = append([]history.Record{r}, m.records...)
	return r.ID, nil
}
func (m *memHistory) List(context.Context) ([]history.Record, error) { return m.records, nil }
func (m *memHistory) Get(_ context.Context, id int64) (history.Record, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return history.Record{}, history.ErrNotFound
}
func (m *memHistory) Clear(context.Context) error {
	m.records = nil
	return nil
}

func newTestGame(t *testing.T) (*game.Game, *clock.Fake, *memHistory) {
	t.Helper()
	logger := log.New(io.Discard)
	fake := clock.NewFake()
	hist := &memHistory{}
	progress := stubProgress{theme: catalog.New().Default(catalog.KindTheme)}
	g := game.NewGame(progress, hist, persist.NewInline(logger), fake, config.Default(), logger,
		game.WithRand(rand.New(rand.NewSource(1))))
	if err := g.Start(context.Background(), game.Options{Alias: "Ana", Rows: 1}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return g, fake, hist
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		cursor, total, cols, dr, dc, want int
	}{
		{0, 8, 4, 0, 1, 1},
		{3, 8, 4, 0, 1, 3},
		{1, 8, 4, 1, 0, 5},
		{5, 8, 4, 1, 0, 5},
		{0, 8, 4, -1, -1, 0},
		{4, 6, 4, 0, 1, 5},
		{1, 6, 4, 1, 0, 5},
		{0, 0, 4, 1, 0, 0},
	}
	for _, tt := range tests {
		got := moveCursor(tt.cursor, tt.total, tt.cols, tt.dr, tt.dc)
		if got != tt.want {
			t.Errorf("moveCursor(%d, %d, %d, %d, %d) = %d, want %d",
				tt.cursor, tt.total, tt.cols, tt.dr, tt.dc, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	for in, want := range map[int]string{0: "00:00", 59: "00:59", 75: "01:15", -4: "00:00"} {
		if got := formatClock(in); got != want {
			t.Errorf("formatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderBoard_HidesFaceDownCards(t *testing.T) {
	cards := []board.Card{
		{ID: 0, Content: "🍎", FaceUp: true},
		{ID: 1, Content: "🍌"},
	}
	out := renderBoard(cards, 4, 0, "?", true)
	if !strings.Contains(out, "🍎") {
		t.Error("Face-up card should be visible")
	}
	if strings.Contains(out, "🍌") {
		t.Error("Face-down card should be hidden")
	}
}

func TestGameModel_FlipAndWin(t *testing.T) {
	g, fake, hist := newTestGame(t)
	player := audio.NewSilent(nil, log.New(io.Discard))
	m := NewGameModel(g, player, "?", 60)

	press(m, "enter")
	if !g.Snapshot().Cards[0].FaceUp {
		t.Fatal("Enter should flip the card under the cursor")
	}

	// Find the partner of card 0 and walk the cursor to it.
	cards := g.Snapshot().Cards
	partner := -1
	for _, c := range cards[1:] {
		if c.Content == cards[0].Content {
			partner = c.ID
		}
	}
	for i := 0; i < partner; i++ {
		press(m, "right")
	}
	press(m, "enter")
	fake.Advance(time.Second)

	// Clear the remaining pair.
	var rest []int
	for _, c := range g.Snapshot().Cards {
		if !c.Matched {
			rest = append(rest, c.ID)
		}
	}
	for _, id := range rest {
		g.Flip(context.Background(), id)
	}
	fake.Advance(time.Second)

	m.Update(eventMsg{})
	if !strings.Contains(m.View(), "You won in 2 attempts!") {
		t.Errorf("Expected the win message, got:\n%s", m.View())
	}
	if len(hist.records) != 1 {
		t.Errorf("Expected one history record, got %d", len(hist.records))
	}
	if m.keys.Flip.Enabled() {
		t.Error("Flip should be disabled once the game is over")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("Quit should return a command")
	}
}

func TestGameModel_Restart(t *testing.T) {
	g, _, _ := newTestGame(t)
	m := NewGameModel(g, audio.NewSilent(nil, log.New(io.Discard)), "?", 60)
	before := g.Snapshot().SessionID

	press(m, "enter", "r")
	snap := g.Snapshot()
	if snap.SessionID == before {
		t.Error("r should deal a new board")
	}
	if snap.Cards[0].FaceUp {
		t.Error("New board should be face down")
	}
	if !m.keys.Flip.Enabled() {
		t.Error("Flip should be enabled on a fresh board")
	}
}

func TestHistoryModel(t *testing.T) {
	hist := &memHistory{}
	_, _ = hist.Append(context.Background(), history.Record{
		Alias: "Ana", Mode: "Easy", GridSize: 3, Attempts: 7, Won: true,
		PlayedAt: time.Now(), Log: history.JoinLog([]string{"Flip card 1: 🍎", "Flip card 2: 🍎"}),
	})

	m, err := NewHistoryModel(context.Background(), hist, 24)
	if err != nil {
		t.Fatalf("NewHistoryModel failed: %v", err)
	}
	if !strings.Contains(m.View(), "Ana") {
		t.Errorf("Expected the record in the table, got:\n%s", m.View())
	}

	press(m, "enter")
	if !strings.Contains(m.View(), "Flip card 2: 🍎") {
		t.Errorf("Expected the event log, got:\n%s", m.View())
	}
	press(m, "b")
	if m.detail != nil {
		t.Error("Back should return to the table")
	}
}

func TestHistoryModel_Empty(t *testing.T) {
	m, err := NewHistoryModel(context.Background(), &memHistory{}, 24)
	if err != nil {
		t.Fatalf("NewHistoryModel failed: %v", err)
	}
	if !strings.Contains(m.View(), "No games played yet.") {
		t.Errorf("Unexpected view:\n%s", m.View())
	}
}
