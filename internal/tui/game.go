package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"memorygame/internal/audio"
	"memorygame/internal/game"
	"memorygame/internal/scoring"
)

// GameModel is the Bubble Tea model of a single-player board.
type GameModel struct {
	game   *game.Game
	player audio.Player
	bridge *bridge
	keys   BoardKeyMap
	help   help.Model

	back   string // Card back glyph
	limit  int    // Challenge countdown, seconds
	snap   game.Snapshot
	result *game.Result
	cursor int
	width  int
	err    error
}

// NewGameModel wraps a started game.
func NewGameModel(g *game.Game, player audio.Player, back string, limitSeconds int) *GameModel {
	m := &GameModel{
		game:   g,
		player: player,
		bridge: newBridge(g),
		keys:   DefaultBoardKeyMap(),
		help:   help.New(),
		back:   back,
		limit:  limitSeconds,
	}
	m.refresh()
	return m
}

func (m *GameModel) Init() tea.Cmd {
	return m.bridge.wait()
}

func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case eventMsg:
		prevMatched := m.snap.Matched
		m.refresh()
		switch e := msg.event.(type) {
		case game.FinishedEvent:
			if e.Result.Won {
				m.player.PlayOneShot(audio.EffectWin)
			} else {
				m.player.PlayOneShot(audio.EffectLose)
			}
		case game.ChangedEvent:
			if e.Snapshot.Matched > prevMatched {
				m.player.PlayOneShot(audio.EffectMatch)
			}
		}
		return m, m.bridge.wait()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total, cols := len(m.snap.Cards), m.snap.Columns
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.bridge.close()
		m.game.Close()
		m.player.StopMusic()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, total, cols, -1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, total, cols, 1, 0)
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, total, cols, 0, -1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, total, cols, 0, 1)
	case key.Matches(msg, m.keys.Flip):
		if m.game.Flip(context.Background(), m.cursor) {
			m.player.PlayOneShot(audio.EffectFlip)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Restart):
		m.err = m.game.Reset(context.Background(), m.snap.Rows)
		m.cursor = 0
		m.refresh()
	}
	return m, nil
}

func (m *GameModel) refresh() {
	m.snap = m.game.Snapshot()
	m.keys.Flip.SetEnabled(!m.snap.Over)
	m.result = nil
	if r, ok := m.game.Result(); ok {
		m.result = &r
	}
}

func (m *GameModel) View() string {
	s := m.snap
	var b strings.Builder

	title := fmt.Sprintf("┃ MEMORY: %s | PLAYER: %s", scoring.ModeLabel(s.Modes), s.Alias)
	b.WriteString(boldStyle.Render(title) + "\n")

	active := s.InPlay
	b.WriteString(renderBoard(s.Cards, s.Columns, m.cursor, m.back, active) + "\n")

	status := fmt.Sprintf("ATTEMPTS: %d | PAIRS: %d/%d", s.Attempts, s.Matched, s.Pairs)
	if s.Modes.Timer {
		status += " | TIME: " + m.clock(s)
	}
	b.WriteString(scoreStyle.Render(status) + "\n\n")
	b.WriteString(logTail(s.Log, 4) + "\n")

	if r := m.result; r != nil {
		b.WriteString("\n" + resultView(r) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + redStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

// clock shows the countdown in challenge mode and the elapsed time otherwise.
func (m *GameModel) clock(s game.Snapshot) string {
	if !s.Modes.Challenge {
		return formatClock(s.Elapsed)
	}
	remaining := m.limit - s.Elapsed
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	if remaining*3 <= m.limit {
		style = redStyle
	}
	return style.Render(formatClock(remaining))
}

func resultView(r *game.Result) string {
	var b strings.Builder
	switch {
	case r.Won:
		b.WriteString(greenStyle.Render(fmt.Sprintf("You won in %d attempts!", r.Attempts)))
		if r.ElapsedSeconds >= 0 {
			b.WriteString(greenStyle.Render(" Time: " + formatClock(r.ElapsedSeconds)))
		}
		if r.CoinsEarned > 0 {
			b.WriteString("\n" + scoreStyle.Render(fmt.Sprintf("+%d coins", r.CoinsEarned)))
		}
		for _, a := range r.NewAchievements {
			b.WriteString("\nAchievement unlocked: " + boldStyle.Render(a))
		}
	case r.LostByTimeout:
		b.WriteString(redStyle.Render(fmt.Sprintf("Time's up! %d attempts.", r.Attempts)))
	default:
		b.WriteString(redStyle.Render("Game over!"))
	}
	b.WriteString("\n" + dimStyle.Render("r: new board  q: quit"))
	return b.String()
}
