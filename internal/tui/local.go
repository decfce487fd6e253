package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"memorygame/internal/audio"
	"memorygame/internal/game"
)

// LocalModel is the Bubble Tea model of a two-player board.
type LocalModel struct {
	game   *game.LocalGame
	player audio.Player
	bridge *bridge
	keys   BoardKeyMap
	help   help.Model

	back   string
	snap   game.LocalSnapshot
	result *game.LocalResult
	cursor int
	err    error
}

// NewLocalModel wraps a started two-player game.
func NewLocalModel(g *game.LocalGame, player audio.Player, back string) *LocalModel {
	m := &LocalModel{
		game:   g,
		player: player,
		bridge: newBridge(g),
		keys:   DefaultBoardKeyMap(),
		help:   help.New(),
		back:   back,
	}
	m.refresh()
	return m
}

func (m *LocalModel) Init() tea.Cmd {
	return m.bridge.wait()
}

func (m *LocalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case eventMsg:
		prev := m.snap.Scores
		m.refresh()
		switch msg.event.(type) {
		case game.LocalFinishedEvent:
			m.player.PlayOneShot(audio.EffectWin)
		case game.LocalChangedEvent:
			if m.snap.Scores != prev {
				m.player.PlayOneShot(audio.EffectMatch)
			}
		}
		return m, m.bridge.wait()

	case tea.KeyMsg:
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
			m.err = m.game.Start(context.Background(), total/2, m.snap.Names[0], m.snap.Names[1])
			m.cursor = 0
			m.refresh()
		}
	}
	return m, nil
}

func (m *LocalModel) refresh() {
	m.snap = m.game.Snapshot()
	m.result = nil
	if r, ok := m.game.Result(); ok {
		m.result = &r
	}
}

func (m *LocalModel) View() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(boldStyle.Render("┃ MEMORY: Two Players") + "\n")
	active := s.InPlay
	b.WriteString(renderBoard(s.Cards, s.Columns, m.cursor, m.back, active) + "\n")

	var players []string
	for i, name := range s.Names {
		label := fmt.Sprintf("%s: %d", name, s.Scores[i])
		if active && game.Player(i+1) == s.Current {
			label = boldStyle.Render("▶ " + label)
		}
		players = append(players, label)
	}
	b.WriteString(scoreStyle.Render(strings.Join(players, " | ")) + "\n\n")
	b.WriteString(logTail(s.Log, 4) + "\n")

	if r := m.result; r != nil {
		b.WriteString("\n")
		if r.Winner == game.Tie {
			b.WriteString(greenStyle.Render("It's a tie!"))
		} else {
			b.WriteString(greenStyle.Render(r.Names[r.Winner-1] + " wins!"))
		}
		if r.CoinsEarned > 0 {
			b.WriteString("\n" + scoreStyle.Render(fmt.Sprintf("+%d coins", r.CoinsEarned)))
		}
		for _, a := range r.NewAchievements {
			b.WriteString("\nAchievement unlocked: " + boldStyle.Render(a))
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n" + redStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
