package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"memorygame/internal/history"
)

// HistoryModel lists played games and shows the event log of one of them.
type HistoryModel struct {
	store   history.Store
	records []history.Record
	table   table.Model
	help    help.Model
	keys    HistoryKeyMap
	detail  *history.Record
	height  int
	err     error
}

// NewHistoryModel loads the records from store.
func NewHistoryModel(ctx context.Context, store history.Store, height int) (*HistoryModel, error) {
	records, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	m := &HistoryModel{
		store:   store,
		records: records,
		help:    help.New(),
		keys:    DefaultHistoryKeyMap(),
		height:  height,
	}
	m.table = m.createTable()
	return m, nil
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Date", Width: 16},
		{Title: "Player", Width: 10},
		{Title: "Mode", Width: 9},
		{Title: "Rows", Width: 4},
		{Title: "Tries", Width: 5},
		{Title: "Time", Width: 5},
		{Title: "Result", Width: 6},
	}

	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		elapsed := "-"
		if r.UsedTimer && r.ElapsedSeconds >= 0 {
			elapsed = formatClock(r.ElapsedSeconds)
		}
		result := "Lost"
		if r.Won {
			result = "Won"
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.PlayedAt.Local().Format("Jan 02 15:04"),
			r.Alias,
			r.Mode,
			strconv.Itoa(r.GridSize),
			strconv.Itoa(r.Attempts),
			elapsed,
			result,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			if m.detail == nil {
				return m, tea.Quit
			}
			m.detail = nil
			return m, nil
		case key.Matches(msg, m.keys.Select):
			m.openSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *HistoryModel) openSelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return
	}
	r, err := m.store.Get(context.Background(), m.records[i].ID)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.detail = &r
}

func (m *HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("PLAY HISTORY") + "\n\n")

	switch {
	case m.detail != nil:
		r := m.detail
		b.WriteString(fmt.Sprintf("Game #%d | %s | %s | %d rows | %d attempts\n\n",
			r.ID, r.Alias, r.Mode, r.GridSize, r.Attempts))
		for _, line := range r.Lines() {
			b.WriteString("  " + line + "\n")
		}
	case len(m.records) == 0:
		b.WriteString("No games played yet.\n")
	default:
		b.WriteString(m.table.View() + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + redStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}
