package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"memorygame/internal/board"
)

const cellWidth = 4

var cellStyle = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)

// renderBoard draws cards in rows of columns. Face-down cards show back.
// The cursor is hidden when active is false.
func renderBoard(cards []board.Card, columns, cursor int, back string, active bool) string {
	if columns < 1 {
		columns = board.DefaultColumns
	}
	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		cells := make([]string, 0, columns)
		for i := start; i < end; i++ {
			c := cards[i]
			face := back
			style := cellStyle
			switch {
			case c.Matched:
				face = c.Content
				style = style.Inherit(matchedStyle)
			case c.FaceUp:
				face = c.Content
			}
			if active && i == cursor {
				style = style.Inherit(cursorStyle)
			}
			cells = append(cells, style.Render(face))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return boardStyle.Render(strings.Join(rows, "\n"))
}

// moveCursor moves by dr rows and dc columns, staying on the board.
func moveCursor(cursor, total, columns, dr, dc int) int {
	if total == 0 || columns < 1 {
		return 0
	}
	row, col := cursor/columns, cursor%columns
	row += dr
	col += dc
	lastRow := (total - 1) / columns
	row = min(max(row, 0), lastRow)
	col = min(max(col, 0), columns-1)
	return min(row*columns+col, total-1)
}

func formatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// logTail returns the last n lines of the event log.
func logTail(lines []string, n int) string {
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}
