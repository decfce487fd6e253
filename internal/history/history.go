// Package history records every finished single-player game.
package history

import (
	"context"
	"errors"
	"strings"
	"time"
)

// LogSeparator joins event log lines in a stored record.
const LogSeparator = "~"

// ErrNotFound is returned by Get for an unknown record id.
var ErrNotFound = errors.New("history record not found")

// Record is one finished game. Records are immutable once appended.
type Record struct {
	ID             int64
	SessionID      string
	Alias          string
	GridSize       int // Rows
	UsedTimer      bool
	ElapsedSeconds int
	Attempts       int
	Won            bool
	PlayedAt       time.Time
	Mode           string
	Log            string // Event log lines joined with LogSeparator
}

// Lines splits the stored event log back into lines.
func (r Record) Lines() []string {
	if r.Log == "" {
		return nil
	}
	return strings.Split(r.Log, LogSeparator)
}

// JoinLog builds the stored form of an event log.
func JoinLog(lines []string) string {
	return strings.Join(lines, LogSeparator)
}

// Store is an append-only log of finished games.
type Store interface {
	Append(ctx context.Context, r Record) (int64, error)
	// List returns every record, most recent first.
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	Clear(ctx context.Context) error
}
