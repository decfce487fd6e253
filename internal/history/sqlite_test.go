package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_CreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "history.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestAppendAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	played := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	rec := Record{
		SessionID:      "abc",
		Alias:          "Ana",
		GridSize:       3,
		UsedTimer:      true,
		ElapsedSeconds: 42,
		Attempts:       9,
		Won:            true,
		PlayedAt:       played,
		Mode:           "Easy",
		Log:            JoinLog([]string{"Flip card 1: 🍎", "Flip card 2: 🍎", "Turn 1: 🍎 + 🍎 => Match"}),
	}

	id, err := store.Append(ctx, rec)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ana", got.Alias)
	assert.True(t, got.UsedTimer)
	assert.True(t, got.Won)
	assert.Equal(t, 42, got.ElapsedSeconds)
	assert.True(t, played.Equal(got.PlayedAt))
	assert.Equal(t, []string{"Flip card 1: 🍎", "Flip card 2: 🍎", "Turn 1: 🍎 + 🍎 => Match"}, got.Lines())

	_, err = store.Get(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, alias := range []string{"first", "third", "second"} {
		offset := map[string]time.Duration{"first": 0, "second": time.Hour, "third": 2 * time.Hour}[alias]
		_, err := store.Append(ctx, Record{SessionID: "s", Alias: alias, GridSize: i + 1, PlayedAt: base.Add(offset), Mode: "Normal"})
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Alias)
	assert.Equal(t, "second", records[1].Alias)
	assert.Equal(t, "first", records[2].Alias)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, Record{SessionID: "s", Alias: "x", Mode: "Normal"})
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppend_DefaultsPlayedAt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	id, err := store.Append(ctx, Record{SessionID: "s", Alias: "x", Mode: "Normal"})
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.PlayedAt.After(before))
}

func TestRecordLines_Empty(t *testing.T) {
	assert.Nil(t, Record{}.Lines())
}
