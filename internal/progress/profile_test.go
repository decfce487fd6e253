package progress

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorygame/internal/catalog"
	"memorygame/internal/config"
	"memorygame/internal/persist"
	"memorygame/internal/scoring"
)

// memStorage implements Storage for testing.
type memStorage struct {
	data    *AppData
	loadErr error
	saveErr error
	saves   int
}

func (m *memStorage) Load() (AppData, error) {
	if m.loadErr != nil {
		return AppData{}, m.loadErr
	}
	if m.data == nil {
		return AppData{}, ErrNoProfile
	}
	return m.data.clone(), nil
}

func (m *memStorage) Save(d AppData) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	c := d.clone()
	m.data = &c
	return nil
}

// countingWriter records submissions and runs them inline.
type countingWriter struct {
	names []string
}

func (w *countingWriter) Submit(name string, fn persist.WriteFunc) error {
	w.names = append(w.names, name)
	return fn(context.Background())
}

func discard() *log.Logger {
	return log.New(io.Discard)
}

func openProfile(t *testing.T, store *memStorage) (*Profile, *countingWriter) {
	t.Helper()
	w := &countingWriter{}
	p := Open(store, catalog.New(), w, config.Default().Profile, discard())
	return p, w
}

func TestOpen_DefaultsWhenNothingSaved(t *testing.T) {
	p, w := openProfile(t, &memStorage{})

	d := p.Snapshot()
	assert.Equal(t, "Player", d.Alias)
	assert.Equal(t, 1.0, d.Volume)
	assert.Equal(t, 0, d.Coins)
	assert.Equal(t, "Fruits & Veggies", d.Theme)
	assert.Equal(t, []string{"Classic"}, d.UnlockedCardStyles)
	assert.Empty(t, d.UnlockedAchievements)
	assert.Empty(t, w.names, "opening must not write")
}

func TestOpen_DefaultsOnLoadFailure(t *testing.T) {
	p, _ := openProfile(t, &memStorage{loadErr: errors.New("permission denied")})
	assert.Equal(t, Defaults(catalog.New(), config.Default().Profile), p.Snapshot())
}

func TestOpen_AppliesUnlocksToCatalog(t *testing.T) {
	saved := AppData{
		Alias:              "Bob",
		Volume:             0.3,
		Theme:              "Animals",
		Coins:              40,
		UnlockedThemes:     []string{"Animals", "Removed Theme"},
		UnlockedCardStyles: []string{"Fire"},
	}
	store := &memStorage{data: &saved}
	cat := catalog.New()
	p := Open(store, cat, &countingWriter{}, config.Default().Profile, discard())

	it, err := cat.Lookup(catalog.KindTheme, "Animals")
	require.NoError(t, err)
	assert.True(t, it.Unlocked)
	it, err = cat.Lookup(catalog.KindCardStyle, "Fire")
	require.NoError(t, err)
	assert.True(t, it.Unlocked)

	d := p.Snapshot()
	assert.Contains(t, d.UnlockedCardStyles, "Classic", "defaults are always unlocked")
	assert.Equal(t, "Classic", d.CardStyle, "missing selection falls back to default")
	assert.Equal(t, "Animals", p.Active(catalog.KindTheme).Name)
	assert.Equal(t, "Classic", p.Active(catalog.KindBackground).Name)
}

func TestPurchase(t *testing.T) {
	store := &memStorage{data: &AppData{Alias: "Ana", Volume: 1, Coins: 60}}
	p, w := openProfile(t, store)

	err := p.Purchase(catalog.KindTheme, "Emotions")
	assert.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Equal(t, 60, p.Coins())

	err = p.Purchase(catalog.KindTheme, "Nope")
	assert.ErrorIs(t, err, catalog.ErrUnknownItem)

	err = p.Purchase(catalog.KindTheme, "Fruits & Veggies")
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	assert.Empty(t, w.names, "rejected purchases must not write")

	require.NoError(t, p.Purchase(catalog.KindTheme, "Animals"))
	assert.Equal(t, 10, p.Coins())
	assert.Equal(t, []string{"progress:purchase"}, w.names)
	assert.Contains(t, store.data.UnlockedThemes, "Animals")
	assert.Equal(t, 10, store.data.Coins)

	err = p.Purchase(catalog.KindTheme, "Animals")
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	assert.Len(t, w.names, 1)
}

func TestSelect(t *testing.T) {
	p, w := openProfile(t, &memStorage{})

	err := p.Select(catalog.KindMusic, "Track 4")
	assert.ErrorIs(t, err, ErrLocked)
	assert.Empty(t, w.names)

	err = p.Select(catalog.KindMusic, "Track 9")
	assert.ErrorIs(t, err, catalog.ErrUnknownItem)

	require.NoError(t, p.Select(catalog.KindMusic, "Track 1"))
	assert.Equal(t, []string{"progress:select"}, w.names)
}

func TestSelect_AfterPurchase(t *testing.T) {
	store := &memStorage{data: &AppData{Coins: 200}}
	p, w := openProfile(t, store)

	require.NoError(t, p.Purchase(catalog.KindMusic, "Track 4"))
	require.NoError(t, p.Select(catalog.KindMusic, "Track 4"))
	assert.Equal(t, "blocks", p.Active(catalog.KindMusic).Audio)
	assert.Equal(t, []string{"progress:purchase", "progress:select"}, w.names)
	assert.Equal(t, "Track 4", store.data.Music)
}

func TestSetAliasAndVolume(t *testing.T) {
	p, w := openProfile(t, &memStorage{})

	assert.Equal(t, "Ana", p.SetAlias("  Ana  "))
	assert.Equal(t, "Maximilian", p.SetAlias("Maximiliano Rodriguez"))
	assert.Equal(t, "ÁéíóúÁéíóú", p.SetAlias("ÁéíóúÁéíóúXYZ"))
	assert.Equal(t, "Player", p.SetAlias("   "))

	assert.Equal(t, 0.0, p.SetVolume(-2))
	assert.Equal(t, 1.0, p.SetVolume(3))
	assert.Equal(t, 0.25, p.SetVolume(0.25))

	assert.Len(t, w.names, 7, "one write per preference change")
}

func TestReward(t *testing.T) {
	store := &memStorage{}
	p, w := openProfile(t, store)

	assert.True(t, p.Reward(10, []string{scoring.AchievementFirstGame, scoring.AchievementEasy}))
	assert.Equal(t, 10, p.Coins())
	assert.True(t, p.Achievements().Has(scoring.AchievementEasy))
	assert.Len(t, w.names, 1)

	assert.False(t, p.Reward(0, []string{scoring.AchievementEasy}), "nothing new")
	assert.False(t, p.Reward(-5, nil), "negative amounts are ignored")
	assert.Equal(t, 10, p.Coins())
	assert.Len(t, w.names, 1)

	assert.True(t, p.Reward(0, []string{scoring.AchievementHard}))
	assert.Len(t, w.names, 2)
	assert.ElementsMatch(t,
		[]string{scoring.AchievementFirstGame, scoring.AchievementEasy, scoring.AchievementHard},
		store.data.UnlockedAchievements)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	store := &memStorage{data: &AppData{Coins: 100}, saveErr: errors.New("disk full")}
	w := persist.NewInline(discard())
	p := Open(store, catalog.New(), w, config.Default().Profile, discard())

	require.NoError(t, p.Purchase(catalog.KindCardStyle, "Star"))
	assert.Equal(t, 50, p.Coins())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 100, store.data.Coins, "store never received the update")
}
