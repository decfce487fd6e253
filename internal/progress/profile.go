package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"memorygame/internal/catalog"
	"memorygame/internal/config"
	"memorygame/internal/persist"
	"memorygame/internal/scoring"
)

var (
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrAlreadyUnlocked   = errors.New("item already unlocked")
	ErrLocked            = errors.New("item is locked")
)

// Profile is the live progression of the local player. Every change submits
// exactly one snapshot write to the writer. Safe for concurrent use.
type Profile struct {
	mu      sync.Mutex
	data    AppData
	catalog *catalog.Catalog
	storage Storage
	writer  persist.Writer
	rules   config.ProfileRules
	logger  *log.Logger
}

// Open loads the saved profile. A failed or empty load falls back to
// Defaults; it never prevents play. Unlocked names are applied to cat.
func Open(storage Storage, cat *catalog.Catalog, writer persist.Writer, rules config.ProfileRules, logger *log.Logger) *Profile {
	logger = logger.With("component", "profile")

	data, err := storage.Load()
	switch {
	case errors.Is(err, ErrNoProfile):
		logger.Debug("no saved profile, using defaults")
		data = Defaults(cat, rules)
	case err != nil:
		logger.Warn("failed to load profile, using defaults", "err", err)
		data = Defaults(cat, rules)
	}

	p := &Profile{
		catalog: cat,
		storage: storage,
		writer:  writer,
		rules:   rules,
		logger:  logger,
	}
	p.data = p.normalize(data)
	return p
}

// normalize fills gaps left by older or hand-edited files.
func (p *Profile) normalize(d AppData) AppData {
	d = d.clone()
	d.Alias = p.cleanAlias(d.Alias)
	d.Volume = clampVolume(d.Volume)
	if d.Coins < 0 {
		d.Coins = 0
	}
	if d.UnlockedAchievements == nil {
		d.UnlockedAchievements = []string{}
	}

	for _, kind := range catalog.Kinds {
		list := d.unlockedList(kind)
		addName(list, p.catalog.Default(kind).Name)
		p.catalog.UnlockNames(kind, *list)
		if d.Selected(kind) == "" {
			d.setSelected(kind, p.catalog.Default(kind).Name)
		}
	}
	// Loaded theme files are free; record them so they survive a restart.
	for _, name := range p.catalog.UnlockedNames(catalog.KindTheme) {
		addName(&d.UnlockedThemes, name)
	}
	return d
}

// Snapshot returns a copy of the current progression.
func (p *Profile) Snapshot() AppData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.clone()
}

// Catalog returns the catalog the profile unlocks items in.
func (p *Profile) Catalog() *catalog.Catalog {
	return p.catalog
}

// Coins returns the coin balance.
func (p *Profile) Coins() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.Coins
}

// Alias returns the player alias.
func (p *Profile) Alias() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.Alias
}

// Achievements returns the unlocked achievement set.
func (p *Profile) Achievements() scoring.AchievementSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return scoring.NewAchievementSet(p.data.UnlockedAchievements...)
}

// Active returns the selected item of kind, falling back to the default.
func (p *Profile) Active(kind catalog.Kind) catalog.Item {
	p.mu.Lock()
	name := p.data.Selected(kind)
	p.mu.Unlock()
	return p.catalog.Active(kind, name)
}

// Purchase spends coins to unlock an item.
func (p *Profile) Purchase(kind catalog.Kind, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, err := p.catalog.Lookup(kind, name)
	if err != nil {
		return err
	}
	if item.Unlocked {
		return fmt.Errorf("%w: %s %q", ErrAlreadyUnlocked, kind, name)
	}
	if p.data.Coins < item.Price {
		return fmt.Errorf("%w: %q costs %d, balance %d", ErrInsufficientCoins, name, item.Price, p.data.Coins)
	}

	if err := p.catalog.Unlock(kind, name); err != nil {
		return err
	}
	p.data.Coins -= item.Price
	addName(p.data.unlockedList(kind), name)
	p.logger.Info("item purchased", "kind", kind, "name", name, "price", item.Price, "coins", p.data.Coins)
	p.saveLocked("purchase")
	return nil
}

// Select makes an unlocked item the active one of its kind.
func (p *Profile) Select(kind catalog.Kind, name string) error {
	item, err := p.catalog.Lookup(kind, name)
	if err != nil {
		return err
	}
	if !item.Unlocked {
		return fmt.Errorf("%w: %s %q", ErrLocked, kind, name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.setSelected(kind, name)
	p.saveLocked("select")
	return nil
}

// SetAlias stores a trimmed alias of at most AliasMaxLen runes. A blank
// alias restores the default. It returns the stored value.
func (p *Profile) SetAlias(alias string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.Alias = p.cleanAlias(alias)
	p.saveLocked("alias")
	return p.data.Alias
}

// SetVolume stores the volume clamped to [0, 1] and returns it.
func (p *Profile) SetVolume(v float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.Volume = clampVolume(v)
	p.saveLocked("volume")
	return p.data.Volume
}

// Reward credits coins and unlocks achievement titles in one write. Nothing
// is written when neither changes anything. Negative amounts are ignored.
func (p *Profile) Reward(coins int, titles []string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed := false
	if coins > 0 {
		p.data.Coins += coins
		changed = true
	}
	for _, t := range titles {
		if addName(&p.data.UnlockedAchievements, t) {
			changed = true
		}
	}
	if !changed {
		return false
	}
	p.logger.Info("reward credited", "coins", coins, "achievements", titles, "balance", p.data.Coins)
	p.saveLocked("reward")
	return true
}

func (p *Profile) saveLocked(reason string) {
	snap := p.data.clone()
	err := p.writer.Submit("progress:"+reason, func(context.Context) error {
		return p.storage.Save(snap)
	})
	if err != nil {
		p.logger.Error("failed to submit profile save", "reason", reason, "err", err)
	}
}

func (p *Profile) cleanAlias(alias string) string {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return p.rules.DefaultAlias
	}
	if utf8.RuneCountInString(alias) > p.rules.AliasMaxLen {
		alias = string([]rune(alias)[:p.rules.AliasMaxLen])
	}
	return alias
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
