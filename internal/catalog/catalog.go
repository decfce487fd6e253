// Package catalog defines the purchasable cosmetics: emoji themes, card-back
// styles, backgrounds and music tracks.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Kind is a catalog category.
type Kind string

const (
	KindTheme      Kind = "theme"
	KindCardStyle  Kind = "style"
	KindBackground Kind = "background"
	KindMusic      Kind = "music"
)

// Kinds lists the categories in shop order.
var Kinds = []Kind{KindTheme, KindCardStyle, KindBackground, KindMusic}

var (
	ErrUnknownItem = errors.New("unknown catalog item")
	ErrUnknownKind = errors.New("unknown catalog kind")
	ErrDuplicate   = errors.New("catalog item already exists")
)

// ParseKind maps a user-supplied category name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "theme", "themes":
		return KindTheme, nil
	case "style", "styles", "card-style", "cardstyle":
		return KindCardStyle, nil
	case "background", "backgrounds", "bg":
		return KindBackground, nil
	case "music", "track", "tracks":
		return KindMusic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Item is one catalog entry. Only the payload field matching Kind is set.
type Item struct {
	Kind     Kind
	Name     string
	Price    int
	Unlocked bool

	Symbols []string // theme
	Glyph   string   // card style
	Image   string   // background
	Audio   string   // music track
}

// Catalog is the set of items known to the game. The first item of each kind
// is its default: free and always unlocked. Safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	items map[Kind][]*Item
}

// New returns a catalog holding the built-in items.
func New() *Catalog {
	c := &Catalog{items: make(map[Kind][]*Item)}
	for _, it := range builtin() {
		c.items[it.Kind] = append(c.items[it.Kind], &it)
	}
	return c
}

// Items returns a copy of every item of kind, in shop order.
func (c *Catalog) Items(kind Kind) []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, 0, len(c.items[kind]))
	for _, it := range c.items[kind] {
		out = append(out, cloneItem(it))
	}
	return out
}

// Lookup returns the item of kind named name.
func (c *Catalog) Lookup(kind Kind, name string) (Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it := c.find(kind, name)
	if it == nil {
		return Item{}, fmt.Errorf("%w: %s %q", ErrUnknownItem, kind, name)
	}
	return cloneItem(it), nil
}

// Default returns the default item of kind.
func (c *Catalog) Default(kind Kind) Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.items[kind]) == 0 {
		return Item{Kind: kind}
	}
	return cloneItem(c.items[kind][0])
}

// Active returns the item named name, or the default of kind when the name
// is unknown.
func (c *Catalog) Active(kind Kind, name string) Item {
	if it, err := c.Lookup(kind, name); err == nil {
		return it
	}
	return c.Default(kind)
}

// Unlock marks an item as unlocked. Unlocking is permanent.
func (c *Catalog) Unlock(kind Kind, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	it := c.find(kind, name)
	if it == nil {
		return fmt.Errorf("%w: %s %q", ErrUnknownItem, kind, name)
	}
	it.Unlocked = true
	return nil
}

// UnlockNames unlocks every known name of kind and ignores the rest, which
// lets stale persisted names survive catalog changes.
func (c *Catalog) UnlockNames(kind Kind, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range names {
		if it := c.find(kind, n); it != nil {
			it.Unlocked = true
		}
	}
}

// UnlockedNames returns the names of unlocked items of kind.
func (c *Catalog) UnlockedNames(kind Kind) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for _, it := range c.items[kind] {
		if it.Unlocked {
			out = append(out, it.Name)
		}
	}
	return out
}

// AddTheme registers an extra theme. Added themes are free and unlocked.
func (c *Catalog) AddTheme(name string, symbols []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.find(KindTheme, name) != nil {
		return fmt.Errorf("%w: theme %q", ErrDuplicate, name)
	}
	c.items[KindTheme] = append(c.items[KindTheme], &Item{
		Kind:     KindTheme,
		Name:     name,
		Unlocked: true,
		Symbols:  slices.Clone(symbols),
	})
	return nil
}

func (c *Catalog) find(kind Kind, name string) *Item {
	for _, it := range c.items[kind] {
		if it.Name == name {
			return it
		}
	}
	return nil
}

func cloneItem(it *Item) Item {
	out := *it
	out.Symbols = slices.Clone(it.Symbols)
	return out
}
