// Package progress keeps the player's persistent progression: coins,
// purchases, selections, preferences and unlocked achievements.
package progress

import (
	"slices"

	"memorygame/internal/catalog"
	"memorygame/internal/config"
)

// AppData is the persisted progression snapshot.
type AppData struct {
	Alias      string  `json:"alias"`
	Volume     float64 `json:"volume"`
	Theme      string  `json:"theme"`
	CardStyle  string  `json:"card_style"`
	Background string  `json:"background"`
	Music      string  `json:"music"`
	Coins      int     `json:"coins"`

	UnlockedBackgrounds  []string `json:"unlocked_backgrounds"`
	UnlockedMusic        []string `json:"unlocked_music"`
	UnlockedThemes       []string `json:"unlocked_themes"`
	UnlockedCardStyles   []string `json:"unlocked_card_styles"`
	UnlockedAchievements []string `json:"unlocked_achievements"`
}

// Defaults returns the first-run snapshot: default alias, full volume, the
// default item of every kind selected and unlocked, no coins and no
// achievements.
func Defaults(cat *catalog.Catalog, rules config.ProfileRules) AppData {
	theme := cat.Default(catalog.KindTheme).Name
	style := cat.Default(catalog.KindCardStyle).Name
	bg := cat.Default(catalog.KindBackground).Name
	music := cat.Default(catalog.KindMusic).Name

	return AppData{
		Alias:                rules.DefaultAlias,
		Volume:               1.0,
		Theme:                theme,
		CardStyle:            style,
		Background:           bg,
		Music:                music,
		UnlockedThemes:       []string{theme},
		UnlockedCardStyles:   []string{style},
		UnlockedBackgrounds:  []string{bg},
		UnlockedMusic:        []string{music},
		UnlockedAchievements: []string{},
	}
}

// Selected returns the selected item name for kind.
func (d AppData) Selected(kind catalog.Kind) string {
	switch kind {
	case catalog.KindTheme:
		return d.Theme
	case catalog.KindCardStyle:
		return d.CardStyle
	case catalog.KindBackground:
		return d.Background
	case catalog.KindMusic:
		return d.Music
	}
	return ""
}

func (d *AppData) setSelected(kind catalog.Kind, name string) {
	switch kind {
	case catalog.KindTheme:
		d.Theme = name
	case catalog.KindCardStyle:
		d.CardStyle = name
	case catalog.KindBackground:
		d.Background = name
	case catalog.KindMusic:
		d.Music = name
	}
}

func (d *AppData) unlockedList(kind catalog.Kind) *[]string {
	switch kind {
	case catalog.KindTheme:
		return &d.UnlockedThemes
	case catalog.KindCardStyle:
		return &d.UnlockedCardStyles
	case catalog.KindBackground:
		return &d.UnlockedBackgrounds
	case catalog.KindMusic:
		return &d.UnlockedMusic
	}
	return nil
}

func (d AppData) clone() AppData {
	out := d
	out.UnlockedBackgrounds = slices.Clone(d.UnlockedBackgrounds)
	out.UnlockedMusic = slices.Clone(d.UnlockedMusic)
	out.UnlockedThemes = slices.Clone(d.UnlockedThemes)
	out.UnlockedCardStyles = slices.Clone(d.UnlockedCardStyles)
	out.UnlockedAchievements = slices.Clone(d.UnlockedAchievements)
	return out
}

func addName(list *[]string, name string) bool {
	if slices.Contains(*list, name) {
		return false
	}
	*list = append(*list, name)
	return true
}
