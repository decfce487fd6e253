// Package config holds the tunable game rules.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"memorygame/internal/scoring"
)

// Rules is the full rules configuration.
type Rules struct {
	Board   BoardRules    `yaml:"board"`
	Timing  TimingRules   `yaml:"timing"`
	Presets PresetRules   `yaml:"presets"`
	Local   LocalRules    `yaml:"local"`
	Profile ProfileRules  `yaml:"profile"`
	Scoring scoring.Rules `yaml:"scoring"`
}

// BoardRules configures board geometry.
type BoardRules struct {
	Columns int `yaml:"columns" validate:"gte=1,lte=8"`
}

// TimingRules configures the match delay and the game clock.
type TimingRules struct {
	MatchDelayMs     int `yaml:"match_delay_ms" validate:"gte=0"`
	TickIntervalMs   int `yaml:"tick_interval_ms" validate:"gt=0"`
	ChallengeSeconds int `yaml:"challenge_seconds" validate:"gt=0"`
}

// MatchDelay is the pause before a flipped pair is compared.
func (t TimingRules) MatchDelay() time.Duration {
	return time.Duration(t.MatchDelayMs) * time.Millisecond
}

// TickInterval is the period of one elapsed-time second.
func (t TimingRules) TickInterval() time.Duration {
	return time.Duration(t.TickIntervalMs) * time.Millisecond
}

// PresetRules sets the board sizes of the menu presets.
type PresetRules struct {
	EasyRows       int `yaml:"easy_rows" validate:"gte=1"`
	MediumRows     int `yaml:"medium_rows" validate:"gte=1"`
	HardRows       int `yaml:"hard_rows" validate:"gte=1"`
	ChallengeRows  int `yaml:"challenge_rows" validate:"gte=1"`
	DesafioMinRows int `yaml:"desafio_min_rows" validate:"gte=1"`
	DesafioMaxRows int `yaml:"desafio_max_rows" validate:"gtefield=DesafioMinRows"`
	CustomMinRows  int `yaml:"custom_min_rows" validate:"gte=1"`
	CustomMaxRows  int `yaml:"custom_max_rows" validate:"gtefield=CustomMinRows"`
}

// LocalRules bounds the two-player board.
type LocalRules struct {
	MinPairs int `yaml:"min_pairs" validate:"gte=1"`
	MaxPairs int `yaml:"max_pairs" validate:"gtefield=MinPairs"`
}

// ProfileRules configures player preferences.
type ProfileRules struct {
	DefaultAlias string `yaml:"default_alias" validate:"required"`
	AliasMaxLen  int    `yaml:"alias_max_len" validate:"gte=1"`
}

// Default returns the built-in rules.
func Default() Rules {
	return Rules{
		Board: BoardRules{Columns: 4},
		Timing: TimingRules{
			MatchDelayMs:     1000,
			TickIntervalMs:   1000,
			ChallengeSeconds: 60,
		},
		Presets: PresetRules{
			EasyRows:       3,
			MediumRows:     4,
			HardRows:       5,
			ChallengeRows:  4,
			DesafioMinRows: 4,
			DesafioMaxRows: 6,
			CustomMinRows:  2,
			CustomMaxRows:  10,
		},
		Local:   LocalRules{MinPairs: 10, MaxPairs: 20},
		Profile: ProfileRules{DefaultAlias: "Player", AliasMaxLen: 10},
		Scoring: scoring.DefaultRules(),
	}
}

var validate = validator.New()

// Validate checks every rule against its bounds.
func (r Rules) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}
