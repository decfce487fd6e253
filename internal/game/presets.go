package game

import (
	"fmt"
	"math/rand"

	"memorygame/internal/config"
	"memorygame/internal/scoring"
)

// Mode names a menu entry.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeEasy      Mode = "easy"
	ModeMedium    Mode = "medium"
	ModeHard      Mode = "hard"
	ModeChallenge Mode = "challenge"
	ModeDesafio   Mode = "desafio"
	ModeCustom    Mode = "custom"
)

// Modes lists the menu entries in display order.
var Modes = []Mode{ModeEasy, ModeMedium, ModeHard, ModeChallenge, ModeDesafio, ModeCustom, ModeNormal}

// Preset builds the options of a menu entry. rows is only read by the
// custom and normal entries and timer only by custom and normal; the other
// entries fix both.
func Preset(mode Mode, rows int, timer bool, rules config.PresetRules, rng *rand.Rand) (Options, error) {
	switch mode {
	case ModeEasy:
		return Options{Rows: rules.EasyRows, Modes: scoring.Modes{Easy: true}}, nil
	case ModeMedium:
		return Options{Rows: rules.MediumRows, Modes: scoring.Modes{Medium: true}}, nil
	case ModeHard:
		return Options{Rows: rules.HardRows, Modes: scoring.Modes{Hard: true}}, nil
	case ModeChallenge:
		return Options{Rows: rules.ChallengeRows, Modes: scoring.Modes{Timer: true, Challenge: true}}, nil
	case ModeDesafio:
		if rng == nil {
			rng = rand.New(rand.NewSource(rand.Int63()))
		}
		span := rules.DesafioMaxRows - rules.DesafioMinRows + 1
		return Options{
			Rows:  rules.DesafioMinRows + rng.Intn(span),
			Modes: scoring.Modes{Timer: true, Desafio: true},
		}, nil
	case ModeCustom:
		if rows < rules.CustomMinRows || rows > rules.CustomMaxRows {
			return Options{}, fmt.Errorf("%w: custom boards need %d-%d rows, got %d",
				ErrInvalidConfiguration, rules.CustomMinRows, rules.CustomMaxRows, rows)
		}
		return Options{Rows: rows, Modes: scoring.Modes{Custom: true, Timer: timer}}, nil
	case ModeNormal, "":
		if rows < 1 {
			return Options{}, fmt.Errorf("%w: rows must be at least 1, got %d", ErrInvalidConfiguration, rows)
		}
		return Options{Rows: rows, Modes: scoring.Modes{Timer: timer}}, nil
	}
	return Options{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, mode)
}
