// Package scoring decides coin rewards and achievement unlocks for finished
// games.
package scoring

// Modes are the flags a session was started with. More than one may be set;
// reward and label lookups resolve them in a fixed priority order.
type Modes struct {
	Timer     bool `json:"timer"`
	Challenge bool `json:"challenge"` // 60 second countdown
	Desafio   bool `json:"desafio"`   // randomized board size
	Easy      bool `json:"easy"`
	Medium    bool `json:"medium"`
	Hard      bool `json:"hard"`
	Custom    bool `json:"custom"`
}

// Rewards holds the coin amount granted per mode.
type Rewards struct {
	Challenge  int `yaml:"challenge" validate:"gte=0"`
	Easy       int `yaml:"easy" validate:"gte=0"`
	Medium     int `yaml:"medium" validate:"gte=0"`
	Hard       int `yaml:"hard" validate:"gte=0"`
	Desafio    int `yaml:"desafio" validate:"gte=0"`
	CustomStep int `yaml:"custom_step" validate:"gte=0"` // coins per row beyond the first
	TwoPlayer  int `yaml:"two_player" validate:"gte=0"`
}

// Rules are the tunable scoring constants.
type Rules struct {
	// A win with attempts <= totalCards + PerfectMargin unlocks the perfect
	// achievement.
	PerfectMargin int `yaml:"perfect_margin" validate:"gte=0"`
	// Rows a custom game must have to unlock the custom achievement.
	CustomAchievementRows int     `yaml:"custom_achievement_rows" validate:"gt=0"`
	Rewards               Rewards `yaml:"rewards"`
}

// DefaultRules returns the stock scoring constants.
func DefaultRules() Rules {
	return Rules{
		PerfectMargin:         10,
		CustomAchievementRows: 10,
		Rewards: Rewards{
			Challenge:  20,
			Easy:       10,
			Medium:     15,
			Hard:       20,
			Desafio:    5,
			CustomStep: 5,
			TwoPlayer:  5,
		},
	}
}

// Stats are the figures of a won game that scoring looks at.
type Stats struct {
	Modes      Modes
	Rows       int // Grid rows; custom rewards and the custom achievement scale with them
	TotalCards int
	Attempts   int
	TwoPlayer  bool
}

// Outcome is the result of evaluating a win.
type Outcome struct {
	Coins         int
	NewlyUnlocked []string       // Titles unlocked by this win, in display order
	Unlocked      AchievementSet // Previously unlocked titles plus NewlyUnlocked
}

// Evaluate computes the reward and the achievements unlocked by a win.
// Titles already present in unlocked stay unlocked.
func Evaluate(stats Stats, unlocked AchievementSet, rules Rules) Outcome {
	var earned []string
	for _, a := range achievements {
		if unlocked.Has(a.Title) {
			continue
		}
		if qualifies(a.Title, stats, rules) {
			earned = append(earned, a.Title)
		}
	}

	return Outcome{
		Coins:         Reward(stats, rules),
		NewlyUnlocked: earned,
		Unlocked:      unlocked.With(earned...),
	}
}

func qualifies(title string, stats Stats, rules Rules) bool {
	if stats.TwoPlayer {
		return title == AchievementTwoPlayer
	}

	m := stats.Modes
	switch title {
	case AchievementFirstGame:
		return true
	case AchievementChallenge:
		return m.Challenge
	case AchievementDesafio:
		return m.Desafio
	case AchievementPerfect:
		return stats.Attempts <= stats.TotalCards+rules.PerfectMargin
	case AchievementEasy:
		return m.Easy
	case AchievementMedium:
		return m.Medium
	case AchievementHard:
		return m.Hard
	case AchievementCustom:
		return m.Custom && stats.Rows == rules.CustomAchievementRows
	}
	return false
}

// Reward returns the coins earned by a win. The first matching mode wins:
// challenge, custom, easy, medium, hard, desafio. The result is never
// negative.
func Reward(stats Stats, rules Rules) int {
	r := rules.Rewards
	if stats.TwoPlayer {
		return max(r.TwoPlayer, 0)
	}

	m := stats.Modes
	var coins int
	switch {
	case m.Challenge:
		coins = r.Challenge
	case m.Custom:
		coins = (stats.Rows - 1) * r.CustomStep
	case m.Easy:
		coins = r.Easy
	case m.Medium:
		coins = r.Medium
	case m.Hard:
		coins = r.Hard
	case m.Desafio:
		coins = r.Desafio
	}
	return max(coins, 0)
}

// ModeLabel names the mode for the play history.
func ModeLabel(m Modes) string {
	switch {
	case m.Challenge:
		return "Challenge"
	case m.Desafio:
		return "Desafio"
	case m.Easy:
		return "Easy"
	case m.Medium:
		return "Medium"
	case m.Hard:
		return "Hard"
	case m.Custom:
		return "Custom"
	default:
		return "Normal"
	}
}
