package scoring

import (
	"sort"
)

// Achievement titles. Titles are the persisted keys of the unlocked set.
const (
	AchievementFirstGame = "🎯 First Game"
	AchievementChallenge = "⏳ Against the Clock"
	AchievementDesafio   = "🔥 Desafio Completed"
	AchievementPerfect   = "👑 Perfect"
	AchievementEasy      = "Easy Level Completed"
	AchievementMedium    = "Medium Level Completed"
	AchievementHard      = "Hard Level Completed"
	AchievementCustom    = "Custom Completed"
	AchievementTwoPlayer = "👥 Two Players"
)

// Achievement describes a single unlockable goal.
type Achievement struct {
	Title       string
	Description string
}

var achievements = []Achievement{
	{AchievementFirstGame, "Finish a complete game"},
	{AchievementChallenge, "Win in challenge mode"},
	{AchievementDesafio, "Finish a game in desafio mode"},
	{AchievementPerfect, "Win with only a few extra attempts"},
	{AchievementEasy, "Complete the easy level once"},
	{AchievementMedium, "Complete the medium level once"},
	{AchievementHard, "Complete the hard level once"},
	{AchievementCustom, "Complete a custom game at 10 rows"},
	{AchievementTwoPlayer, "Finish a local two-player game"},
}

// Achievements returns every known achievement in display order.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievements))
	copy(out, achievements)
	return out
}

// AchievementSet is a set of unlocked achievement titles. The zero value is
// an empty set; methods never mutate the receiver.
type AchievementSet struct {
	titles map[string]struct{}
}

// NewAchievementSet builds a set from persisted titles.
func NewAchievementSet(titles ...string) AchievementSet {
	s := AchievementSet{titles: make(map[string]struct{}, len(titles))}
	for _, t := range titles {
		if t != "" {
			s.titles[t] = struct{}{}
		}
	}
	return s
}

// Has reports whether title is unlocked.
func (s AchievementSet) Has(title string) bool {
	_, ok := s.titles[title]
	return ok
}

// Len returns the number of unlocked titles.
func (s AchievementSet) Len() int {
	return len(s.titles)
}

// With returns a copy of the set with titles added.
func (s AchievementSet) With(titles ...string) AchievementSet {
	out := NewAchievementSet(s.Titles()...)
	for _, t := range titles {
		if t != "" {
			out.titles[t] = struct{}{}
		}
	}
	return out
}

// Titles returns the unlocked titles sorted for stable persistence.
func (s AchievementSet) Titles() []string {
	out := make([]string, 0, len(s.titles))
	for t := range s.titles {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
