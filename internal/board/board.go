// Package board deals the shuffled, paired card layouts used by every game
// variant.
package board

import (
	"errors"
	"fmt"
	"math/rand"
)

// DefaultColumns is the fixed width of a single-player board.
const DefaultColumns = 4

var (
	// ErrInsufficientSymbols is returned when a theme has fewer distinct
	// symbols than the requested number of pairs.
	ErrInsufficientSymbols = errors.New("not enough distinct symbols for pair count")

	// ErrInvalidPairCount is returned for pair counts below one.
	ErrInvalidPairCount = errors.New("pair count must be at least 1")
)

// Card is a single position on the board.
type Card struct {
	ID      int    // Position index, unique within a deal
	Content string // Symbol shared with exactly one other card
	FaceUp  bool
	Matched bool // Never reverts once set
}

// TotalCards returns the card count for a grid, rounded up to an even number.
func TotalCards(rows, columns int) int {
	total := rows * columns
	if total%2 != 0 {
		total++
	}
	return total
}

// PairCount returns the number of pairs dealt for a grid.
func PairCount(rows, columns int) int {
	return TotalCards(rows, columns) / 2
}

// Generate deals pairCount pairs drawn from symbols. Symbols are sampled
// without replacement, duplicated, shuffled and numbered in dealt order.
func Generate(pairCount int, symbols []string, rng *rand.Rand) ([]Card, error) {
	if pairCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPairCount, pairCount)
	}

	distinct := dedupe(symbols)
	if len(distinct) < pairCount {
		return nil, fmt.Errorf("%w: need %d, theme has %d", ErrInsufficientSymbols, pairCount, len(distinct))
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	// Partial Fisher-Yates: the first pairCount entries become a uniform sample.
	pool := make([]string, len(distinct))
	copy(pool, distinct)
	for i := 0; i < pairCount; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	picked := pool[:pairCount]

	contents := make([]string, 0, pairCount*2)
	contents = append(contents, picked...)
	contents = append(contents, picked...)
	rng.Shuffle(len(contents), func(i, j int) {
		contents[i], contents[j] = contents[j], contents[i]
	})

	cards := make([]Card, len(contents))
	for i, c := range contents {
		cards[i] = Card{ID: i, Content: c}
	}
	return cards, nil
}

// AllMatched reports whether every card on the board has been matched.
func AllMatched(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if !c.Matched {
			return false
		}
	}
	return true
}

// CountMatchedPairs returns the number of matched pairs.
func CountMatchedPairs(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.Matched {
			n++
		}
	}
	return n / 2
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
