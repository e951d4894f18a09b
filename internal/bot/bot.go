// Package bot provides card-playing policies for automated seats.
package bot

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/randutil"
)

// Strategy names accepted by New
const (
	StrategyRandom  = "random"
	StrategyGreedy  = "greedy"
	StrategyPartner = "partner"
)

// DefaultStrategy is used when no strategy is configured
const DefaultStrategy = StrategyRandom

type factory func(rng randutil.Source, logger *log.Logger) game.Policy

var registry = map[string]factory{
	StrategyRandom: func(rng randutil.Source, logger *log.Logger) game.Policy {
		return NewRandom(rng, logger)
	},
	StrategyGreedy: func(_ randutil.Source, logger *log.Logger) game.Policy {
		return NewGreedy(logger)
	},
	StrategyPartner: func(_ randutil.Source, logger *log.Logger) game.Policy {
		return NewPartner(logger)
	},
}

// New returns the policy registered under name
func New(name string, rng randutil.Source, logger *log.Logger) (game.Policy, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (available: %s)", name, strings.Join(Strategies(), ", "))
	}
	return f(rng, logger.WithPrefix("bot")), nil
}

// Strategies returns the registered strategy names in sorted order
func Strategies() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsStrategy reports whether name is a registered strategy
func IsStrategy(name string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// strongest returns the card with the strongest rank, preferring earlier
// cards on ties.
func strongest(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank.Beats(best.Rank) {
			best = c
		}
	}
	return best
}

// weakest returns the card with the weakest rank, preferring earlier cards on
// ties.
func weakest(cards []deck.Card) deck.Card {
	worst := cards[0]
	for _, c := range cards[1:] {
		if worst.Rank.Beats(c.Rank) {
			worst = c
		}
	}
	return worst
}

// cheapest returns the card giving away the fewest points, then the weakest.
func cheapest(cards []deck.Card) deck.Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b deck.Card) int {
		if a.Points() != b.Points() {
			return a.Points() - b.Points()
		}
		return int(a.Rank) - int(b.Rank)
	})
	return sorted[0]
}
