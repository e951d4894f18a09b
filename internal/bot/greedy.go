package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
)

// Greedy takes every trick it can. When a legal trump or leading-suit card
// outranks every card of its suit already in the trick it plays the strongest
// such card; otherwise it throws its weakest legal card.
type Greedy struct {
	logger *log.Logger
}

// NewGreedy creates a new Greedy policy
func NewGreedy(logger *log.Logger) *Greedy {
	return &Greedy{logger: logger}
}

func (g *Greedy) ChooseCard(view game.SeatView) deck.Card {
	legal := view.LegalPlays()

	var winning []deck.Card
	for _, c := range legal {
		if c.Suit != view.Trump && (view.LeadingSuit == nil || c.Suit != *view.LeadingSuit) {
			continue
		}
		if tops(c, view.Trick) {
			winning = append(winning, c)
		}
	}

	if len(winning) > 0 {
		card := strongest(winning)
		g.logger.Debug("Greedy playing to win", "seat", view.Seat, "card", card)
		return card
	}

	card := weakest(legal)
	g.logger.Debug("Greedy discarding", "seat", view.Seat, "card", card)
	return card
}

// tops reports whether c outranks every card of its own suit in trick.
func tops(c deck.Card, trick []game.Play) bool {
	for _, p := range trick {
		if p.Card.Suit == c.Suit && !c.Rank.Beats(p.Card.Rank) {
			return false
		}
	}
	return true
}
