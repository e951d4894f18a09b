package bot

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
)

// Partner plays with its team in mind. It never overtakes a trick its partner
// is winning, feeds points to the partner on the last play of a trick, and
// otherwise takes the trick as cheaply as it can or discards its cheapest
// card.
type Partner struct {
	logger *log.Logger
}

// NewPartner creates a new Partner policy
func NewPartner(logger *log.Logger) *Partner {
	return &Partner{logger: logger}
}

func (p *Partner) ChooseCard(view game.SeatView) deck.Card {
	legal := view.LegalPlays()
	card, reason := p.choose(view, legal)
	p.logger.Debug("Partner choice", "seat", view.Seat, "card", card, "reason", reason)
	return card
}

func (p *Partner) choose(view game.SeatView, legal []deck.Card) (deck.Card, string) {
	if len(view.Trick) == 0 {
		return p.lead(view.Trump, legal)
	}

	winner, _ := game.WinningPlay(view.Trick, view.Trump)
	if winner.Seat == view.Seat.Partner() {
		if len(view.Trick) == game.NumSeats-1 {
			if c, ok := richestSafe(legal, view); ok {
				return c, "feeding partner"
			}
		}
		return discard(legal, view.Trump), "partner winning"
	}

	var winners []deck.Card
	for _, c := range legal {
		if game.Beats(c, view.Trick, view.Trump) {
			winners = append(winners, c)
		}
	}
	if len(winners) == 0 {
		return discard(legal, view.Trump), "cannot win"
	}

	// prefer winning without spending a trump, then with the weakest card
	slices.SortStableFunc(winners, func(a, b deck.Card) int {
		at, bt := a.Suit == view.Trump, b.Suit == view.Trump
		if at != bt {
			if at {
				return 1
			}
			return -1
		}
		return int(a.Rank) - int(b.Rank)
	})
	if winners[0].Suit == view.Trump && trickPoints(view.Trick) == 0 {
		return discard(legal, view.Trump), "not worth a trump"
	}
	return winners[0], "taking trick"
}

// lead opens with a side-suit ace when possible, otherwise the cheapest
// side-suit card, keeping trumps back.
func (p *Partner) lead(trump deck.Suit, legal []deck.Card) (deck.Card, string) {
	for _, c := range legal {
		if c.Suit != trump && c.Rank == deck.Ace {
			return c, "leading ace"
		}
	}
	return discard(legal, trump), "leading low"
}

// richestSafe returns the highest-point legal card that cannot overtake the
// partner.
func richestSafe(legal []deck.Card, view game.SeatView) (deck.Card, bool) {
	var best deck.Card
	found := false
	for _, c := range legal {
		if game.Beats(c, view.Trick, view.Trump) {
			continue
		}
		if !found || c.Points() > best.Points() {
			best = c
			found = true
		}
	}
	return best, found && best.Points() > 0
}

// discard returns the cheapest side-suit card, falling back to the cheapest
// trump.
func discard(legal []deck.Card, trump deck.Suit) deck.Card {
	side := make([]deck.Card, 0, len(legal))
	for _, c := range legal {
		if c.Suit != trump {
			side = append(side, c)
		}
	}
	if len(side) > 0 {
		return cheapest(side)
	}
	return cheapest(legal)
}

func trickPoints(trick []game.Play) int {
	total := 0
	for _, p := range trick {
		total += p.Card.Points()
	}
	return total
}
