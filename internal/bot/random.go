package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/randutil"
)

// Random plays a uniformly random legal card
type Random struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRandom creates a new Random policy
func NewRandom(rng randutil.Source, logger *log.Logger) *Random {
	return &Random{rng: rng, logger: logger}
}

func (r *Random) ChooseCard(view game.SeatView) deck.Card {
	legal := view.LegalPlays()
	card := legal[r.rng.IntN(len(legal))]
	r.logger.Debug("Random choice", "seat", view.Seat, "card", card, "options", len(legal))
	return card
}
