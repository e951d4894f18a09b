package deck

import (
	"github.com/lox/sueca/internal/randutil"
)

// Size is the number of cards in a full deck
const Size = NumSuits * NumRanks

// Build returns the 40 cards of the deck, suit by suit, strongest rank first.
func Build() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Deck represents an ordered pile of cards. Cards are dealt from the end of
// the pile (Pop), which is the top of the deck.
type Deck struct {
	cards []Card
}

// New creates a full, unshuffled 40-card deck
func New() *Deck {
	return &Deck{cards: Build()}
}

// NewShuffled creates a full deck shuffled with rng
func NewShuffled(rng randutil.Source) *Deck {
	d := New()
	d.Shuffle(rng)
	return d
}

// FromCards creates a deck holding exactly the given cards, in order. The last
// card is dealt first. Used to stage specific deals.
func FromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates
func (d *Deck) Shuffle(rng randutil.Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Pop removes and returns the top card from the deck
func (d *Deck) Pop() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card, true
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
