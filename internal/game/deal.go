package game

import (
	"fmt"

	"github.com/lox/sueca/internal/deck"
)

// Hands holds the cards of each seat, indexed by Seat
type Hands [NumSeats][]deck.Card

// Total returns the number of cards across all hands
func (h Hands) Total() int {
	n := 0
	for _, hand := range h {
		n += len(hand)
	}
	return n
}

// Clone returns a deep copy of the hands
func (h Hands) Clone() Hands {
	var out Hands
	for i, hand := range h {
		out[i] = append([]deck.Card(nil), hand...)
	}
	return out
}

// Deal distributes a full deck into four hands. The first card popped goes to
// HumanSeat and fixes the trump suit; the remaining cards are dealt ten at a
// time to each seat in order.
func Deal(d *deck.Deck) (Hands, deck.Card, error) {
	var hands Hands
	if d.Len() < deck.Size {
		return hands, deck.Card{}, fmt.Errorf("%w: deck has %d cards", ErrInsufficientCards, d.Len())
	}

	var trumpCard deck.Card
	for _, seat := range Seats() {
		hand := make([]deck.Card, 0, HandSize)
		for range HandSize {
			c, ok := d.Pop()
			if !ok {
				return Hands{}, deck.Card{}, ErrInsufficientCards
			}
			if seat == HumanSeat && len(hand) == 0 {
				trumpCard = c
			}
			hand = append(hand, c)
		}
		hands[seat] = hand
	}

	return hands, trumpCard, nil
}
