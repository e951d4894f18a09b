package game

import "github.com/lox/sueca/internal/deck"

// Snapshot is a read-only copy of round state for front ends and subscribers.
// All slices are copies; mutating them does not affect the round.
type Snapshot struct {
	RoundID      string
	Trump        deck.Suit
	TrumpCard    deck.Card
	CurrentSeat  Seat
	LeadingSuit  *deck.Suit
	Hands        Hands
	Trick        []Play
	Scores       [2]int
	TricksPlayed int
	LastTrick    *TrickResult
	Terminal     bool
	Outcome      *Outcome
}

// Hand returns the cards held by seat
func (s Snapshot) Hand(seat Seat) []deck.Card {
	if !seat.Valid() {
		return nil
	}
	return s.Hands[seat]
}

// SeatView returns the information available to seat when deciding a play
func (s Snapshot) SeatView(seat Seat) SeatView {
	return SeatView{
		Seat:        seat,
		Hand:        s.Hand(seat),
		LeadingSuit: s.LeadingSuit,
		Trump:       s.Trump,
		Trick:       s.Trick,
	}
}
