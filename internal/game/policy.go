package game

import "github.com/lox/sueca/internal/deck"

// SeatView is the read-only state a seat may use to choose a card
type SeatView struct {
	Seat        Seat
	Hand        []deck.Card
	LeadingSuit *deck.Suit
	Trump       deck.Suit
	Trick       []Play
}

// LegalPlays returns the cards of the view's hand that may be played now
func (v SeatView) LegalPlays() []deck.Card {
	return LegalPlays(v.Hand, v.LeadingSuit)
}

// Policy chooses a card for an automated seat. Implementations must return a
// card from view.LegalPlays(); the engine replaces anything else with the
// first legal card.
type Policy interface {
	ChooseCard(view SeatView) deck.Card
}

// PolicyFunc adapts a function to the Policy interface
type PolicyFunc func(view SeatView) deck.Card

// ChooseCard calls f(view)
func (f PolicyFunc) ChooseCard(view SeatView) deck.Card {
	return f(view)
}

// FirstLegal is a Policy that always plays the first legal card in hand order
var FirstLegal = PolicyFunc(func(view SeatView) deck.Card {
	return view.LegalPlays()[0]
})
