package game

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// deckFor returns a deck that Deal splits into exactly hands, with hands[Seat1][0]
// dealt first.
func deckFor(hands Hands) *deck.Deck {
	cards := make([]deck.Card, 0, deck.Size)
	for _, hand := range hands {
		cards = append(cards, hand...)
	}
	slices.Reverse(cards)
	return deck.FromCards(cards)
}

// suitPerSeat deals each seat one complete suit: Seat1 hearts, Seat2
// diamonds, Seat3 clubs, Seat4 spades.
func suitPerSeat() Hands {
	var hands Hands
	for i, suit := range deck.Suits() {
		for _, rank := range deck.Ranks() {
			hands[i] = append(hands[i], deck.NewCard(suit, rank))
		}
	}
	return hands
}

func fixedDeck(hands Hands) func(randutil.Source) *deck.Deck {
	return func(randutil.Source) *deck.Deck {
		return deckFor(hands)
	}
}

// playOut finishes r by playing the first legal card for every seat.
func playOut(r *Round) []TrickResult {
	var tricks []TrickResult
	for !r.IsComplete() {
		seat := r.Turn()
		result, err := r.PlayCard(seat, r.LegalPlays(seat)[0])
		if err != nil {
			panic(err)
		}
		if result != nil {
			tricks = append(tricks, *result)
		}
	}
	return tricks
}

type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == t {
			n++
		}
	}
	return n
}

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func card(s string) deck.Card {
	c, err := deck.ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}
