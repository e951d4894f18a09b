package game

import (
	"fmt"

	"github.com/lox/sueca/internal/deck"
)

// Play is a single card played by a seat
type Play struct {
	Seat Seat
	Card deck.Card
}

// TrickResult describes a resolved trick
type TrickResult struct {
	Number      int // 1-based
	Plays       []Play
	LeadingSuit deck.Suit
	Winner      Seat
	WinningCard deck.Card
	Points      int
}

// Leader returns the seat that opened the trick
func (t TrickResult) Leader() Seat {
	return t.Plays[0].Seat
}

// IsLegalPlay reports whether card may be played from hand given the trick's
// leading suit. With no leading suit any card is legal; otherwise the card must
// follow suit unless the hand holds no card of the leading suit.
func IsLegalPlay(hand []deck.Card, leadingSuit *deck.Suit, card deck.Card) bool {
	if leadingSuit == nil {
		return true
	}
	if card.Suit == *leadingSuit {
		return true
	}
	return !deck.HasSuit(hand, *leadingSuit)
}

// LegalPlays returns the cards of hand that may be played, in hand order
func LegalPlays(hand []deck.Card, leadingSuit *deck.Suit) []deck.Card {
	legal := make([]deck.Card, 0, len(hand))
	for _, c := range hand {
		if IsLegalPlay(hand, leadingSuit, c) {
			legal = append(legal, c)
		}
	}
	return legal
}

// ResolveTrick picks the winner of a complete trick. Trump cards beat
// everything else; without trump the strongest card of the leading suit wins.
// Points are the sum over all four cards.
func ResolveTrick(plays []Play, trump deck.Suit) (TrickResult, error) {
	if len(plays) != NumSeats {
		return TrickResult{}, fmt.Errorf("%w: got %d", ErrIncompleteTrick, len(plays))
	}

	leading := plays[0].Card.Suit
	target := leading
	for _, p := range plays {
		if p.Card.Suit == trump {
			target = trump
			break
		}
	}

	best := -1
	points := 0
	for i, p := range plays {
		points += p.Card.Points()
		if p.Card.Suit != target {
			continue
		}
		if best < 0 || p.Card.Rank.Beats(plays[best].Card.Rank) {
			best = i
		}
	}

	return TrickResult{
		Plays:       append([]Play(nil), plays...),
		LeadingSuit: leading,
		Winner:      plays[best].Seat,
		WinningCard: plays[best].Card,
		Points:      points,
	}, nil
}

// currentWinner returns the index of the play currently winning an incomplete
// trick, or -1 for an empty trick.
func currentWinner(plays []Play, trump deck.Suit) int {
	if len(plays) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(plays); i++ {
		if cardBeats(plays[i].Card, plays[best].Card, plays[0].Card.Suit, trump) {
			best = i
		}
	}
	return best
}

// cardBeats reports whether a beats b in a trick led with led.
func cardBeats(a, b deck.Card, led, trump deck.Suit) bool {
	switch {
	case a.Suit == b.Suit:
		return a.Rank.Beats(b.Rank)
	case a.Suit == trump:
		return true
	case b.Suit == trump:
		return false
	default:
		return a.Suit == led
	}
}

// WinningPlay returns the play currently winning plays, and false for an empty
// trick. Bots use it to decide whether they can still take the trick.
func WinningPlay(plays []Play, trump deck.Suit) (Play, bool) {
	i := currentWinner(plays, trump)
	if i < 0 {
		return Play{}, false
	}
	return plays[i], true
}

// Beats reports whether card would take the trick from the current winner of
// plays. Any card beats an empty trick.
func Beats(card deck.Card, plays []Play, trump deck.Suit) bool {
	w, ok := WinningPlay(plays, trump)
	if !ok {
		return true
	}
	return cardBeats(card, w.Card, plays[0].Card.Suit, trump)
}
