package game

import (
	"fmt"
	"slices"

	"github.com/lox/sueca/internal/deck"
)

// Phase is the state of a round
type Phase int

const (
	PhaseAwaitingPlay Phase = iota
	PhaseRoundComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPlay:
		return "awaiting_play"
	case PhaseRoundComplete:
		return "round_complete"
	default:
		return "unknown"
	}
}

// Round holds the complete state of a single deal: hands, trump, the trick in
// progress, the turn pointer and partnership scores. It is not safe for
// concurrent use; Engine serializes access.
type Round struct {
	id          string
	trumpCard   deck.Card
	hands       Hands
	trick       []Play
	leadingSuit *deck.Suit
	turn        Seat
	scores      [2]int
	tricks      []TrickResult
	phase       Phase
}

// NewRound deals d into a new round. The human seat holds the trump card and
// leads the first trick.
func NewRound(id string, d *deck.Deck) (*Round, error) {
	hands, trumpCard, err := Deal(d)
	if err != nil {
		return nil, err
	}
	return newRoundFromHands(id, hands, trumpCard, HumanSeat), nil
}

// NewRoundFromHands builds a round from explicit hands, for replays and tests.
// Hands must hold HandSize distinct cards each.
func NewRoundFromHands(id string, hands Hands, trumpCard deck.Card, leader Seat) (*Round, error) {
	seen := make(map[deck.Card]bool, deck.Size)
	size := len(hands[0])
	for seat, hand := range hands {
		if len(hand) != size {
			return nil, fmt.Errorf("hand sizes differ: %s has %d, %s has %d", Seat(0), size, Seat(seat), len(hand))
		}
		for _, c := range hand {
			if !c.Valid() {
				return nil, fmt.Errorf("%s holds invalid card %v", Seat(seat), c)
			}
			if seen[c] {
				return nil, fmt.Errorf("card %s dealt twice", c)
			}
			seen[c] = true
		}
	}
	if !leader.Valid() {
		return nil, fmt.Errorf("invalid leader %d", leader)
	}
	return newRoundFromHands(id, hands.Clone(), trumpCard, leader), nil
}

func newRoundFromHands(id string, hands Hands, trumpCard deck.Card, leader Seat) *Round {
	r := &Round{
		id:        id,
		trumpCard: trumpCard,
		hands:     hands,
		trick:     make([]Play, 0, NumSeats),
		turn:      leader,
		tricks:    make([]TrickResult, 0, TricksPerRound),
	}
	if r.hands.Total() == 0 {
		r.phase = PhaseRoundComplete
	}
	return r
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// Trump returns the trump suit
func (r *Round) Trump() deck.Suit { return r.trumpCard.Suit }

// TrumpCard returns the card that fixed the trump suit
func (r *Round) TrumpCard() deck.Card { return r.trumpCard }

// Turn returns the seat whose play is currently legal
func (r *Round) Turn() Seat { return r.turn }

// Phase returns the current phase
func (r *Round) Phase() Phase { return r.phase }

// IsComplete reports whether every hand has been played out
func (r *Round) IsComplete() bool { return r.phase == PhaseRoundComplete }

// Scores returns the partnership scores, indexed by Partnership
func (r *Round) Scores() [2]int { return r.scores }

// Tricks returns the resolved tricks in order
func (r *Round) Tricks() []TrickResult { return slices.Clone(r.tricks) }

// Hand returns a copy of the cards held by seat
func (r *Round) Hand(seat Seat) []deck.Card {
	if !seat.Valid() {
		return nil
	}
	return slices.Clone(r.hands[seat])
}

// LeadingSuit returns the suit of the first card of the current trick, or nil
// when the trick is empty.
func (r *Round) LeadingSuit() *deck.Suit {
	if r.leadingSuit == nil {
		return nil
	}
	s := *r.leadingSuit
	return &s
}

// IsLegalPlay applies the follow-suit rule to seat's own hand. Unknown
// seats hold nothing, so nothing is legal for them.
func (r *Round) IsLegalPlay(seat Seat, card deck.Card) bool {
	if !seat.Valid() {
		return false
	}
	return IsLegalPlay(r.hands[seat], r.leadingSuit, card)
}

// LegalPlays returns the cards seat may play now
func (r *Round) LegalPlays(seat Seat) []deck.Card {
	if !seat.Valid() {
		return nil
	}
	return LegalPlays(r.hands[seat], r.leadingSuit)
}

// PlayCard plays card for seat. A rejected play returns a *PlayError and
// leaves the round unchanged. When the play completes a trick the resolved
// trick is returned and the winner leads next.
func (r *Round) PlayCard(seat Seat, card deck.Card) (*TrickResult, error) {
	return r.play(seat, card, nil)
}

// play is PlayCard with a hook that runs once the card is on the table and
// before a full trick is resolved.
func (r *Round) play(seat Seat, card deck.Card, placed func()) (*TrickResult, error) {
	if err := r.validate(seat, card); err != nil {
		return nil, &PlayError{Seat: seat, Card: card, Err: err}
	}

	r.hands[seat] = slices.DeleteFunc(r.hands[seat], func(c deck.Card) bool { return c == card })
	r.trick = append(r.trick, Play{Seat: seat, Card: card})
	if r.leadingSuit == nil {
		s := card.Suit
		r.leadingSuit = &s
	}

	full := len(r.trick) == NumSeats
	if !full {
		r.turn = seat.Next()
	}
	if placed != nil {
		placed()
	}
	if !full {
		return nil, nil
	}

	result := r.resolve()
	return &result, nil
}

func (r *Round) validate(seat Seat, card deck.Card) error {
	switch {
	case r.phase == PhaseRoundComplete:
		return ErrRoundComplete
	case seat != r.turn:
		return ErrOutOfTurn
	case !deck.Contains(r.hands[seat], card):
		return ErrCardNotHeld
	case !r.IsLegalPlay(seat, card):
		return ErrIllegalSuit
	}
	return nil
}

// resolve scores the full trick and hands the lead to its winner. Any
// failure here is a bookkeeping defect, so it panics.
func (r *Round) resolve() TrickResult {
	result, err := ResolveTrick(r.trick, r.Trump())
	if err != nil {
		panic(fmt.Sprintf("round %s: %v", r.id, err))
	}
	result.Number = len(r.tricks) + 1

	r.scores[result.Winner.Partnership()] += result.Points
	r.tricks = append(r.tricks, result)
	r.trick = r.trick[:0]
	r.leadingSuit = nil
	r.turn = result.Winner

	if r.hands.Total() == 0 {
		r.phase = PhaseRoundComplete
		if total := r.scores[TeamA] + r.scores[TeamB]; len(r.tricks) == TricksPerRound && total != TotalPoints {
			panic(fmt.Sprintf("round %s: scores sum to %d", r.id, total))
		}
		return result
	}

	for _, hand := range r.hands {
		if len(hand) != len(r.hands[0]) {
			panic(fmt.Sprintf("round %s: hand sizes diverged after trick %d", r.id, result.Number))
		}
	}
	return result
}

// Outcome returns the final result once the round is complete
func (r *Round) Outcome() (Outcome, bool) {
	if r.phase != PhaseRoundComplete {
		return Outcome{}, false
	}
	return NewOutcome(r.scores), true
}

// Snapshot returns a copy of the round state
func (r *Round) Snapshot() Snapshot {
	snap := Snapshot{
		RoundID:      r.id,
		Trump:        r.Trump(),
		TrumpCard:    r.trumpCard,
		CurrentSeat:  r.turn,
		LeadingSuit:  r.LeadingSuit(),
		Hands:        r.hands.Clone(),
		Trick:        slices.Clone(r.trick),
		Scores:       r.scores,
		TricksPlayed: len(r.tricks),
		Terminal:     r.phase == PhaseRoundComplete,
	}
	if n := len(r.tricks); n > 0 {
		last := r.tricks[n-1]
		last.Plays = slices.Clone(last.Plays)
		snap.LastTrick = &last
	}
	if o, ok := r.Outcome(); ok {
		snap.Outcome = &o
	}
	return snap
}
