package game

import (
	"errors"
	"fmt"

	"github.com/lox/sueca/internal/deck"
)

// Rule violations. A play rejected with one of these leaves the round untouched.
var (
	ErrOutOfTurn     = errors.New("not your turn")
	ErrCardNotHeld   = errors.New("card not in hand")
	ErrIllegalSuit   = errors.New("must follow the leading suit")
	ErrRoundComplete = errors.New("round is complete")
)

// Controller errors.
var (
	ErrNoRound        = errors.New("no round in progress")
	ErrAwaitingHuman  = errors.New("seat has no automated policy")
	ErrPlayInProgress = errors.New("another play is being processed")
)

// Invariant breaches. These indicate a defect and end the round.
var (
	ErrIncompleteTrick   = errors.New("trick resolved with fewer than four cards")
	ErrInsufficientCards = errors.New("deck exhausted before dealing finished")
)

// PlayError describes a rejected play.
type PlayError struct {
	Seat Seat
	Card deck.Card
	Err  error
}

func (e *PlayError) Error() string {
	return fmt.Sprintf("%s cannot play %s: %v", e.Seat, e.Card, e.Err)
}

func (e *PlayError) Unwrap() error { return e.Err }

// IsRuleViolation reports whether err is a recoverable rejection of a play,
// as opposed to a controller or invariant error.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrOutOfTurn) ||
		errors.Is(err, ErrCardNotHeld) ||
		errors.Is(err, ErrIllegalSuit) ||
		errors.Is(err, ErrRoundComplete)
}
