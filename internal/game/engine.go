package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/randutil"
)

// Engine is the round controller shared by the interactive front ends and the
// simulator. It owns the current Round, validates every play through it and
// publishes a GameEvent after each state change. Engine is synchronous: a play
// either commits or is rejected before SubmitPlay returns.
type Engine struct {
	rng      randutil.Source
	logger   *log.Logger
	eventBus EventBus
	policies [NumSeats]Policy
	newID    func() string
	newDeck  func(rng randutil.Source) *deck.Deck

	round  *Round
	rounds int
	busy   bool
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithPolicy makes seat automated, driven by p
func WithPolicy(seat Seat, p Policy) EngineOption {
	return func(e *Engine) {
		if seat.Valid() {
			e.policies[seat] = p
		}
	}
}

// WithBots assigns p to every seat except HumanSeat
func WithBots(p Policy) EngineOption {
	return func(e *Engine) {
		for _, seat := range Seats() {
			if seat != HumanSeat {
				e.policies[seat] = p
			}
		}
	}
}

// WithEventBus publishes events on bus instead of a private bus
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) {
		e.eventBus = bus
	}
}

// WithRoundIDs sets the generator for round identifiers
func WithRoundIDs(fn func() string) EngineOption {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithDeckFactory replaces the shuffled deck used for each new round
func WithDeckFactory(fn func(rng randutil.Source) *deck.Deck) EngineOption {
	return func(e *Engine) {
		e.newDeck = fn
	}
}

// NewEngine creates a round controller. Seats without a policy must be played
// through SubmitPlay.
func NewEngine(rng randutil.Source, logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		rng:      rng,
		logger:   logger,
		eventBus: NewEventBus(),
		newID:    shortID,
		newDeck: func(rng randutil.Source) *deck.Deck {
			return deck.NewShuffled(rng)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func shortID() string {
	return uuid.NewString()[:8]
}

// EventBus returns the event bus for subscribing to game events
func (e *Engine) EventBus() EventBus {
	return e.eventBus
}

// StartRound discards any previous round, then builds, shuffles and deals a
// new one.
func (e *Engine) StartRound() error {
	if e.busy {
		return ErrPlayInProgress
	}

	id := e.newID()
	round, err := NewRound(id, e.newDeck(e.rng))
	if err != nil {
		e.logger.Error("Failed to deal round", "round", id, "error", err)
		return err
	}

	e.round = round
	e.rounds++
	e.logger.Debug("Starting round", "round", id, "trump", round.TrumpCard(), "number", e.rounds)

	e.busy = true
	defer func() { e.busy = false }()
	e.eventBus.Publish(NewRoundStartEvent(round.Snapshot()))
	return nil
}

// SubmitPlay plays card for seat. Rule violations are returned as *PlayError
// and leave the round unchanged.
func (e *Engine) SubmitPlay(seat Seat, card deck.Card) (*TrickResult, error) {
	return e.apply(seat, card, false, false)
}

// PlayAutomated asks the policy of the seat to act for a card and plays it.
// An illegal choice is logged and replaced by the first legal card.
func (e *Engine) PlayAutomated() (Play, *TrickResult, error) {
	if e.round == nil {
		return Play{}, nil, ErrNoRound
	}
	if e.round.IsComplete() {
		return Play{}, nil, ErrRoundComplete
	}

	seat := e.round.Turn()
	policy := e.policies[seat]
	if policy == nil {
		return Play{}, nil, fmt.Errorf("%s: %w", seat, ErrAwaitingHuman)
	}

	card := policy.ChooseCard(e.round.Snapshot().SeatView(seat))
	fallback := false
	if !deck.Contains(e.round.hands[seat], card) || !e.round.IsLegalPlay(seat, card) {
		legal := e.round.LegalPlays(seat)
		e.logger.Warn("Policy chose an illegal card, using fallback",
			"round", e.round.ID(), "seat", seat, "card", card, "fallback", legal[0])
		card = legal[0]
		fallback = true
	}

	result, err := e.apply(seat, card, true, fallback)
	if err != nil {
		return Play{}, nil, err
	}
	return Play{Seat: seat, Card: card}, result, nil
}

func (e *Engine) apply(seat Seat, card deck.Card, automated, fallback bool) (*TrickResult, error) {
	if e.round == nil {
		return nil, ErrNoRound
	}
	if e.busy {
		return nil, ErrPlayInProgress
	}
	e.busy = true
	defer func() { e.busy = false }()

	var played Snapshot
	result, err := e.round.play(seat, card, func() { played = e.round.Snapshot() })
	if err != nil {
		e.logger.Debug("Rejected play", "round", e.round.ID(), "seat", seat, "card", card, "error", err)
		return nil, err
	}

	e.logger.Debug("Card played", "round", e.round.ID(), "seat", seat, "card", card, "automated", automated)
	e.eventBus.Publish(NewCardPlayedEvent(Play{Seat: seat, Card: card}, automated, fallback, played))

	if result == nil {
		return nil, nil
	}

	e.logger.Debug("Trick complete",
		"round", e.round.ID(),
		"trick", result.Number,
		"winner", result.Winner,
		"card", result.WinningCard,
		"points", result.Points)
	e.eventBus.Publish(NewTrickCompleteEvent(*result, e.round.Snapshot()))

	if outcome, done := e.round.Outcome(); done {
		e.logger.Info("Round complete",
			"round", e.round.ID(),
			"teamA", outcome.Scores[TeamA],
			"teamB", outcome.Scores[TeamB],
			"result", outcome.Result)
		e.eventBus.Publish(NewRoundEndEvent(outcome, e.round.Tricks(), e.round.Snapshot()))
	}
	return result, nil
}

// Run plays the current round to completion, starting a new one when none is
// in progress. Every seat to act must have a policy. The context is checked
// between plays.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	if e.round == nil || e.round.IsComplete() {
		if err := e.StartRound(); err != nil {
			return Outcome{}, err
		}
	}

	for !e.round.IsComplete() {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		if _, _, err := e.PlayAutomated(); err != nil {
			return Outcome{}, err
		}
	}

	outcome, _ := e.round.Outcome()
	return outcome, nil
}

// HasRound reports whether a round has been started
func (e *Engine) HasRound() bool {
	return e.round != nil
}

// Snapshot returns the state of the current round, or the zero Snapshot before
// the first round.
func (e *Engine) Snapshot() Snapshot {
	if e.round == nil {
		return Snapshot{}
	}
	return e.round.Snapshot()
}

// Outcome returns the result of the current round once it is complete
func (e *Engine) Outcome() (Outcome, bool) {
	if e.round == nil {
		return Outcome{}, false
	}
	return e.round.Outcome()
}

// Tricks returns the resolved tricks of the current round
func (e *Engine) Tricks() []TrickResult {
	if e.round == nil {
		return nil
	}
	return e.round.Tricks()
}

// CurrentSeat returns the seat whose turn it is
func (e *Engine) CurrentSeat() Seat {
	if e.round == nil {
		return HumanSeat
	}
	return e.round.Turn()
}

// LegalPlays returns the cards seat may play now. It is empty when the round
// is over or it is not the seat's turn.
func (e *Engine) LegalPlays(seat Seat) []deck.Card {
	if e.round == nil || e.round.IsComplete() || e.round.Turn() != seat {
		return nil
	}
	return e.round.LegalPlays(seat)
}

// IsAutomated reports whether seat is driven by a policy
func (e *Engine) IsAutomated(seat Seat) bool {
	return seat.Valid() && e.policies[seat] != nil
}

// AwaitingAutomated reports whether the next play belongs to an automated seat
func (e *Engine) AwaitingAutomated() bool {
	return e.round != nil && !e.round.IsComplete() && e.IsAutomated(e.round.Turn())
}

// RoundsPlayed returns the number of rounds started by this engine
func (e *Engine) RoundsPlayed() int {
	return e.rounds
}
