package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/sueca/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	Color       bool            // Wrap cards in ANSI colours (console)
	ShowHands   bool            // Include every trick in round summaries
	Perspective *Seat           // Seat rendered as "You"
	Names       map[Seat]string // Optional display names
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// HumanPerspective returns options that render HumanSeat as "You"
func HumanPerspective() FormattingOptions {
	seat := HumanSeat
	return FormattingOptions{Perspective: &seat}
}

// Format renders any game event, or "" for unknown events
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case CardPlayedEvent:
		return ef.FormatCardPlayed(e)
	case TrickCompleteEvent:
		return ef.FormatTrickComplete(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	default:
		return ""
	}
}

// SeatName returns the display name for seat
func (ef *EventFormatter) SeatName(seat Seat) string {
	if ef.opts.Perspective != nil && *ef.opts.Perspective == seat {
		return "You"
	}
	if name, ok := ef.opts.Names[seat]; ok && name != "" {
		return name
	}
	return seat.String()
}

// FormatRoundStart formats a round start event into a human-readable string
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	line1 := ef.bold(fmt.Sprintf("Round %s", event.RoundID))
	line2 := fmt.Sprintf("Trump: %s (%s), held by %s",
		ef.FormatCard(event.TrumpCard), event.TrumpCard.Suit.Name(), ef.SeatName(HumanSeat))
	line3 := fmt.Sprintf("%s to lead", ef.SeatName(event.Leader))
	return strings.Join([]string{line1, line2, line3}, "\n")
}

// FormatCardPlayed formats a card played event into a human-readable string
func (ef *EventFormatter) FormatCardPlayed(event CardPlayedEvent) string {
	verb := "plays"
	if ef.opts.Perspective != nil && *ef.opts.Perspective == event.Play.Seat {
		verb = "play"
	}
	text := fmt.Sprintf("%s %s %s", ef.SeatName(event.Play.Seat), verb, ef.FormatCard(event.Play.Card))
	if event.Fallback {
		text += " (fallback)"
	}
	return text
}

// FormatTrickComplete formats a resolved trick into a human-readable string
func (ef *EventFormatter) FormatTrickComplete(event TrickCompleteEvent) string {
	t := event.Trick
	verb := "wins"
	if ef.opts.Perspective != nil && *ef.opts.Perspective == t.Winner {
		verb = "win"
	}
	return fmt.Sprintf("Trick %d: %s %s with %s (+%d for %s)",
		t.Number, ef.SeatName(t.Winner), verb, ef.FormatCard(t.WinningCard), t.Points, t.Winner.Partnership())
}

// FormatRoundEnd formats a round end event into a human-readable string
func (ef *EventFormatter) FormatRoundEnd(event RoundEndEvent) string {
	var result strings.Builder

	result.WriteString(ef.bold(fmt.Sprintf("=== Round %s Complete ===", event.RoundID)) + "\n")
	result.WriteString(ef.FormatScores(event.Outcome.Scores) + "\n")

	if team, ok := event.Outcome.Winner(); ok {
		points := event.Outcome.GamePoints()
		suffix := "s"
		if points == 1 {
			suffix = ""
		}
		result.WriteString(fmt.Sprintf("%s wins with %d points to %d (%d game point%s)\n",
			team, event.Outcome.Scores[team], event.Outcome.Scores[team.Opponent()], points, suffix))
	} else {
		result.WriteString("It's a draw!\n")
	}

	if ef.opts.ShowHands {
		for _, t := range event.Tricks {
			result.WriteString(ef.FormatTrickLine(t) + "\n")
		}
	}

	return result.String()
}

// FormatTrickLine renders all four plays of a resolved trick on one line
func (ef *EventFormatter) FormatTrickLine(t TrickResult) string {
	parts := make([]string, 0, len(t.Plays))
	for _, p := range t.Plays {
		parts = append(parts, fmt.Sprintf("%s %s", ef.SeatName(p.Seat), ef.FormatCard(p.Card)))
	}
	return fmt.Sprintf("%2d. %s -> %s (%d)", t.Number, strings.Join(parts, ", "), ef.SeatName(t.Winner), t.Points)
}

// FormatRejection explains why a play from the perspective seat was refused
func (ef *EventFormatter) FormatRejection(err error, state Snapshot) string {
	var card string
	var pe *PlayError
	if errors.As(err, &pe) {
		card = ef.FormatCard(pe.Card)
	}

	switch {
	case errors.Is(err, ErrNoRound):
		return "No round in progress"
	case errors.Is(err, ErrRoundComplete):
		return "The round is over"
	case errors.Is(err, ErrOutOfTurn):
		return fmt.Sprintf("Not your turn, waiting for %s", ef.SeatName(state.CurrentSeat))
	case errors.Is(err, ErrCardNotHeld):
		return fmt.Sprintf("%s is not in your hand", card)
	case errors.Is(err, ErrIllegalSuit):
		if state.LeadingSuit != nil {
			return fmt.Sprintf("You must follow %s while you hold them", state.LeadingSuit.Name())
		}
		return fmt.Sprintf("%s does not follow suit", card)
	default:
		return err.Error()
	}
}

// FormatScores renders both partnership scores
func (ef *EventFormatter) FormatScores(scores [2]int) string {
	return fmt.Sprintf("%s: %d  %s: %d", TeamA, scores[TeamA], TeamB, scores[TeamB])
}

// FormatCards formats a slice of cards separated by spaces
func (ef *EventFormatter) FormatCards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		formatted = append(formatted, ef.FormatCard(card))
	}
	return strings.Join(formatted, " ")
}

// FormatCard formats a single card, coloured when enabled
func (ef *EventFormatter) FormatCard(card deck.Card) string {
	if !ef.opts.Color {
		return card.String()
	}
	if card.IsRed() {
		return fmt.Sprintf("\033[31m%s\033[0m", card.String())
	}
	return ef.bold(card.String())
}

func (ef *EventFormatter) bold(s string) string {
	if !ef.opts.Color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}
