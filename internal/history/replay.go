package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
)

// Replay plays the recorded tricks through a fresh round and checks that
// winners, points, the final scores, the result and the game points agree
// with the record.
func Replay(rec *Record) (game.Outcome, error) {
	round, err := restore(rec)
	if err != nil {
		return game.Outcome{}, err
	}

	for _, tr := range rec.Tricks {
		if got := int(round.Turn()) + 1; got != tr.Leader {
			return game.Outcome{}, fmt.Errorf("trick %d: recorded leader %d, expected %d", tr.Number, tr.Leader, got)
		}
		cards, err := deck.ParseCards(strings.Join(tr.Cards, " "))
		if err != nil {
			return game.Outcome{}, fmt.Errorf("trick %d: %w", tr.Number, err)
		}

		var result *game.TrickResult
		for _, c := range cards {
			result, err = round.PlayCard(round.Turn(), c)
			if err != nil {
				return game.Outcome{}, fmt.Errorf("trick %d: %w", tr.Number, err)
			}
		}
		if result == nil {
			return game.Outcome{}, fmt.Errorf("trick %d: %w", tr.Number, game.ErrIncompleteTrick)
		}
		if int(result.Winner)+1 != tr.Winner || result.Points != tr.Points {
			return game.Outcome{}, fmt.Errorf("trick %d: recorded %d points to seat %d, replay gives %d to seat %d",
				tr.Number, tr.Points, tr.Winner, result.Points, int(result.Winner)+1)
		}
	}

	outcome, ok := round.Outcome()
	if !ok {
		return game.Outcome{}, fmt.Errorf("round %s: record ends after %d tricks", rec.Round, len(rec.Tricks))
	}
	if len(rec.Scores) != 2 || outcome.Scores != [2]int{rec.Scores[0], rec.Scores[1]} {
		return game.Outcome{}, fmt.Errorf("round %s: recorded scores %v, replay gives %v", rec.Round, rec.Scores, outcome.Scores)
	}
	if rec.Result != outcome.Result.String() {
		return game.Outcome{}, fmt.Errorf("round %s: recorded result %q, replay gives %q", rec.Round, rec.Result, outcome.Result)
	}
	if rec.GamePoints != outcome.GamePoints() {
		return game.Outcome{}, fmt.Errorf("round %s: recorded %d game points, replay gives %d", rec.Round, rec.GamePoints, outcome.GamePoints())
	}
	return outcome, nil
}

func restore(rec *Record) (*game.Round, error) {
	if len(rec.Hands) != game.NumSeats {
		return nil, fmt.Errorf("round %s: expected %d hands, got %d", rec.Round, game.NumSeats, len(rec.Hands))
	}

	var hands game.Hands
	for seat, codes := range rec.Hands {
		cards, err := deck.ParseCards(strings.Join(codes, " "))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", seat+1, err)
		}
		hands[seat] = cards
	}

	trumpCard, err := deck.ParseCard(rec.TrumpCard)
	if err != nil {
		return nil, fmt.Errorf("trump card: %w", err)
	}
	if !deck.Contains(hands[game.HumanSeat], trumpCard) {
		return nil, fmt.Errorf("trump card %s not in %s's hand", trumpCard, game.HumanSeat)
	}

	return game.NewRoundFromHands(rec.Round, hands, trumpCard, game.HumanSeat)
}

// Render writes a readable summary of the record
func Render(w io.Writer, rec *Record) error {
	names := make(map[game.Seat]string, len(rec.Players))
	for i, name := range rec.Players {
		names[game.Seat(i)] = name
	}
	ef := game.NewEventFormatter(game.FormattingOptions{Names: names})

	round, err := restore(rec)
	if err != nil {
		return err
	}
	trump := round.TrumpCard()

	var b strings.Builder
	fmt.Fprintf(&b, "Round %s (%s)\n", rec.Round, rec.Time.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Trump: %s (%s)\n\n", trump, trump.Suit.Name())

	for _, seat := range game.Seats() {
		hand := deck.SortHand(round.Hand(seat), trump.Suit)
		fmt.Fprintf(&b, "%-10s %s  %s\n", ef.SeatName(seat)+":", ef.FormatCards(hand), seat.Partnership())
	}
	b.WriteString("\n")

	for _, tr := range rec.Tricks {
		cards, err := deck.ParseCards(strings.Join(tr.Cards, " "))
		if err != nil {
			return fmt.Errorf("trick %d: %w", tr.Number, err)
		}
		result := game.TrickResult{Number: tr.Number, Winner: game.Seat(tr.Winner - 1), Points: tr.Points}
		seat := game.Seat(tr.Leader - 1)
		for _, c := range cards {
			result.Plays = append(result.Plays, game.Play{Seat: seat, Card: c})
			seat = seat.Next()
		}
		b.WriteString(ef.FormatTrickLine(result) + "\n")
	}

	b.WriteString("\n")
	if len(rec.Scores) == 2 {
		b.WriteString(ef.FormatScores([2]int{rec.Scores[0], rec.Scores[1]}) + "\n")
	}
	fmt.Fprintf(&b, "%s (game points: %d)\n", rec.Result, rec.GamePoints)

	_, err = io.WriteString(w, b.String())
	return err
}
