// Package history exports completed rounds as TOML records and reads them
// back for display and replay checks.
package history

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
)

// Variant identifies the game in every record
const Variant = "sueca"

// Record is a complete round in TOML form. Seats are 1-based and cards use
// two-letter codes ("AS", "7H").
type Record struct {
	Variant    string        `toml:"variant"`
	Round      string        `toml:"round"`
	Time       time.Time     `toml:"time"`
	Players    []string      `toml:"players"`
	TrumpCard  string        `toml:"trump_card"`
	Hands      [][]string    `toml:"hands"`
	Scores     []int         `toml:"scores"`
	Result     string        `toml:"result"`
	GamePoints int           `toml:"game_points"`
	Tricks     []TrickRecord `toml:"tricks"`
}

// TrickRecord is one resolved trick
type TrickRecord struct {
	Number int      `toml:"number"`
	Leader int      `toml:"leader"`
	Cards  []string `toml:"cards"`
	Winner int      `toml:"winner"`
	Points int      `toml:"points"`
}

// NewRecord builds a record from the snapshot taken when the round was dealt
// and the event that ended it.
func NewRecord(start game.Snapshot, end game.RoundEndEvent, players [game.NumSeats]string, at time.Time) Record {
	rec := Record{
		Variant:    Variant,
		Round:      end.RoundID,
		Time:       at.UTC().Truncate(time.Second),
		Players:    players[:],
		TrumpCard:  start.TrumpCard.Code(),
		Hands:      make([][]string, game.NumSeats),
		Scores:     []int{end.Outcome.Scores[game.TeamA], end.Outcome.Scores[game.TeamB]},
		Result:     end.Outcome.Result.String(),
		GamePoints: end.Outcome.GamePoints(),
		Tricks:     make([]TrickRecord, 0, len(end.Tricks)),
	}
	for seat, hand := range start.Hands {
		rec.Hands[seat] = codes(hand)
	}
	for _, t := range end.Tricks {
		cards := make([]deck.Card, 0, len(t.Plays))
		for _, p := range t.Plays {
			cards = append(cards, p.Card)
		}
		rec.Tricks = append(rec.Tricks, TrickRecord{
			Number: t.Number,
			Leader: int(t.Leader()) + 1,
			Cards:  codes(cards),
			Winner: int(t.Winner) + 1,
			Points: t.Points,
		})
	}
	return rec
}

func codes(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}

// Encode writes the record to w in TOML format
func Encode(w io.Writer, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("history: record is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(rec)
}

// EncodeToBytes encodes and returns the result as bytes
func EncodeToBytes(rec *Record) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, rec); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Load decodes a record file
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var rec Record
	md, err := toml.Decode(string(data), &rec)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
	}
	if rec.Variant != Variant {
		return nil, fmt.Errorf("decode %s: unsupported variant %q", path, rec.Variant)
	}
	return &rec, nil
}
