package deck

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseCard parses a card typed by a player. Rank and suit may come in either
// order and are case-insensitive; suits may be letters or glyphs.
//
//	"SA", "as", "7h", "♠K", "q♦"
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	first, size := utf8.DecodeRuneInString(s)
	second, rest := utf8.DecodeRuneInString(s[size:])
	if size+rest != len(s) {
		return Card{}, fmt.Errorf("invalid card string: %s", s)
	}

	if rank, ok := parseRank(first); ok {
		if suit, ok := parseSuit(second); ok {
			return NewCard(suit, rank), nil
		}
		return Card{}, fmt.Errorf("invalid suit in %q", s)
	}
	if suit, ok := parseSuit(first); ok {
		if rank, ok := parseRank(second); ok {
			return NewCard(suit, rank), nil
		}
		return Card{}, fmt.Errorf("invalid rank in %q", s)
	}
	return Card{}, fmt.Errorf("invalid card string: %s", s)
}

// ParseCards parses a whitespace or comma separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for i, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(r rune) (Rank, bool) {
	switch r {
	case 'A':
		return Ace, true
	case '7':
		return Seven, true
	case 'K':
		return King, true
	case 'J':
		return Jack, true
	case 'Q':
		return Queen, true
	case '6':
		return Six, true
	case '5':
		return Five, true
	case '4':
		return Four, true
	case '3':
		return Three, true
	case '2':
		return Two, true
	}
	return 0, false
}

func parseSuit(r rune) (Suit, bool) {
	switch r {
	case 'H', '♥', '♡':
		return Hearts, true
	case 'D', '♦', '♢':
		return Diamonds, true
	case 'C', '♣', '♧':
		return Clubs, true
	case 'S', '♠', '♤':
		return Spades, true
	}
	return 0, false
}
