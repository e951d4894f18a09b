package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// NumSuits is the number of suits in the deck
const NumSuits = 4

// Suits returns all suits in deck order
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// String returns the glyph for a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the English name of the suit
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Letter returns the single ASCII letter used for input and history files
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

// Rank represents a card rank. Constants are declared weakest first, so a
// numerically greater rank always wins within the same suit.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Queen
	Jack
	King
	Seven
	Ace
)

// NumRanks is the number of ranks per suit
const NumRanks = 10

// Ranks returns all ranks from strongest to weakest
func Ranks() []Rank {
	return []Rank{Ace, Seven, King, Jack, Queen, Six, Five, Four, Three, Two}
}

// String returns the short form of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Queen:
		return "Q"
	case Jack:
		return "J"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Name returns the long form of a rank, as shown in trick announcements
func (r Rank) Name() string {
	switch r {
	case Queen:
		return "Queen"
	case Jack:
		return "Jack"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		return r.String()
	}
}

// Points returns the trick value of the rank
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Seven:
		return 10
	case King:
		return 4
	case Jack:
		return 3
	case Queen:
		return 2
	default:
		return 0
	}
}

// Beats reports whether r is stronger than other
func (r Rank) Beats(other Rank) bool {
	return r > other
}

// Valid reports whether r is one of the ten ranks
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card. Cards are plain values and compare with ==.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the ASCII form of a card (e.g., "AS")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Name returns the long form of a card (e.g., "Ace of Spades")
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Suit.Name())
}

// Points returns the trick value of the card
func (c Card) Points() int {
	return c.Rank.Points()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether the card belongs to the 40-card deck
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// TotalPoints sums the trick value of cards
func TotalPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
