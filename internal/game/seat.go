package game

import "fmt"

// Seat identifies one of the four players, in fixed seating order.
type Seat int

const (
	Seat1 Seat = iota
	Seat2
	Seat3
	Seat4
)

const (
	// NumSeats is the number of players at the table
	NumSeats = 4
	// HandSize is the number of cards dealt to each seat
	HandSize = 10
	// TricksPerRound is the number of tricks in a round, one per card in hand
	TricksPerRound = HandSize
	// TotalPoints is the sum of card points in the deck
	TotalPoints = 120
)

// HumanSeat is the seat driven by the interactive player. It always receives
// the trump card.
const HumanSeat = Seat1

// Seats returns all seats in play order starting from Seat1
func Seats() []Seat {
	return []Seat{Seat1, Seat2, Seat3, Seat4}
}

// String returns the display name of the seat ("Player 1".."Player 4")
func (s Seat) String() string {
	return fmt.Sprintf("Player %d", int(s)+1)
}

// Next returns the seat that plays after s
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Partnership returns the team the seat belongs to
func (s Seat) Partnership() Partnership {
	if s%2 == 0 {
		return TeamA
	}
	return TeamB
}

// Partner returns the seat across the table
func (s Seat) Partner() Seat {
	return (s + 2) % NumSeats
}

// Valid reports whether s is one of the four seats
func (s Seat) Valid() bool {
	return s >= Seat1 && s <= Seat4
}

// Partnership is one of the two fixed two-seat teams.
type Partnership int

const (
	TeamA Partnership = iota // Seat1 and Seat3
	TeamB                    // Seat2 and Seat4
)

// String returns the display name of the team
func (p Partnership) String() string {
	switch p {
	case TeamA:
		return "Team A"
	case TeamB:
		return "Team B"
	default:
		return "Unknown"
	}
}

// Seats returns the two seats of the partnership
func (p Partnership) Seats() [2]Seat {
	if p == TeamA {
		return [2]Seat{Seat1, Seat3}
	}
	return [2]Seat{Seat2, Seat4}
}

// Opponent returns the other partnership
func (p Partnership) Opponent() Partnership {
	return 1 - p
}
