package game

import "fmt"

// Result is the final verdict of a round
type Result int

const (
	ResultTeamA Result = iota
	ResultTeamB
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultTeamA:
		return "Team A wins"
	case ResultTeamB:
		return "Team B wins"
	case ResultDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// Outcome holds final partnership scores and the verdict
type Outcome struct {
	Scores [2]int // indexed by Partnership
	Result Result
}

// NewOutcome compares the partnership scores. The higher total wins; equal
// totals are a draw.
func NewOutcome(scores [2]int) Outcome {
	o := Outcome{Scores: scores, Result: ResultDraw}
	switch {
	case scores[TeamA] > scores[TeamB]:
		o.Result = ResultTeamA
	case scores[TeamB] > scores[TeamA]:
		o.Result = ResultTeamB
	}
	return o
}

// Winner returns the winning partnership, and false for a draw
func (o Outcome) Winner() (Partnership, bool) {
	switch o.Result {
	case ResultTeamA:
		return TeamA, true
	case ResultTeamB:
		return TeamB, true
	default:
		return 0, false
	}
}

// IsDraw reports whether both partnerships finished level
func (o Outcome) IsDraw() bool {
	return o.Result == ResultDraw
}

// GamePoints returns the conventional game tally earned by the winner:
// 1 for 61-90 points, 2 for 91-119, 4 for all 120. A draw earns nothing.
func (o Outcome) GamePoints() int {
	team, ok := o.Winner()
	if !ok {
		return 0
	}
	switch score := o.Scores[team]; {
	case score == TotalPoints:
		return 4
	case score > 90:
		return 2
	default:
		return 1
	}
}

// String renders the outcome as a summary line
func (o Outcome) String() string {
	return fmt.Sprintf("%s (%d-%d)", o.Result, o.Scores[TeamA], o.Scores[TeamB])
}
