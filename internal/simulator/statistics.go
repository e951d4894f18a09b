package simulator

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/sueca/internal/game"
)

// Side identifies which strategy a result is scored for. The two sides map
// onto partnerships, swapped on duplicate rounds.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// RoundResult is the outcome of one simulated round from the sides' view
type RoundResult struct {
	Seed    int64
	Swapped bool   // side A held seats 2 and 4
	Scores  [2]int // indexed by Side
	Draw    bool
	Winner  Side
	Points  int // game points earned by the winner
}

// SideStats accumulates results for one strategy
type SideStats struct {
	Wins       int
	Points     int
	GamePoints int
	Sweeps     int // rounds taking all 120 points
}

// Statistics tracks simulation results for both sides
type Statistics struct {
	Rounds int
	Draws  int
	Sides  [2]SideStats

	// point margin of side A over side B
	SumMargin  float64
	SumMargin2 float64
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(r RoundResult) {
	s.Rounds++
	for side := range s.Sides {
		s.Sides[side].Points += r.Scores[side]
		if r.Scores[side] == game.TotalPoints {
			s.Sides[side].Sweeps++
		}
	}
	if r.Draw {
		s.Draws++
	} else {
		s.Sides[r.Winner].Wins++
		s.Sides[r.Winner].GamePoints += r.Points
	}

	margin := float64(r.Scores[SideA] - r.Scores[SideB])
	s.SumMargin += margin
	s.SumMargin2 += margin * margin
}

// WinRate returns the fraction of rounds won by side
func (s *Statistics) WinRate(side Side) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Sides[side].Wins) / float64(s.Rounds)
}

// AveragePoints returns the mean card points per round for side
func (s *Statistics) AveragePoints(side Side) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Sides[side].Points) / float64(s.Rounds)
}

// MeanMargin returns the mean point margin of side A over side B
func (s *Statistics) MeanMargin() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Rounds)
}

// Variance returns the sample variance of the margin
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.MeanMargin()
	return (s.SumMargin2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdError returns the standard error of the mean margin
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return math.Sqrt(s.Variance()) / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean margin
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.MeanMargin()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Validate checks that every round was accounted for and every card point
// was scored.
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if got := s.Sides[SideA].Wins + s.Sides[SideB].Wins + s.Draws; got != s.Rounds {
		return fmt.Errorf("wins and draws (%d) do not match rounds (%d)", got, s.Rounds)
	}

	want := game.TotalPoints * s.Rounds
	if got := s.Sides[SideA].Points + s.Sides[SideB].Points; got != want {
		return fmt.Errorf("points ledger mismatch: scored %d, dealt %d", got, want)
	}

	return nil
}

// Summary renders a plain-text report
func (s *Statistics) Summary(strategies [2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rounds: %d  Draws: %d\n", s.Rounds, s.Draws)
	for _, side := range []Side{SideA, SideB} {
		st := s.Sides[side]
		fmt.Fprintf(&b, "Side %s (%s): %d wins (%.1f%%), %.1f points/round, %d game points, %d sweeps\n",
			side, strategies[side], st.Wins, 100*s.WinRate(side), s.AveragePoints(side), st.GamePoints, st.Sweeps)
	}
	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(&b, "Margin A-B: %+.2f points/round (95%% CI %+.2f to %+.2f)\n", s.MeanMargin(), lo, hi)
	return b.String()
}
