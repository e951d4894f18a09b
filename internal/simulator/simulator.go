// Package simulator plays many bot-only rounds in parallel and compares two
// strategies.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/bot"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/randutil"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds    int
	Seed      int64
	Workers   int    // 0 uses GOMAXPROCS
	TeamA     string // strategy for side A
	TeamB     string // strategy for side B
	Duplicate bool   // replay every deal with the sides swapped
	Logger    zerolog.Logger

	// GameLogger receives engine and bot logs; nil discards them
	GameLogger *log.Logger
	// Progress is called after each finished round, possibly concurrently
	Progress func(done, total int)
}

// Simulator runs bot-only Sueca rounds
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.TeamA == "" {
		config.TeamA = bot.DefaultStrategy
	}
	if config.TeamB == "" {
		config.TeamB = bot.DefaultStrategy
	}
	if config.GameLogger == nil {
		config.GameLogger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	return &Simulator{config: config}
}

// Strategies returns the strategy names for side A and side B
func (s *Simulator) Strategies() [2]string {
	return [2]string{s.config.TeamA, s.config.TeamB}
}

// Total returns the number of rounds Run will play
func (s *Simulator) Total() int {
	if s.config.Duplicate {
		return 2 * s.config.Rounds
	}
	return s.config.Rounds
}

// Run plays every round and returns the validated statistics
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	for _, name := range s.Strategies() {
		if !bot.IsStrategy(name) {
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}

	total := s.Total()
	s.config.Logger.Info().
		Int("rounds", total).
		Int("workers", s.config.Workers).
		Str("team_a", s.config.TeamA).
		Str("team_b", s.config.TeamB).
		Bool("duplicate", s.config.Duplicate).
		Int64("seed", s.config.Seed).
		Msg("Starting simulation")

	results := make([]RoundResult, total)
	done := make(chan struct{}, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	reported := make(chan struct{})
	go func() {
		defer close(reported)
		finished := 0
		for range done {
			finished++
			if s.config.Progress != nil {
				s.config.Progress(finished, total)
			}
		}
	}()

	for i := range total {
		seed := s.config.Seed + int64(i)
		swapped := false
		if s.config.Duplicate {
			seed = s.config.Seed + int64(i/2)
			swapped = i%2 == 1
		}

		g.Go(func() error {
			result, err := s.playRound(ctx, seed, swapped)
			if err != nil {
				return fmt.Errorf("round with seed %d: %w", seed, err)
			}
			results[i] = result
			done <- struct{}{}
			return nil
		})
	}

	err := g.Wait()
	close(done)
	<-reported
	if err != nil {
		return nil, err
	}

	stats := &Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info().
		Int("rounds", stats.Rounds).
		Int("wins_a", stats.Sides[SideA].Wins).
		Int("wins_b", stats.Sides[SideB].Wins).
		Int("draws", stats.Draws).
		Float64("margin", stats.MeanMargin()).
		Msg("Simulation complete")

	return stats, nil
}

// playRound deals the round for seed and plays it out. Deals depend only on
// the seed, so a swapped round replays the same cards with the sides
// exchanged.
func (s *Simulator) playRound(ctx context.Context, seed int64, swapped bool) (RoundResult, error) {
	botRng := randutil.New(^seed)
	policyA, err := bot.New(s.config.TeamA, botRng, s.config.GameLogger)
	if err != nil {
		return RoundResult{}, err
	}
	policyB, err := bot.New(s.config.TeamB, botRng, s.config.GameLogger)
	if err != nil {
		return RoundResult{}, err
	}

	sideOf := func(p game.Partnership) Side {
		side := Side(p)
		if swapped {
			side = 1 - side
		}
		return side
	}

	opts := []game.EngineOption{
		game.WithRoundIDs(func() string { return fmt.Sprintf("sim-%d-%t", seed, swapped) }),
	}
	for _, seat := range game.Seats() {
		policy := policyA
		if sideOf(seat.Partnership()) == SideB {
			policy = policyB
		}
		opts = append(opts, game.WithPolicy(seat, policy))
	}

	engine := game.NewEngine(randutil.New(seed), s.config.GameLogger, opts...)
	outcome, err := engine.Run(ctx)
	if err != nil {
		return RoundResult{}, err
	}

	result := RoundResult{
		Seed:    seed,
		Swapped: swapped,
		Draw:    outcome.IsDraw(),
		Points:  outcome.GamePoints(),
	}
	for _, team := range []game.Partnership{game.TeamA, game.TeamB} {
		result.Scores[sideOf(team)] = outcome.Scores[team]
	}
	if team, ok := outcome.Winner(); ok {
		result.Winner = sideOf(team)
	}

	s.config.Logger.Debug().
		Int64("seed", seed).
		Bool("swapped", swapped).
		Int("side_a", result.Scores[SideA]).
		Int("side_b", result.Scores[SideB]).
		Msg("Round complete")

	return result, nil
}
