package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/sueca/internal/simulator"
	"github.com/rs/zerolog"
)

// SimulateCmd plays bot-only rounds and compares two strategies
type SimulateCmd struct {
	Rounds    int    `default:"1000" help:"Number of deals to play"`
	TeamA     string `name:"team-a" default:"partner" enum:"${strategies}" help:"Strategy for side A (${enum})"`
	TeamB     string `name:"team-b" default:"random" enum:"${strategies}" help:"Strategy for side B (${enum})"`
	Seed      int64  `default:"0" help:"Base seed (0 picks one from the clock)"`
	Workers   int    `default:"0" help:"Parallel workers (0 = GOMAXPROCS)"`
	Duplicate bool   `default:"true" negatable:"" help:"Replay each deal with the sides swapped"`
	Progress  bool   `default:"true" negatable:"" help:"Show a progress bar on stderr"`
	Debug     bool   `help:"Log every round"`
	JSON      bool   `help:"Emit JSON logs"`
}

func (cmd *SimulateCmd) Run() error {
	logger := setupLogger(cmd.Debug)
	if cmd.JSON {
		logger = setupStructuredLogger(cmd.Debug)
	}

	ctx, cancel := signalContext(func(sig os.Signal) {
		logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down gracefully")
	})
	defer cancel()

	return cmd.run(ctx, logger, os.Stdout)
}

func (cmd *SimulateCmd) run(ctx context.Context, logger zerolog.Logger, out io.Writer) error {
	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := simulator.Config{
		Rounds:    cmd.Rounds,
		Seed:      seed,
		Workers:   cmd.Workers,
		TeamA:     cmd.TeamA,
		TeamB:     cmd.TeamB,
		Duplicate: cmd.Duplicate,
		Logger:    logger,
	}

	var progress *progressBar
	if cmd.Progress {
		progress = newProgressBar(os.Stderr)
		cfg.Progress = progress.Update
	}

	start := time.Now()
	sim := simulator.New(cfg)
	stats, err := sim.Run(ctx)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seed: %d  Duration: %s\n", seed, time.Since(start).Round(time.Millisecond))
	fmt.Fprint(out, stats.Summary(sim.Strategies()))
	return nil
}
