package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/bot"
	"github.com/lox/sueca/internal/config"
	"github.com/lox/sueca/internal/console"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/history"
	"github.com/lox/sueca/internal/pacer"
	"github.com/lox/sueca/internal/randutil"
	"github.com/lox/sueca/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd starts an interactive session. Flags override the config file.
type PlayCmd struct {
	Config       string `short:"c" default:"${config_file}" help:"Path to HCL config file"`
	Seed         int64  `help:"Deal seed for a reproducible session (0 uses the config, then the clock)"`
	Bots         string `help:"Strategy for every bot (${strategies})"`
	Delay        string `help:"Pause before each bot play, e.g. 300ms or 0s"`
	Console      bool   `help:"Use the line-based console instead of the full-screen TUI"`
	Color        string `help:"Colour output: auto, always or never"`
	ShowBotHands bool   `help:"Reveal the bots' cards"`
	Record       bool   `help:"Write each finished round to the history dir"`
	HistoryDir   string `help:"Directory for round records"`
	LogFile      string `help:"Session log file"`
	LogLevel     string `help:"Log level: debug, info, warn or error"`
}

// apply copies any flags that were set onto cfg
func (cmd *PlayCmd) apply(cfg *config.Config) {
	if cmd.Seed != 0 {
		cfg.Table.Seed = cmd.Seed
	}
	if cmd.Bots != "" {
		cfg.SetAllStrategies(cmd.Bots)
	}
	if cmd.Delay != "" {
		cfg.Table.BotDelay = cmd.Delay
	}
	if cmd.Console {
		cfg.UI.FrontEnd = config.FrontEndConsole
	}
	if cmd.Color != "" {
		cfg.UI.Color = cmd.Color
	}
	if cmd.ShowBotHands {
		cfg.UI.ShowBotHands = true
	}
	if cmd.Record {
		cfg.History.Enabled = true
	}
	if cmd.HistoryDir != "" {
		cfg.History.Dir = cmd.HistoryDir
	}
	if cmd.LogFile != "" {
		cfg.UI.LogFile = cmd.LogFile
	}
	if cmd.LogLevel != "" {
		cfg.UI.LogLevel = cmd.LogLevel
	}
}

func (cmd *PlayCmd) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	cmd.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := openGameLog(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	color := setColorProfile(cfg.UI.Color)

	engine, names, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		players := [game.NumSeats]string{cfg.Player.Name}
		for _, seat := range game.Seats()[1:] {
			players[seat] = names[seat]
		}
		engine.EventBus().Subscribe(history.NewRecorder(cfg.History.Dir, logger, history.WithPlayers(players)))
	}

	delay, _ := cfg.BotDelay()
	p := pacer.New(nil, delay)

	logger.Info("Starting session",
		"front_end", cfg.UI.FrontEnd,
		"seed", cfg.Table.Seed,
		"delay", p.Delay(),
		"history", cfg.History.Enabled)

	switch cfg.UI.FrontEnd {
	case config.FrontEndConsole:
		fmt.Println(titleStyle.Render(" ♠ ♥ Sueca ♦ ♣ "))
		fmt.Println()

		c, err := console.New(engine, logger, console.Options{
			Pacer:        p,
			Names:        names,
			Color:        color,
			HistoryFile:  filepath.Join(os.TempDir(), "sueca_history"),
			ShowBotHands: cfg.UI.ShowBotHands,
		})
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		ctx, cancel := signalContext(func(sig os.Signal) {
			logger.Info("Received signal, shutting down", "signal", sig)
		})
		defer cancel()
		return c.Run(ctx)

	default:
		return tui.Run(engine, logger, tui.Options{
			Pacer:        p,
			Names:        names,
			ShowBotHands: cfg.UI.ShowBotHands,
		})
	}
}

// newEngine builds an engine with the configured bots and returns the bot
// display names.
func newEngine(cfg *config.Config, logger *log.Logger) (*game.Engine, map[game.Seat]string, error) {
	seed := cfg.Table.Seed
	rng := randutil.Seeded(seed)
	var botRng randutil.Source = randutil.NewFromTime()
	if seed != 0 {
		botRng = randutil.New(^seed)
	}

	strategies := cfg.Strategies()
	names := make(map[game.Seat]string, game.NumSeats-1)
	var opts []game.EngineOption
	for _, seat := range game.Seats() {
		if seat == game.HumanSeat {
			continue
		}
		strategy, ok := strategies[seat]
		if !ok {
			strategy = bot.DefaultStrategy
		}
		policy, err := bot.New(strategy, botRng, logger)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, game.WithPolicy(seat, policy))
		names[seat] = fmt.Sprintf("%s (%s)", seat, strategy)
	}

	return game.NewEngine(rng, logger, opts...), names, nil
}
