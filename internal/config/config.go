// Package config loads sueca settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/sueca/internal/bot"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/pacer"
)

// DefaultFile is the config file read when none is given
const DefaultFile = "sueca.hcl"

// Front ends accepted by ui.front_end
const (
	FrontEndTUI     = "tui"
	FrontEndConsole = "console"
)

// Config represents the complete sueca configuration
type Config struct {
	Player  *PlayerSettings  `hcl:"player,block"`
	Bots    []BotSettings    `hcl:"bot,block"`
	Table   *TableSettings   `hcl:"table,block"`
	UI      *UISettings      `hcl:"ui,block"`
	History *HistorySettings `hcl:"history,block"`
}

// PlayerSettings contains settings for the human seat
type PlayerSettings struct {
	Name string `hcl:"name,optional"`
}

// BotSettings configures the automated seat named by its label ("2".."4")
type BotSettings struct {
	Seat     string `hcl:"seat,label"`
	Strategy string `hcl:"strategy,optional"`
}

// TableSettings contains dealing and pacing settings
type TableSettings struct {
	Seed     int64  `hcl:"seed,optional"`      // 0 seeds from the clock
	BotDelay string `hcl:"bot_delay,optional"` // Go duration, e.g. "600ms"
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel     string `hcl:"log_level,optional"`
	LogFile      string `hcl:"log_file,optional"`
	FrontEnd     string `hcl:"front_end,optional"`
	Color        string `hcl:"color,optional"`
	ShowBotHands bool   `hcl:"show_bot_hands,optional"`
}

// HistorySettings controls round record export
type HistorySettings struct {
	Enabled bool   `hcl:"enabled,optional"`
	Dir     string `hcl:"dir,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Player: &PlayerSettings{
			Name: "You",
		},
		Bots: []BotSettings{
			{Seat: "2", Strategy: bot.DefaultStrategy},
			{Seat: "3", Strategy: bot.DefaultStrategy},
			{Seat: "4", Strategy: bot.DefaultStrategy},
		},
		Table: &TableSettings{
			Seed:     0,
			BotDelay: pacer.DefaultDelay.String(),
		},
		UI: &UISettings{
			LogLevel: "info",
			LogFile:  "sueca.log",
			FrontEnd: FrontEndTUI,
			Color:    "auto",
		},
		History: &HistorySettings{
			Enabled: false,
			Dir:     "rounds",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for anything omitted
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Player == nil {
		c.Player = defaults.Player
	}
	if c.Player.Name == "" {
		c.Player.Name = defaults.Player.Name
	}

	// seats without a bot block keep the default strategy
	configured := make(map[string]bool, len(c.Bots))
	for i := range c.Bots {
		if c.Bots[i].Strategy == "" {
			c.Bots[i].Strategy = bot.DefaultStrategy
		}
		configured[c.Bots[i].Seat] = true
	}
	for _, b := range defaults.Bots {
		if !configured[b.Seat] {
			c.Bots = append(c.Bots, b)
		}
	}

	if c.Table == nil {
		c.Table = defaults.Table
	}
	if c.Table.BotDelay == "" {
		c.Table.BotDelay = defaults.Table.BotDelay
	}

	if c.UI == nil {
		c.UI = defaults.UI
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.FrontEnd == "" {
		c.UI.FrontEnd = defaults.UI.FrontEnd
	}
	if c.UI.Color == "" {
		c.UI.Color = defaults.UI.Color
	}

	if c.History == nil {
		c.History = defaults.History
	}
	if c.History.Dir == "" {
		c.History.Dir = defaults.History.Dir
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Player.Name == "" {
		return fmt.Errorf("player name is required")
	}

	seen := make(map[game.Seat]bool, len(c.Bots))
	for _, b := range c.Bots {
		seat, err := ParseSeat(b.Seat)
		if err != nil {
			return err
		}
		if seen[seat] {
			return fmt.Errorf("bot %q configured twice", b.Seat)
		}
		seen[seat] = true
		if !bot.IsStrategy(b.Strategy) {
			return fmt.Errorf("bot %q: unknown strategy %q", b.Seat, b.Strategy)
		}
	}

	delay, err := c.BotDelay()
	if err != nil {
		return err
	}
	if delay < 0 {
		return fmt.Errorf("bot delay cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	switch c.UI.FrontEnd {
	case FrontEndTUI, FrontEndConsole:
	default:
		return fmt.Errorf("invalid front end: %s", c.UI.FrontEnd)
	}

	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode: %s", c.UI.Color)
	}

	if c.History.Enabled && c.History.Dir == "" {
		return fmt.Errorf("history dir is required when history is enabled")
	}

	return nil
}

// ParseSeat converts a bot block label into a seat. Only the automated seats
// 2, 3 and 4 are accepted.
func ParseSeat(label string) (game.Seat, error) {
	n, err := strconv.Atoi(label)
	if err != nil || n < 2 || n > game.NumSeats {
		return 0, fmt.Errorf("invalid bot seat %q: must be 2, 3 or 4", label)
	}
	return game.Seat(n - 1), nil
}

// BotDelay returns the parsed pause before each bot play
func (c *Config) BotDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Table.BotDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid bot delay %q: %w", c.Table.BotDelay, err)
	}
	return d, nil
}

// Strategies returns the configured strategy for each automated seat
func (c *Config) Strategies() map[game.Seat]string {
	out := make(map[game.Seat]string, game.NumSeats-1)
	for _, b := range c.Bots {
		if seat, err := ParseSeat(b.Seat); err == nil {
			out[seat] = b.Strategy
		}
	}
	return out
}

// SetAllStrategies points every automated seat at strategy
func (c *Config) SetAllStrategies(strategy string) {
	for i := range c.Bots {
		c.Bots[i].Strategy = strategy
	}
}
