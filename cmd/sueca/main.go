package main

import (
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lox/sueca/internal/bot"
	"github.com/lox/sueca/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play Sueca against three bots (default)"`
	Simulate SimulateCmd      `cmd:"" help:"Pit two bot strategies against each other"`
	History  HistoryCmd       `cmd:"" help:"Work with recorded rounds"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sueca"),
		kong.Description("The Portuguese trick-taking card game: you and Player 3 against Players 2 and 4"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"strategies":  strings.Join(bot.Strategies(), ","),
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
