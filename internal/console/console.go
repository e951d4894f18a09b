// Package console is a line-oriented front end for Sueca built on readline.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/pacer"
)

// LineReader reads player input. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Command represents a console command
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	// Handler returns false when the session should end
	Handler func(args []string) (bool, error)
	// Play marks commands that hand the turn back to the game loop
	Play bool
}

// Styles contains styling for the console
type Styles struct {
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Trump     lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
}

// DefaultStyles returns the console colour scheme
func DefaultStyles() *Styles {
	return &Styles{
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Trump:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		RedCard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: lipgloss.NewStyle().Bold(true),
	}
}

// Options configures a Console
type Options struct {
	Pacer        *pacer.Pacer
	Names        map[game.Seat]string
	Color        bool   // ANSI colours in event lines
	HistoryFile  string // readline history, empty disables
	ShowBotHands bool
}

// Console plays rounds against the engine's bots over a terminal
type Console struct {
	engine    *game.Engine
	pacer     *pacer.Pacer
	formatter *game.EventFormatter
	logger    *log.Logger
	out       io.Writer
	rl        LineReader
	commands  map[string]*Command
	styles    *Styles
	opts      Options
}

// New creates a console reading from a readline instance on stdin
func New(engine *game.Engine, logger *log.Logger, opts Options) (*Console, error) {
	c := newConsole(engine, logger, opts, nil)

	completer := readline.NewPrefixCompleter()
	for _, name := range c.commandNames() {
		completer.Children = append(completer.Children, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.styles.Prompt.Render("Sueca> "),
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start readline: %w", err)
	}
	c.rl = rl
	c.out = rl.Stdout()
	return c, nil
}

// NewWithReader creates a console with the given input and output, for
// scripted sessions and tests.
func NewWithReader(engine *game.Engine, logger *log.Logger, opts Options, rl LineReader, out io.Writer) *Console {
	c := newConsole(engine, logger, opts, rl)
	c.out = out
	return c
}

func newConsole(engine *game.Engine, logger *log.Logger, opts Options, rl LineReader) *Console {
	if opts.Pacer == nil {
		opts.Pacer = pacer.New(nil, 0)
	}
	formatting := game.HumanPerspective()
	formatting.Names = opts.Names
	formatting.Color = opts.Color
	formatting.ShowHands = true

	c := &Console{
		engine:    engine,
		pacer:     opts.Pacer,
		formatter: game.NewEventFormatter(formatting),
		logger:    logger.WithPrefix("console"),
		rl:        rl,
		styles:    DefaultStyles(),
		opts:      opts,
	}
	c.initCommands()
	engine.EventBus().Subscribe(game.SubscriberFunc(c.onEvent))
	return c
}

// Close closes the line reader
func (c *Console) Close() error {
	return c.rl.Close()
}

func (c *Console) initCommands() {
	c.commands = map[string]*Command{
		"play": {
			Name:        "play",
			Aliases:     []string{"p"},
			Usage:       "play <card>",
			Description: "Play a card, e.g. 'play AS' or just 'AS'",
			Handler:     c.handlePlay,
			Play:        true,
		},
		"hand": {
			Name:        "hand",
			Aliases:     []string{"h", "cards"},
			Description: "Show your hand grouped by suit, trumps first",
			Handler:     c.handleShowHand,
		},
		"legal": {
			Name:        "legal",
			Aliases:     []string{"l"},
			Description: "List the cards you may play",
			Handler:     c.handleLegal,
		},
		"trick": {
			Name:        "trick",
			Aliases:     []string{"t"},
			Description: "Show the trick in progress",
			Handler:     c.handleTrick,
		},
		"score": {
			Name:        "score",
			Aliases:     []string{"s"},
			Description: "Show the partnership scores",
			Handler:     c.handleScore,
		},
		"new": {
			Name:        "new",
			Aliases:     []string{"n", "deal"},
			Description: "Abandon this round and deal a new one",
			Handler:     c.handleNew,
			Play:        true,
		},
		"help": {
			Name:        "help",
			Aliases:     []string{"?"},
			Description: "Show available commands",
			Handler:     c.handleHelp,
		},
		"quit": {
			Name:        "quit",
			Aliases:     []string{"q", "exit"},
			Description: "Quit the game",
			Handler:     c.handleQuit,
		},
	}

	for _, cmd := range uniqueCommands(c.commands) {
		for _, alias := range cmd.Aliases {
			c.commands[alias] = cmd
		}
	}
}

// uniqueCommands returns the distinct commands sorted by name
func uniqueCommands(commands map[string]*Command) []*Command {
	seen := make(map[*Command]bool)
	var list []*Command
	for _, cmd := range commands {
		if !seen[cmd] {
			seen[cmd] = true
			list = append(list, cmd)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (c *Console) commandNames() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run deals a round and plays until the player quits, input ends or ctx is
// cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.println(c.styles.Success.Render("=== Sueca ==="))
	c.println(c.styles.Info.Render("You and Player 3 play against Players 2 and 4. Type 'help' for commands."))

	if err := c.engine.StartRound(); err != nil {
		return fmt.Errorf("failed to deal: %w", err)
	}

	for {
		if err := c.playBots(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		cont, err := c.PromptForAction()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// playBots plays automated seats, pausing before each, until the human is to
// act or the round ends.
func (c *Console) playBots(ctx context.Context) error {
	for c.engine.AwaitingAutomated() {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}
		if _, _, err := c.engine.PlayAutomated(); err != nil {
			return fmt.Errorf("automated play failed: %w", err)
		}
	}
	return nil
}

// PromptForAction reads commands until one plays a card or deals a new round.
// It returns false when the session should end.
func (c *Console) PromptForAction() (bool, error) {
	c.showTurn()

	for {
		c.updatePrompt()

		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			c.println(c.styles.Info.Render("Use 'quit' to exit"))
			continue
		} else if errors.Is(err, io.EOF) {
			return false, nil
		} else if err != nil {
			return false, fmt.Errorf("failed to read input: %w", err)
		}

		cont, acted := c.HandleLine(line)
		if !cont {
			return false, nil
		}
		if acted {
			return true, nil
		}
	}
}

// HandleLine executes one line of input. It reports whether the session
// continues and whether the line changed the game.
func (c *Console) HandleLine(line string) (cont bool, acted bool) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(parts) == 0 {
		if c.roundOver() {
			cont, err := c.handleNew(nil)
			c.printError(err)
			return cont, err == nil
		}
		return true, false
	}

	name, args := parts[0], parts[1:]
	cmd, ok := c.commands[name]
	if !ok {
		// a bare card is shorthand for play
		if _, err := deck.ParseCard(name); err != nil {
			c.println(c.styles.Error.Render(fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", name)))
			return true, false
		}
		cmd, args = c.commands["play"], parts
	}

	cont, err := cmd.Handler(args)
	if err != nil {
		c.printError(err)
		return true, false
	}
	return cont, cont && cmd.Play
}

func (c *Console) roundOver() bool {
	_, done := c.engine.Outcome()
	return done
}

// showTurn prints the hand and what is expected of the player
func (c *Console) showTurn() {
	if c.roundOver() {
		c.println(c.styles.Info.Render("Press Enter or type 'new' to deal again, 'quit' to exit"))
		return
	}

	state := c.engine.Snapshot()
	c.println("")
	c.println("Your hand: " + c.formatHand(state.Hand(game.HumanSeat), state.Trump))
	if state.LeadingSuit == nil {
		c.println(c.styles.Success.Render("Your lead"))
	} else {
		c.println(c.styles.Success.Render(fmt.Sprintf("%s led, trick so far: %s",
			state.LeadingSuit.Name(), c.formatPlays(state.Trick))))
	}
}

// updatePrompt shows trump and scores, e.g. [7♠] 25-10>
func (c *Console) updatePrompt() {
	if !c.engine.HasRound() {
		return
	}
	state := c.engine.Snapshot()
	prompt := fmt.Sprintf("[%s] %d-%d> ", state.TrumpCard, state.Scores[game.TeamA], state.Scores[game.TeamB])
	c.rl.SetPrompt(c.styles.Prompt.Render(prompt))
}

func (c *Console) onEvent(event game.GameEvent) {
	text := c.formatter.Format(event)
	switch e := event.(type) {
	case game.RoundStartEvent:
		c.println("")
		c.println(text)
		if c.opts.ShowBotHands {
			for _, seat := range game.Seats()[1:] {
				c.println(fmt.Sprintf("  %s: %s", c.formatter.SeatName(seat), c.formatHand(e.Snapshot.Hand(seat), e.Snapshot.Trump)))
			}
		}
	case game.CardPlayedEvent:
		if e.Automated {
			c.println("  " + text)
		}
	case game.TrickCompleteEvent:
		c.println(c.styles.Warning.Render(text) + c.styles.Info.Render("  "+c.formatter.FormatScores(e.Snapshot.Scores)))
	default:
		c.println(text)
	}
}

// formatHand renders cards grouped by suit, trump first
func (c *Console) formatHand(hand []deck.Card, trump deck.Suit) string {
	groups := deck.GroupBySuit(hand, trump)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		text := c.formatCards(g.Cards)
		if g.Suit == trump {
			text += c.styles.Trump.Render("*")
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " | ")
}

func (c *Console) formatCards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, c.styles.RedCard.Render(card.String()))
		} else {
			formatted = append(formatted, c.styles.BlackCard.Render(card.String()))
		}
	}
	return strings.Join(formatted, " ")
}

func (c *Console) formatPlays(plays []game.Play) string {
	parts := make([]string, 0, len(plays))
	for _, p := range plays {
		parts = append(parts, fmt.Sprintf("%s %s", c.formatter.SeatName(p.Seat), c.formatCards([]deck.Card{p.Card})))
	}
	return strings.Join(parts, ", ")
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printError(err error) {
	if err != nil {
		c.println(c.styles.Error.Render(err.Error()))
	}
}

// Command handlers

func (c *Console) handlePlay(args []string) (bool, error) {
	if len(args) == 0 {
		return true, fmt.Errorf("specify a card: 'play <card>', e.g. 'play 7h'")
	}
	card, err := deck.ParseCard(args[0])
	if err != nil {
		return true, fmt.Errorf("unknown card %q, try AS, 7h or ♠K", args[0])
	}

	if _, err := c.engine.SubmitPlay(game.HumanSeat, card); err != nil {
		if !game.IsRuleViolation(err) {
			c.logger.Error("Play failed", "card", card, "error", err)
		}
		return true, errors.New(c.formatter.FormatRejection(err, c.engine.Snapshot()))
	}
	return true, nil
}

func (c *Console) handleShowHand(args []string) (bool, error) {
	if !c.engine.HasRound() {
		return true, game.ErrNoRound
	}
	state := c.engine.Snapshot()
	c.println(fmt.Sprintf("Your hand: %s  (trump %s)", c.formatHand(state.Hand(game.HumanSeat), state.Trump), state.Trump.Name()))
	return true, nil
}

func (c *Console) handleLegal(args []string) (bool, error) {
	legal := c.engine.LegalPlays(game.HumanSeat)
	if len(legal) == 0 {
		return true, fmt.Errorf("you have no card to play right now")
	}
	c.println("Legal: " + c.formatCards(deck.SortHand(legal, c.engine.Snapshot().Trump)))
	return true, nil
}

func (c *Console) handleTrick(args []string) (bool, error) {
	state := c.engine.Snapshot()
	switch {
	case len(state.Trick) > 0:
		c.println("Trick: " + c.formatPlays(state.Trick))
	case state.LastTrick != nil:
		c.println("Last trick: " + c.formatter.FormatTrickLine(*state.LastTrick))
	default:
		c.println(c.styles.Info.Render("No cards played yet"))
	}
	return true, nil
}

func (c *Console) handleScore(args []string) (bool, error) {
	state := c.engine.Snapshot()
	c.println(fmt.Sprintf("%s after %d of %d tricks",
		c.formatter.FormatScores(state.Scores), state.TricksPlayed, game.TricksPerRound))
	return true, nil
}

func (c *Console) handleNew(args []string) (bool, error) {
	if err := c.engine.StartRound(); err != nil {
		return true, fmt.Errorf("could not deal: %w", err)
	}
	return true, nil
}

func (c *Console) handleHelp(args []string) (bool, error) {
	c.println("Available commands:")
	for _, cmd := range uniqueCommands(c.commands) {
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		c.println(fmt.Sprintf("  %-12s - %s", usage, cmd.Description))
	}
	c.println(c.styles.Info.Render("Ranks from high to low: A 7 K J Q 6 5 4 3 2. Follow the led suit while you can."))
	return true, nil
}

func (c *Console) handleQuit(args []string) (bool, error) {
	c.println(c.styles.Info.Render("Thanks for playing!"))
	return false, nil
}
