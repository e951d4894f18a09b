package tui

import (
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/bot"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestModel(t *testing.T, seed int64) (*TUIModel, *game.Engine) {
	t.Helper()
	logger := quietLogger()
	rounds := 0
	engine := game.NewEngine(randutil.New(seed), logger,
		game.WithBots(bot.NewGreedy(logger)),
		game.WithRoundIDs(func() string {
			rounds++
			return fmt.Sprintf("r-%d", rounds)
		}))
	return NewTUIModel(engine, logger, Options{TestMode: true}), engine
}

// drive runs cmd and feeds its messages back into the model until nothing is
// left to do.
func drive(t *testing.T, m *TUIModel, cmd tea.Cmd) {
	t.Helper()
	for steps := 0; cmd != nil; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		switch msg := cmd().(type) {
		case nil, tea.QuitMsg:
			return
		case tea.BatchMsg:
			for _, c := range msg {
				drive(t, m, c)
			}
			return
		default:
			_, cmd = m.Update(msg)
		}
	}
}

func notHeld(hand []deck.Card) deck.Card {
	for _, c := range deck.Build() {
		if !deck.Contains(hand, c) {
			return c
		}
	}
	panic("hand holds the whole deck")
}

func TestTUIPlaysFullRound(t *testing.T) {
	t.Parallel()
	m, engine := newTestModel(t, 11)

	drive(t, m, func() tea.Msg { return newRoundMsg{} })
	require.True(t, engine.HasRound())
	assert.Equal(t, game.HumanSeat, engine.CurrentSeat(), "the trump holder leads")

	for plays := 0; ; plays++ {
		if _, done := engine.Outcome(); done {
			break
		}
		require.Less(t, plays, game.HandSize, "human played more than a hand")
		legal := engine.LegalPlays(game.HumanSeat)
		require.NotEmpty(t, legal, "control returned to the human off turn")
		drive(t, m, m.HandleInput(strings.ToLower(legal[0].Code())))
		assert.Empty(t, m.Status())
	}

	joined := strings.Join(m.GetCapturedLog(), "\n")
	assert.Contains(t, joined, "Round r-1")
	assert.Contains(t, joined, "You play ")
	assert.Contains(t, joined, "Player 2 plays ")
	assert.Contains(t, joined, "Trick 10: ")
	assert.Contains(t, joined, "=== Round r-1 Complete ===")
	assert.Len(t, engine.Tricks(), game.TricksPerRound)

	// Enter on a finished round deals again
	drive(t, m, m.HandleInput(""))
	assert.Equal(t, 2, engine.RoundsPlayed())
	assert.True(t, strings.HasPrefix(m.GetCapturedLog()[0], "Round r-2\n"), "log restarts with the new deal")
}

func TestTUIRejectsBadInput(t *testing.T) {
	t.Parallel()
	m, engine := newTestModel(t, 5)
	drive(t, m, m.HandleInput("new"))
	before := engine.Snapshot()

	assert.Nil(t, m.HandleInput("zz"))
	assert.Contains(t, m.Status(), `Unknown card "zz"`)

	missing := notHeld(before.Hand(game.HumanSeat))
	assert.Nil(t, m.HandleInput(missing.Code()))
	assert.Equal(t, missing.String()+" is not in your hand", m.Status())
	assert.Equal(t, before, engine.Snapshot(), "rejected plays leave the round unchanged")

	// play without running the bot command so the turn stays with Player 2
	card := engine.LegalPlays(game.HumanSeat)[0]
	pending := m.HandleInput(card.Code())
	require.NotNil(t, pending)
	assert.True(t, engine.AwaitingAutomated())

	other := engine.Snapshot().Hand(game.HumanSeat)[0]
	assert.Nil(t, m.HandleInput(other.Code()))
	assert.Equal(t, "Not your turn, waiting for Player 2", m.Status())

	// dealing again makes the pending bot turn stale
	assert.Nil(t, m.HandleInput("new"), "the human leads every round")
	fresh := engine.Snapshot()
	drive(t, m, pending)
	assert.Equal(t, fresh, engine.Snapshot(), "stale bot turn is ignored")
}

func TestTUICommands(t *testing.T) {
	t.Parallel()
	m, engine := newTestModel(t, 9)

	assert.Nil(t, m.HandleInput("legal"))
	assert.Equal(t, "You have no card to play right now", m.Status())

	drive(t, m, m.HandleInput("n"))
	assert.Nil(t, m.HandleInput("l"))
	assert.True(t, strings.HasPrefix(m.Status(), "Legal: "))
	assert.Len(t, strings.Fields(strings.TrimPrefix(m.Status(), "Legal: ")), len(engine.LegalPlays(game.HumanSeat)))

	assert.Nil(t, m.HandleInput("help"))
	assert.Contains(t, strings.Join(m.GetCapturedLog(), "\n"), "You must follow the leading suit")

	cmd := m.HandleInput("quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestTUIView(t *testing.T) {
	t.Parallel()
	m, engine := newTestModel(t, 3)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drive(t, m, m.HandleInput("new"))

	view := m.View()
	state := engine.Snapshot()
	assert.Contains(t, view, "Round r-1")
	assert.Contains(t, view, "Trump: ")
	assert.Contains(t, view, state.Trump.Name())
	assert.Contains(t, view, "Hand: ")
	assert.Contains(t, view, "Your turn")
	assert.Contains(t, view, "Team A: 0  Team B: 0")
	assert.Contains(t, view, "Player 3 (Team A): 10")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Log focused")
}

func TestTUIProductionModeDoesNotCapture(t *testing.T) {
	t.Parallel()
	logger := quietLogger()
	engine := game.NewEngine(randutil.New(1), logger, game.WithBots(game.FirstLegal))
	m := NewTUIModel(engine, logger, Options{})

	m.AddLogEntry("entry")
	assert.Nil(t, m.GetCapturedLog())
}
