// Package tui is the bubbletea front end for playing Sueca against three bots.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/pacer"
)

// Options configures the TUI model
type Options struct {
	Pacer        *pacer.Pacer         // nil plays bots without delay
	Names        map[game.Seat]string // display names for bot seats
	ShowBotHands bool
	TestMode     bool
}

// TUIModel represents the Bubble Tea model for a Sueca table. Engine calls are
// only made from Update, so the engine never sees concurrent access.
type TUIModel struct {
	engine    *game.Engine
	pacer     *pacer.Pacer
	formatter *game.EventFormatter
	logger    *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	status       string
	statusErr    bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input
	showBotHands bool

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

type newRoundMsg struct{}

// botTurnMsg fires when the pause before an automated play has elapsed
type botTurnMsg struct {
	round string
	err   error
}

// NewTUIModel creates a model driving engine and subscribes it to the
// engine's events.
func NewTUIModel(engine *game.Engine, logger *log.Logger, opts Options) *TUIModel {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter a card (AS, 7h, ♠K), new, help or quit"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusColor).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	p := opts.Pacer
	if p == nil {
		p = pacer.New(nil, 0)
	}

	formatting := game.HumanPerspective()
	formatting.Names = opts.Names

	ctx, cancel := context.WithCancel(context.Background())
	m := &TUIModel{
		engine:       engine,
		pacer:        p,
		formatter:    game.NewEventFormatter(formatting),
		logger:       logger.WithPrefix("tui"),
		ctx:          ctx,
		cancel:       cancel,
		logViewport:  vp,
		actionInput:  ti,
		focusedPane:  1,
		showBotHands: opts.ShowBotHands,
		testMode:     opts.TestMode,
	}
	engine.EventBus().Subscribe(game.SubscriberFunc(m.onEvent))
	return m
}

// Run starts the program on the alternate screen and blocks until it exits
func Run(engine *game.Engine, logger *log.Logger, opts Options) error {
	m := NewTUIModel(engine, logger, opts)
	defer m.cancel()

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// Init deals the first round
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return newRoundMsg{} })
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case newRoundMsg:
		return m, m.startRound()

	case botTurnMsg:
		return m, m.handleBotTurn(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := m.actionInput.Value()
				m.actionInput.SetValue("")
				return m, m.HandleInput(input)
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// HandleInput processes a line typed by the player and returns the command
// to run next, if any.
func (m *TUIModel) HandleInput(input string) tea.Cmd {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		if _, done := m.engine.Outcome(); done || !m.engine.HasRound() {
			return m.startRound()
		}
		return nil
	}

	switch fields[0] {
	case "quit", "q", "exit":
		return m.quit()
	case "new", "n", "deal":
		return m.startRound()
	case "help", "h", "?":
		m.showHelp()
		return nil
	case "legal", "l":
		legal := m.engine.LegalPlays(game.HumanSeat)
		if len(legal) == 0 {
			m.setError("You have no card to play right now")
			return nil
		}
		m.setStatus("Legal: " + m.formatter.FormatCards(deck.SortHand(legal, m.engine.Snapshot().Trump)))
		return nil
	default:
		return m.playCard(fields[0])
	}
}

func (m *TUIModel) playCard(text string) tea.Cmd {
	card, err := deck.ParseCard(text)
	if err != nil {
		m.setError(fmt.Sprintf("Unknown card %q, try AS, 7h or ♠K", text))
		return nil
	}

	if _, err := m.engine.SubmitPlay(game.HumanSeat, card); err != nil {
		if !game.IsRuleViolation(err) {
			m.logger.Error("Play failed", "card", card, "error", err)
		}
		m.setError(m.formatter.FormatRejection(err, m.engine.Snapshot()))
		return nil
	}

	m.setStatus("")
	return m.next()
}

func (m *TUIModel) startRound() tea.Cmd {
	if err := m.engine.StartRound(); err != nil {
		m.logger.Error("Failed to start round", "error", err)
		m.setError(fmt.Sprintf("Could not deal a new round: %v", err))
		return nil
	}
	m.setStatus("")
	return m.next()
}

// next schedules the following bot play, or returns nil when the human is to
// act or the round is over.
func (m *TUIModel) next() tea.Cmd {
	if !m.engine.AwaitingAutomated() {
		return nil
	}
	round := m.engine.Snapshot().RoundID
	p, ctx := m.pacer, m.ctx
	return func() tea.Msg {
		return botTurnMsg{round: round, err: p.Wait(ctx)}
	}
}

func (m *TUIModel) handleBotTurn(msg botTurnMsg) tea.Cmd {
	if msg.err != nil {
		return nil
	}
	// a stale timer from a round that has since been replaced
	if msg.round != m.engine.Snapshot().RoundID || !m.engine.AwaitingAutomated() {
		return nil
	}

	if _, _, err := m.engine.PlayAutomated(); err != nil {
		m.logger.Error("Automated play failed", "round", msg.round, "error", err)
		m.setError(fmt.Sprintf("Bot play failed: %v", err))
		return nil
	}
	return m.next()
}

func (m *TUIModel) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}

func (m *TUIModel) onEvent(event game.GameEvent) {
	text := m.formatter.Format(event)
	switch event.(type) {
	case game.RoundStartEvent:
		m.ClearLog()
		m.AddLogEntry(text)
		m.AddLogEntry("")
	case game.TrickCompleteEvent:
		m.AddLogEntry(text)
		m.AddLogEntry("")
	case game.RoundEndEvent:
		m.AddLogEntry(text)
		m.AddLogEntry("Press Enter or type 'new' to deal again, 'quit' to exit")
	default:
		m.AddLogEntry(text)
	}
}

func (m *TUIModel) showHelp() {
	for _, line := range []string{
		"Commands:",
		"  <card>  play a card: AS, 7h, qd or ♠K (ranks A 7 K J Q 6 5 4 3 2)",
		"  legal   list the cards you may play",
		"  new     deal a new round",
		"  quit    leave the table",
		"You must follow the leading suit while you hold it.",
	} {
		m.AddLogEntry(line)
	}
}

func (m *TUIModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *TUIModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

// Status returns the feedback line shown above the input
func (m *TUIModel) Status() string {
	return m.status
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneColor).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(focusColor)
	}
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneColor).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneColor).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(focusColor)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane shows trump, scores, seats and the trick in progress
func (m *TUIModel) renderSidebarPane() string {
	if !m.engine.HasRound() {
		return InfoStyle.Render("No round in progress")
	}
	state := m.engine.Snapshot()

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(fmt.Sprintf(" Round %s ", state.RoundID)))
	content.WriteString("\n\n")
	content.WriteString(TrumpStyle.Render("Trump: ") + m.renderCard(state.TrumpCard, true))
	content.WriteString(fmt.Sprintf(" %s\n", state.Trump.Name()))
	content.WriteString(fmt.Sprintf("Tricks: %d/%d\n\n", state.TricksPlayed, game.TricksPerRound))

	content.WriteString(WarningStyle.Render(m.formatter.FormatScores(state.Scores)))
	content.WriteString("\n\n")

	for _, seat := range game.Seats() {
		marker := "  "
		if !state.Terminal && state.CurrentSeat == seat {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%s (%s)", marker, m.formatter.SeatName(seat), seat.Partnership())
		if seat != game.HumanSeat {
			line += fmt.Sprintf(": %d", len(state.Hand(seat)))
			if m.showBotHands {
				line += "\n    " + m.renderCards(deck.SortHand(state.Hand(seat), state.Trump), nil)
			}
		}
		content.WriteString(line + "\n")
	}

	content.WriteString("\n" + InfoStyle.Render("Trick:") + "\n")
	trick := state.Trick
	if len(trick) == 0 && state.LastTrick != nil {
		trick = state.LastTrick.Plays
	}
	for _, play := range trick {
		content.WriteString(fmt.Sprintf("  %s: %s\n", m.formatter.SeatName(play.Seat), m.renderCard(play.Card, true)))
	}

	return content.String()
}

// renderActionPane renders the hand, feedback line and input
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	if m.engine.HasRound() {
		state := m.engine.Snapshot()
		legal := m.engine.LegalPlays(game.HumanSeat)

		content.WriteString(HandInfoStyle.Render("Hand: "))
		content.WriteString(m.renderHand(state.Hand(game.HumanSeat), state.Trump, legal))
		content.WriteString("\n")

		switch {
		case state.Terminal:
			content.WriteString(SuccessStyle.Render("Round over"))
		case len(legal) > 0:
			content.WriteString(SuccessStyle.Render("Your turn"))
			if state.LeadingSuit != nil {
				content.WriteString(InfoStyle.Render(fmt.Sprintf(" (%s led)", state.LeadingSuit.Name())))
			}
		default:
			content.WriteString(InfoStyle.Render(fmt.Sprintf("Waiting for %s...", m.formatter.SeatName(state.CurrentSeat))))
		}
		content.WriteString("\n")
	}

	if m.status != "" {
		style := SuccessStyle
		if m.statusErr {
			style = ErrorStyle
		}
		content.WriteString(style.Render(m.status))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(InfoStyle.Render(help))

	return content.String()
}

// renderHand groups the hand by suit, trump first, dimming unplayable cards
// when legal is non-nil.
func (m *TUIModel) renderHand(hand []deck.Card, trump deck.Suit, legal []deck.Card) string {
	groups := deck.GroupBySuit(hand, trump)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, m.renderCards(g.Cards, legal))
	}
	return strings.Join(parts, "  ")
}

func (m *TUIModel) renderCards(cards []deck.Card, legal []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		formatted = append(formatted, m.renderCard(c, legal == nil || deck.Contains(legal, c)))
	}
	return strings.Join(formatted, " ")
}

func (m *TUIModel) renderCard(card deck.Card, playable bool) string {
	switch {
	case !playable:
		return DimCardStyle.Render(card.String())
	case card.IsRed():
		return RedCardStyle.Render(card.String())
	default:
		return BlackCardStyle.Render(card.String())
	}
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.gameLog = []string{}
	m.capturedLog = nil
	m.logViewport.SetContent("")
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}
