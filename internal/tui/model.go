// Package tui is the full-screen askql front end.
//
// The model owns a panel.Panel and drives it from the bubbletea event loop.
// Service calls run as commands on their own goroutines and come back as
// completionMsg values; every state change happens in Update.
package tui

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/panel"
	"github.com/leapstack-labs/askql/internal/present"
	"github.com/leapstack-labs/askql/internal/result"
)

// CopyFailedMsg is shown when the clipboard rejects a copy.
const CopyFailedMsg = "Could not copy to clipboard."

// completionMsg carries a finished service call back to Update.
type completionMsg struct {
	panel.Completion
}

// copyResetMsg asks Update to revert the copy label.
type copyResetMsg struct {
	seq uint64
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The TUI owns the terminal, so it should write
// to a file or be discarded.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStyles sets the lipgloss styles.
func WithStyles(st *output.Styles) Option {
	return func(m *Model) {
		if st != nil {
			m.styles = st
		}
	}
}

// WithHelp shows or hides the key help footer.
func WithHelp(show bool) Option {
	return func(m *Model) { m.showHelp = show }
}

// Model is the bubbletea model of the interactive panel.
type Model struct {
	ctx    context.Context
	svc    panel.Transport
	clip   panel.Clipboard
	logger *slog.Logger
	styles *output.Styles

	panel *panel.Panel
	keys  KeyMap

	input   textarea.Model
	spinner spinner.Model
	results viewport.Model
	help    help.Model

	showHelp bool
	notice   string
	width    int
	height   int
}

// New returns a model that talks to svc and copies through clip.
func New(ctx context.Context, svc panel.Transport, clip panel.Clipboard, opts ...Option) *Model {
	m := &Model{
		ctx:      ctx,
		svc:      svc,
		clip:     clip,
		logger:   slog.New(slog.DiscardHandler),
		showHelp: true,
		keys:     DefaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		results:  viewport.New(80, 10),
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.styles == nil {
		m.styles = output.NewRenderer(os.Stdout, os.Stderr, output.ModeText).Styles()
	}

	m.input = textarea.New()
	m.input.Placeholder = "Describe the data you want, e.g. top 10 customers by revenue"
	m.input.ShowLineNumbers = false
	m.input.SetHeight(3)
	m.input.Focus()

	m.panel = panel.New(
		panel.WithLogger(m.logger),
		panel.WithResultConsumer(m.showResults),
	)
	m.showResults(nil)
	m.syncKeys()
	return m
}

// Panel exposes the underlying state.
func (m *Model) Panel() *panel.Panel { return m.panel }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(max(msg.Width-4, 20))
		m.help.Width = msg.Width
		m.results.Width = msg.Width
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case completionMsg:
		m.panel.Apply(msg.Completion)
		m.syncKeys()
		return nil

	case copyResetMsg:
		m.panel.ResetCopied(msg.seq)
		return nil

	case spinner.TickMsg:
		if !m.panel.Loading() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Generate):
		return m.start(panel.ActionGenerate)
	case key.Matches(msg, m.keys.Run):
		return m.start(panel.ActionRun)
	case key.Matches(msg, m.keys.Explain):
		return m.start(panel.ActionExplain)
	case key.Matches(msg, m.keys.Copy):
		return m.copy()
	case key.Matches(msg, m.keys.Abandon):
		if m.panel.Abandon() {
			m.logger.Debug("abandoned in-flight request")
			m.syncKeys()
		}
		return nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return cmd
	}

	// The prompt is read-only while a call is in flight.
	if m.panel.Loading() {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.panel.SetPrompt(m.input.Value())
	return cmd
}

// start begins an action and returns the command that performs it.
func (m *Model) start(a panel.Action) tea.Cmd {
	t, err := m.panel.Start(a)
	if err != nil {
		return nil
	}
	m.notice = ""
	m.syncKeys()
	return tea.Batch(m.spinner.Tick, dispatch(m.ctx, m.svc, t))
}

func dispatch(ctx context.Context, svc panel.Transport, t panel.Ticket) tea.Cmd {
	return func() tea.Msg {
		return completionMsg{panel.Dispatch(ctx, svc, t)}
	}
}

func (m *Model) copy() tea.Cmd {
	seq, err := m.panel.Copy(m.clip)
	if err != nil {
		m.logger.Error("copy failed", slog.Any("error", err))
		m.notice = CopyFailedMsg
		return nil
	}
	m.notice = ""
	return tea.Tick(panel.CopyFeedbackDelay, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

// syncKeys enables the statement actions only when there is a statement
// to act on, and disables every action while a call is in flight.
func (m *Model) syncKeys() {
	idle := !m.panel.Loading()
	hasStatement := m.panel.Statement() != ""

	m.keys.Generate.SetEnabled(idle)
	m.keys.Run.SetEnabled(idle && hasStatement)
	m.keys.Explain.SetEnabled(idle && hasStatement)
	m.keys.Copy.SetEnabled(hasStatement)
	m.keys.Abandon.SetEnabled(!idle)
}

func (m *Model) showResults(entries []result.Entry) {
	m.results.SetContent(present.Text(m.styles, present.Build(entries)))
	m.results.GotoTop()
}

// layout gives the results viewport whatever height the other sections
// leave free.
func (m *Model) layout() {
	if m.height == 0 {
		return
	}
	used := lipgloss.Height(m.top()) + lipgloss.Height(m.footer())
	m.results.Height = max(m.height-used, 3)
}
