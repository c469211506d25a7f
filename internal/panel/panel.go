// Package panel holds the interaction state behind every askql front end:
// the prompt, the generated statement, the explanation, the last results,
// the current phase and the user-facing error message.
//
// A panel never performs I/O while holding state. Each action is split in
// three steps so front ends with an event loop can run the network call on
// another goroutine:
//
//	ticket, err := p.StartRun()           // state: Running, error cleared
//	c := panel.Dispatch(ctx, svc, ticket) // network call, no state access
//	p.Apply(c)                            // state: Idle, results stored
//
// Every ticket carries a token. Apply ignores completions whose token is no
// longer the latest one issued for that action, so a superseded or
// abandoned call can never overwrite newer state.
package panel

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/askql/internal/result"
)

// User-facing messages. Raw errors are logged, never shown.
const (
	MsgBlankPrompt    = "Please enter a query description"
	MsgGenerateFailed = "Failed to generate SQL. Please try again."
	MsgRunFailed      = "Failed to run query. Please check your SQL."
	MsgExplainFailed  = "Failed to explain query."
)

var (
	// ErrBlankPrompt is returned by StartGenerate for an empty or
	// whitespace-only prompt.
	ErrBlankPrompt = errors.New("blank prompt")

	// ErrBusy is returned by Start methods while another call is in flight.
	ErrBusy = errors.New("request in flight")
)

// Action identifies one of the three service operations.
type Action int

// Actions.
const (
	ActionGenerate Action = iota
	ActionRun
	ActionExplain
)

func (a Action) String() string {
	switch a {
	case ActionGenerate:
		return "generate"
	case ActionRun:
		return "run"
	case ActionExplain:
		return "explain"
	default:
		return "unknown"
	}
}

// Phase is the panel's request state.
type Phase int

// Phases. Loading is any phase other than PhaseIdle.
const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseRunning
	PhaseExplaining
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerating:
		return "generating"
	case PhaseRunning:
		return "running"
	case PhaseExplaining:
		return "explaining"
	default:
		return "idle"
	}
}

func phaseFor(a Action) Phase {
	switch a {
	case ActionGenerate:
		return PhaseGenerating
	case ActionRun:
		return PhaseRunning
	default:
		return PhaseExplaining
	}
}

// Transport is the service as seen by the panel.
type Transport interface {
	GenerateSQL(ctx context.Context, prompt string) (string, error)
	RunSQL(ctx context.Context, query string) ([]result.Entry, error)
	Explain(ctx context.Context, query string) (result.Explanation, error)
}

// Ticket authorizes one dispatched call.
type Ticket struct {
	Action Action
	Token  uint64
	Input  string
}

// Completion is the outcome of a dispatched call.
type Completion struct {
	Ticket      Ticket
	Statement   string
	Entries     []result.Entry
	Explanation result.Explanation
	Err         error
}

// Option configures a Panel.
type Option func(*Panel)

// WithLogger sets the diagnostic logger for failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(p *Panel) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithResultConsumer registers fn to receive the entries of every applied
// run. The panel keeps its own copy as well.
func WithResultConsumer(fn func([]result.Entry)) Option {
	return func(p *Panel) { p.onResult = fn }
}

// Panel is the interaction state. It is not safe for concurrent use; front
// ends mutate it from a single goroutine.
type Panel struct {
	prompt      string
	statement   string
	explanation result.Explanation
	results     []result.Entry
	errMsg      string
	phase       Phase

	seq    uint64
	latest map[Action]uint64

	copied  bool
	copySeq uint64

	logger   *slog.Logger
	onResult func([]result.Entry)
}

// New returns an idle panel.
func New(opts ...Option) *Panel {
	p := &Panel{
		latest: make(map[Action]uint64),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt returns the current description text.
func (p *Panel) Prompt() string { return p.prompt }

// SetPrompt replaces the description text.
func (p *Panel) SetPrompt(s string) { p.prompt = s }

// Statement returns the last generated statement, empty until a generate
// call succeeds.
func (p *Panel) Statement() string { return p.statement }

// SetStatement replaces the statement that run, explain and copy act on,
// for front ends that accept SQL directly.
func (p *Panel) SetStatement(s string) { p.statement = s }

// Explanation returns the last explanation.
func (p *Panel) Explanation() result.Explanation { return p.explanation }

// Results returns the entries of the last applied run.
func (p *Panel) Results() []result.Entry { return p.results }

// Error returns the user-facing error message, or "".
func (p *Panel) Error() string { return p.errMsg }

// Phase returns the request state.
func (p *Panel) Phase() Phase { return p.phase }

// Loading reports whether a call is outstanding.
func (p *Panel) Loading() bool { return p.phase != PhaseIdle }

// StartGenerate validates the prompt and issues a generate ticket.
func (p *Panel) StartGenerate() (Ticket, error) {
	if p.Loading() {
		return Ticket{}, ErrBusy
	}
	if strings.TrimSpace(p.prompt) == "" {
		p.errMsg = MsgBlankPrompt
		return Ticket{}, ErrBlankPrompt
	}
	return p.start(ActionGenerate, p.prompt), nil
}

// StartRun issues a run ticket for the current statement, even when it is
// empty.
func (p *Panel) StartRun() (Ticket, error) {
	if p.Loading() {
		return Ticket{}, ErrBusy
	}
	return p.start(ActionRun, p.statement), nil
}

// StartExplain issues an explain ticket for the current statement, even
// when it is empty.
func (p *Panel) StartExplain() (Ticket, error) {
	if p.Loading() {
		return Ticket{}, ErrBusy
	}
	return p.start(ActionExplain, p.statement), nil
}

// Start dispatches to the Start method for a.
func (p *Panel) Start(a Action) (Ticket, error) {
	switch a {
	case ActionGenerate:
		return p.StartGenerate()
	case ActionRun:
		return p.StartRun()
	default:
		return p.StartExplain()
	}
}

func (p *Panel) start(a Action, input string) Ticket {
	p.seq++
	p.latest[a] = p.seq
	p.errMsg = ""
	p.phase = phaseFor(a)
	return Ticket{Action: a, Token: p.seq, Input: input}
}

// Abandon returns a loading panel to idle and invalidates the outstanding
// ticket. It reports whether anything was abandoned.
func (p *Panel) Abandon() bool {
	if !p.Loading() {
		return false
	}
	for a := range p.latest {
		p.seq++
		p.latest[a] = p.seq
	}
	p.phase = PhaseIdle
	return true
}

// Dispatch performs the call described by t. It does not touch any panel
// state and may run on any goroutine.
func Dispatch(ctx context.Context, svc Transport, t Ticket) Completion {
	c := Completion{Ticket: t}
	switch t.Action {
	case ActionGenerate:
		c.Statement, c.Err = svc.GenerateSQL(ctx, t.Input)
	case ActionRun:
		c.Entries, c.Err = svc.RunSQL(ctx, t.Input)
	case ActionExplain:
		c.Explanation, c.Err = svc.Explain(ctx, t.Input)
	}
	return c
}

// Apply folds a completion into the panel. Completions from superseded or
// abandoned tickets are dropped and Apply returns false.
func (p *Panel) Apply(c Completion) bool {
	t := c.Ticket
	if t.Token == 0 || p.latest[t.Action] != t.Token {
		p.logger.Debug("discarding stale completion",
			slog.String("action", t.Action.String()),
			slog.Uint64("token", t.Token))
		return false
	}
	p.phase = PhaseIdle

	if c.Err != nil {
		p.errMsg = failureMessage(t.Action)
		p.logger.Error(t.Action.String()+" failed", slog.Any("error", c.Err))
		return true
	}

	switch t.Action {
	case ActionGenerate:
		p.statement = c.Statement
	case ActionRun:
		p.results = c.Entries
		if p.onResult != nil {
			p.onResult(c.Entries)
		}
	case ActionExplain:
		p.explanation = c.Explanation
	}
	return true
}

// Execute runs a whole action synchronously: Start, Dispatch, Apply. The
// returned error is the Start error (ErrBlankPrompt, ErrBusy); call
// failures surface through Error().
func (p *Panel) Execute(ctx context.Context, svc Transport, a Action) error {
	t, err := p.Start(a)
	if err != nil {
		return err
	}
	p.Apply(Dispatch(ctx, svc, t))
	return nil
}

func failureMessage(a Action) string {
	switch a {
	case ActionGenerate:
		return MsgGenerateFailed
	case ActionRun:
		return MsgRunFailed
	default:
		return MsgExplainFailed
	}
}
