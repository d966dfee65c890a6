// Package engine implements the ledger's command handlers.
//
// Every handler validates its input, checks domain preconditions, mutates the
// state, persists it and returns an Effect for the presentation layer. A
// failing handler leaves the state untouched, emits exactly one notice and one
// log entry, and returns the error already marked as reported.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/derive"
	"github.com/Veraticus/tally/internal/export"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// ErrUnexpected wraps a panic recovered inside a handler.
var ErrUnexpected = errors.New("unexpected failure")

// Engine owns the ledger state for one session.
type Engine struct {
	state      *model.State
	saver      Saver
	notifier   common.Notifier
	now        func() time.Time
	newID      func() string
	location   *time.Location
	dateFormat string
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the user-visible error channel.
func WithNotifier(n common.Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides transaction id generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// WithExportFormat sets the CSV date layout and the zone dates are shown in.
func WithExportFormat(dateFormat string, loc *time.Location) Option {
	return func(e *Engine) {
		e.dateFormat = dateFormat
		if loc != nil {
			e.location = loc
		}
	}
}

// New creates an engine over state. A nil saver keeps changes in memory only.
func New(state *model.State, saver Saver, opts ...Option) *Engine {
	if state == nil {
		state = model.NewState()
	}
	e := &Engine{
		state:      state,
		saver:      saver,
		notifier:   common.Discard,
		now:        time.Now,
		newID:      model.NewTransactionID,
		location:   time.Local,
		dateFormat: export.DefaultDateFormat,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state.MonthlyExpenses == nil {
		e.state.MonthlyExpenses = derive.MonthlyExpenses(e.state.Transactions, e.now())
	}
	return e
}

// Snapshot returns a copy of the current state for rendering.
func (e *Engine) Snapshot() *model.State {
	return e.state.Clone()
}

// Now returns the engine's clock reading.
func (e *Engine) Now() time.Time {
	return e.now()
}

// guard is deferred by every handler: it turns panics into errors and reports
// any failure exactly once.
func (e *Engine) guard(action string, err *error) {
	if r := recover(); r != nil {
		*err = common.NewUserError("Error "+action, fmt.Errorf("%w: %v", ErrUnexpected, r))
	}
	if *err != nil {
		*err = common.Report(e.notifier, action, *err)
	}
}

// commit recomputes derived data and persists. A failed save leaves the
// in-memory change in place.
func (e *Engine) commit(ctx context.Context, eff *Effect) {
	e.state.MonthlyExpenses = derive.MonthlyExpenses(e.state.Transactions, e.now())
	eff.Refresh = true
	if e.saver == nil {
		return
	}
	if err := e.saver.Save(ctx, e.state); err != nil {
		eff.Unsaved = true
	}
}

func (e *Engine) newTransaction(kind model.Kind, amount decimal.Decimal, category string) model.Transaction {
	return model.Transaction{
		ID:       e.newID(),
		Kind:     kind,
		Amount:   amount,
		Category: category,
		// Millisecond precision survives a save/load round trip unchanged.
		Date: e.now().UTC().Truncate(time.Millisecond),
	}
}

// deltas returns how t moves cash, bank and savings when applied.
func deltas(t model.Transaction) (cash, bank, savings decimal.Decimal) {
	cash, bank, savings = decimal.Zero, decimal.Zero, decimal.Zero
	switch t.Kind {
	case model.KindIncome:
		cash = t.Amount
		if t.IsBankTransfer() {
			bank = t.Amount.Neg()
		}
	case model.KindExpense:
		cash = t.Amount.Neg()
		if t.IsBankTransfer() {
			bank = t.Amount
		}
	case model.KindSavings:
		cash = t.Amount.Neg()
		savings = t.Amount
	}
	return cash, bank, savings
}

func (e *Engine) apply(t model.Transaction) {
	cash, bank, savings := deltas(t)
	e.state.CashBalance = e.state.CashBalance.Add(cash)
	e.state.BankBalance = e.state.BankBalance.Add(bank)
	e.state.Savings = e.state.Savings.Add(savings)
}

func (e *Engine) reverse(t model.Transaction) {
	cash, bank, savings := deltas(t)
	e.state.CashBalance = e.state.CashBalance.Sub(cash)
	e.state.BankBalance = e.state.BankBalance.Sub(bank)
	e.state.Savings = e.state.Savings.Sub(savings)
}

func (e *Engine) record(ctx context.Context, t model.Transaction) Effect {
	e.state.Transactions = append(e.state.Transactions, t)
	e.apply(t)

	eff := Effect{Transaction: &t}
	e.commit(ctx, &eff)

	slog.Debug("Recorded transaction",
		"id", t.ID,
		"type", t.Kind,
		"amount", t.Amount.String(),
		"category", t.Category)
	return eff
}
