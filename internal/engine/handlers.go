package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/export"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/validate"
	"github.com/shopspring/decimal"
)

// Transfer directions.
const (
	TransferDeposit  = "deposit"
	TransferWithdraw = "withdraw"
)

// Setting names reported in Effect.Updated.
const (
	SettingAllowance = "dailyAllowance"
	SettingTarget    = "dailyTarget"
	SettingGoal      = "savingsGoal"
)

// TransactionInput is the raw form data for a new transaction.
type TransactionInput struct {
	Kind     string
	Amount   string
	Category string
}

// SettingsInput is the raw settings form. Empty fields are left alone.
type SettingsInput struct {
	Allowance string
	Target    string
	Goal      string
}

// AddTransaction records an income, expense or savings transaction.
// Outflows may not exceed the cash balance.
func (e *Engine) AddTransaction(ctx context.Context, in TransactionInput) (eff Effect, err error) {
	defer e.guard("processing transaction", &err)

	if !validate.IsValidTransactionInput(in.Kind, in.Amount, in.Category) {
		return Effect{}, common.Validation("Invalid transaction data", nil)
	}
	kind, err := validate.ParseKind(in.Kind)
	if err != nil {
		return Effect{}, err
	}
	amount, err := validate.ParseAmount(in.Amount)
	if err != nil {
		return Effect{}, err
	}
	category, err := validate.Category(in.Category)
	if err != nil {
		return Effect{}, err
	}

	if kind != model.KindIncome && amount.GreaterThan(e.state.CashBalance) {
		return Effect{}, common.Precondition("Insufficient balance",
			fmt.Errorf("%w: %s > %s", common.ErrInsufficientFunds, amount, e.state.CashBalance))
	}

	return e.record(ctx, e.newTransaction(kind, amount, category)), nil
}

// BankTransfer moves money between cash and the bank and records a synthetic
// bank_transfer transaction: an expense for a deposit, an income for a withdrawal.
func (e *Engine) BankTransfer(ctx context.Context, direction, rawAmount string) (eff Effect, err error) {
	defer e.guard("processing transfer", &err)

	amount, err := validate.ParseAmount(rawAmount)
	if err != nil {
		return Effect{}, err
	}

	var kind model.Kind
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case TransferDeposit:
		if amount.GreaterThan(e.state.CashBalance) {
			return Effect{}, common.Precondition("Insufficient balance",
				fmt.Errorf("%w: %s > %s", common.ErrInsufficientFunds, amount, e.state.CashBalance))
		}
		kind = model.KindExpense
	case TransferWithdraw:
		if amount.GreaterThan(e.state.BankBalance) {
			return Effect{}, common.Precondition("Insufficient bank balance",
				fmt.Errorf("%w: %s > %s", common.ErrInsufficientFunds, amount, e.state.BankBalance))
		}
		kind = model.KindIncome
	default:
		return Effect{}, common.Validation("Invalid transfer type",
			fmt.Errorf("%w: %q", validate.ErrUnknownAction, direction))
	}

	return e.record(ctx, e.newTransaction(kind, amount, model.CategoryBankTransfer)), nil
}

// DailyDeposit moves the daily target from cash into savings.
func (e *Engine) DailyDeposit(ctx context.Context) (eff Effect, err error) {
	defer e.guard("processing deposit", &err)

	target := e.state.DailyTarget
	if !target.IsPositive() {
		return Effect{}, common.Validation("Invalid daily target", validate.ErrNotPositive)
	}
	if e.state.CashBalance.LessThan(target) {
		return Effect{}, common.Precondition("Insufficient balance for daily deposit",
			fmt.Errorf("%w: %s < %s", common.ErrInsufficientFunds, e.state.CashBalance, target))
	}

	return e.record(ctx, e.newTransaction(model.KindSavings, target, model.CategoryDeposit)), nil
}

// DeleteTransaction removes a transaction after confirmation and reverses
// exactly the balance changes it made. A declined confirmation is not an error.
func (e *Engine) DeleteTransaction(ctx context.Context, id string, confirm Confirmer) (eff Effect, err error) {
	defer e.guard("deleting transaction", &err)

	idx := e.state.IndexOf(id)
	if idx < 0 {
		return Effect{}, common.Precondition("Transaction not found",
			fmt.Errorf("transaction %q: %w", id, common.ErrNotFound))
	}
	if confirm == nil {
		confirm = Confirmed
	}

	ok, err := confirm.Confirm(ctx, "Are you sure you want to delete this transaction?")
	if err != nil {
		return Effect{}, common.NewUserError("Error deleting transaction", err)
	}
	if !ok {
		return Effect{Canceled: true}, nil
	}

	t := e.state.Transactions[idx]
	e.state.Transactions = slices.Delete(e.state.Transactions, idx, idx+1)
	e.reverse(t)

	eff = Effect{Transaction: &t}
	e.commit(ctx, &eff)
	return eff, nil
}

// UpdateSettings applies each valid field on its own. Invalid or empty fields
// keep their current value; no combined error is raised.
func (e *Engine) UpdateSettings(ctx context.Context, in SettingsInput) (eff Effect, err error) {
	defer e.guard("updating settings", &err)

	fields := []struct {
		dst  *decimal.Decimal
		raw  string
		name string
	}{
		{&e.state.DailyAllowance, in.Allowance, SettingAllowance},
		{&e.state.DailyTarget, in.Target, SettingTarget},
		{&e.state.SavingsGoal, in.Goal, SettingGoal},
	}
	for _, f := range fields {
		v, parseErr := validate.ParseAmount(f.raw)
		if parseErr != nil {
			continue
		}
		*f.dst = v
		eff.Updated = append(eff.Updated, f.name)
	}

	e.commit(ctx, &eff)
	return eff, nil
}

// ToggleTheme flips dark mode.
func (e *Engine) ToggleTheme(ctx context.Context) (eff Effect, err error) {
	defer e.guard("toggling theme", &err)

	e.state.DarkMode = !e.state.DarkMode
	eff.Theme = ThemeFor(e.state.DarkMode)
	e.commit(ctx, &eff)
	return eff, nil
}

// ExportCSV formats the transaction history as a CSV download.
// It does not touch the state.
func (e *Engine) ExportCSV(_ context.Context) (eff Effect, err error) {
	defer e.guard("exporting data", &err)

	data, err := export.CSV(e.state.Transactions, e.dateFormat, e.location)
	if err != nil {
		return Effect{}, common.NewUserError("Error exporting data", err)
	}
	return Effect{Download: &Download{
		Filename:    export.Filename(e.now()),
		ContentType: export.ContentType,
		Data:        data,
	}}, nil
}
