package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

type harness struct {
	engine   *Engine
	state    *model.State
	store    *storage.MemoryStore
	notices  *common.NoticeRecorder
	persist  *storage.Persister
	clockNow time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		state:    model.NewState(),
		store:    storage.NewMemoryStore(),
		notices:  &common.NoticeRecorder{},
		clockNow: testNow,
	}
	clock := func() time.Time { return h.clockNow }
	h.persist = storage.NewPersister(h.store, storage.WithNotifier(h.notices), storage.WithClock(clock))

	seq := 0
	h.engine = New(h.state, h.persist,
		WithNotifier(h.notices),
		WithClock(clock),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("txn-%03d", seq)
		}),
		WithExportFormat("2006-01-02", time.UTC),
	)
	return h
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), append([]any{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func (h *harness) fund(t *testing.T, amount string) {
	t.Helper()
	_, err := h.engine.AddTransaction(context.Background(), TransactionInput{Kind: "income", Amount: amount, Category: "salary"})
	require.NoError(t, err)
}

func TestScenario_SalaryFoodDepositDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.state.DailyTarget = dec("15")

	eff, err := h.engine.AddTransaction(ctx, TransactionInput{Kind: "income", Amount: "100", Category: "salary"})
	require.NoError(t, err)
	assert.True(t, eff.Refresh)
	assertDec(t, "100", h.state.CashBalance)
	assert.Len(t, h.state.Transactions, 1)

	eff, err = h.engine.AddTransaction(ctx, TransactionInput{Kind: "expense", Amount: "30", Category: "food"})
	require.NoError(t, err)
	expenseID := eff.Transaction.ID
	assertDec(t, "70", h.state.CashBalance)
	assertDec(t, "30", h.state.MonthlyExpenses["food"])

	_, err = h.engine.DailyDeposit(ctx)
	require.NoError(t, err)
	assertDec(t, "55", h.state.CashBalance)
	assertDec(t, "15", h.state.Savings)

	_, err = h.engine.DeleteTransaction(ctx, expenseID, NewMockConfirmer(true))
	require.NoError(t, err)
	assertDec(t, "85", h.state.CashBalance)
	assertDec(t, "0", h.state.MonthlyExpenses["food"])
	assertDec(t, "15", h.state.Savings)
	assert.Len(t, h.state.Transactions, 2)

	assert.Empty(t, h.notices.Notices())
}

func TestScenario_BankDeposit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.fund(t, "85")

	eff, err := h.engine.BankTransfer(ctx, TransferDeposit, "50")
	require.NoError(t, err)

	assertDec(t, "35", h.state.CashBalance)
	assertDec(t, "50", h.state.BankBalance)
	require.NotNil(t, eff.Transaction)
	assert.Equal(t, model.KindExpense, eff.Transaction.Kind)
	assert.Equal(t, model.CategoryBankTransfer, eff.Transaction.Category)
	assert.Len(t, h.state.Transactions, 2)
}

func TestBankTransfer_Withdraw(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.fund(t, "100")
	_, err := h.engine.BankTransfer(ctx, TransferDeposit, "60")
	require.NoError(t, err)

	eff, err := h.engine.BankTransfer(ctx, " Withdraw ", "20")
	require.NoError(t, err)

	assert.Equal(t, model.KindIncome, eff.Transaction.Kind)
	assertDec(t, "60", h.state.CashBalance)
	assertDec(t, "40", h.state.BankBalance)
}

func TestBankTransfer_Preconditions(t *testing.T) {
	tests := []struct {
		wantKind  error
		name      string
		direction string
		amount    string
		wantMsg   string
	}{
		{name: "deposit above cash", direction: TransferDeposit, amount: "11", wantKind: common.ErrPrecondition, wantMsg: "Insufficient balance"},
		{name: "withdraw above bank", direction: TransferWithdraw, amount: "1", wantKind: common.ErrPrecondition, wantMsg: "Insufficient bank balance"},
		{name: "unknown direction", direction: "sideways", amount: "1", wantKind: common.ErrValidation, wantMsg: "Invalid transfer type"},
		{name: "invalid amount", direction: TransferDeposit, amount: "-5", wantKind: common.ErrValidation, wantMsg: "Invalid amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.fund(t, "10")
			before := h.state.Clone()
			h.notices.Reset()

			_, err := h.engine.BankTransfer(context.Background(), tt.direction, tt.amount)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.True(t, common.IsReported(err))
			assertUnchanged(t, before, h.state)
			notices := h.notices.Notices()
			require.Len(t, notices, 1)
			assert.Equal(t, tt.wantMsg, notices[0].Message)
		})
	}
}

func assertUnchanged(t *testing.T, before, after *model.State) {
	t.Helper()
	assert.True(t, before.CashBalance.Equal(after.CashBalance), "cash changed")
	assert.True(t, before.BankBalance.Equal(after.BankBalance), "bank changed")
	assert.True(t, before.Savings.Equal(after.Savings), "savings changed")
	assert.Len(t, after.Transactions, len(before.Transactions))
}

func TestAddTransaction_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   TransactionInput
	}{
		{name: "negative amount", in: TransactionInput{Kind: "expense", Amount: "-5", Category: "food"}},
		{name: "amount too large", in: TransactionInput{Kind: "income", Amount: "2000000", Category: "salary"}},
		{name: "not a number", in: TransactionInput{Kind: "income", Amount: "ten", Category: "salary"}},
		{name: "missing kind", in: TransactionInput{Amount: "5", Category: "food"}},
		{name: "unknown kind", in: TransactionInput{Kind: "refund", Amount: "5", Category: "food"}},
		{name: "missing category", in: TransactionInput{Kind: "income", Amount: "5", Category: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.fund(t, "50")
			before := h.state.Clone()
			h.notices.Reset()
			blobBefore, err := h.store.Get(context.Background(), storage.DefaultKey)
			require.NoError(t, err)

			eff, err := h.engine.AddTransaction(context.Background(), tt.in)

			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, Effect{}, eff)
			assertUnchanged(t, before, h.state)
			assert.Len(t, h.notices.Notices(), 1)

			blobAfter, err := h.store.Get(context.Background(), storage.DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, blobBefore, blobAfter, "nothing persisted")
		})
	}
}

func TestAddTransaction_ExpenseAboveBalance(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "20")
	h.notices.Reset()

	_, err := h.engine.AddTransaction(context.Background(), TransactionInput{Kind: "expense", Amount: "20.01", Category: "food"})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPrecondition)
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)
	assertDec(t, "20", h.state.CashBalance)
	require.Len(t, h.notices.Notices(), 1)
	assert.Equal(t, "Insufficient balance", h.notices.Notices()[0].Message)
}

func TestAddTransaction_ExpenseDecreasesCashExactly(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "1000000")
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		cents := rng.Int63n(500_00) + 1
		amount := decimal.New(cents, -2)
		if amount.GreaterThan(h.state.CashBalance) {
			continue
		}
		before := h.state.CashBalance
		count := len(h.state.Transactions)

		_, err := h.engine.AddTransaction(context.Background(), TransactionInput{Kind: "expense", Amount: amount.String(), Category: "food"})
		require.NoError(t, err)

		assert.True(t, before.Sub(amount).Equal(h.state.CashBalance))
		assert.Len(t, h.state.Transactions, count+1)
	}
}

func TestAddThenDelete_RestoresState(t *testing.T) {
	tests := []struct {
		add  func(ctx context.Context, e *Engine) (Effect, error)
		name string
	}{
		{
			name: "income",
			add: func(ctx context.Context, e *Engine) (Effect, error) {
				return e.AddTransaction(ctx, TransactionInput{Kind: "income", Amount: "12.34", Category: "gift"})
			},
		},
		{
			name: "expense",
			add: func(ctx context.Context, e *Engine) (Effect, error) {
				return e.AddTransaction(ctx, TransactionInput{Kind: "expense", Amount: "7.5", Category: "leisure"})
			},
		},
		{
			name: "savings entered by hand",
			add: func(ctx context.Context, e *Engine) (Effect, error) {
				return e.AddTransaction(ctx, TransactionInput{Kind: "savings", Amount: "3", Category: "jar"})
			},
		},
		{
			name: "daily deposit",
			add: func(ctx context.Context, e *Engine) (Effect, error) {
				return e.DailyDeposit(ctx)
			},
		},
		{
			name: "bank deposit",
			add: func(ctx context.Context, e *Engine) (Effect, error) {
				return e.BankTransfer(ctx, TransferDeposit, "40")
			},
		},
		{
			name: "bank withdrawal",
			add: func(ctx context.Context, e *Engine) (Effect, error) {
				return e.BankTransfer(ctx, TransferWithdraw, "5")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			ctx := context.Background()
			h.fund(t, "100")
			_, err := h.engine.BankTransfer(ctx, TransferDeposit, "10")
			require.NoError(t, err)
			before := h.state.Clone()

			eff, err := tt.add(ctx, h.engine)
			require.NoError(t, err)
			require.NotNil(t, eff.Transaction)

			_, err = h.engine.DeleteTransaction(ctx, eff.Transaction.ID, Confirmed)
			require.NoError(t, err)

			assertUnchanged(t, before, h.state)
			for cat, v := range before.MonthlyExpenses {
				assert.True(t, v.Equal(h.state.MonthlyExpenses[cat]), cat)
			}
		})
	}
}

func TestDeleteTransaction_Declined(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "10")
	id := h.state.Transactions[0].ID
	confirm := NewMockConfirmer(false)
	h.notices.Reset()

	eff, err := h.engine.DeleteTransaction(context.Background(), id, confirm)

	require.NoError(t, err)
	assert.True(t, eff.Canceled)
	assert.Len(t, h.state.Transactions, 1)
	assert.Len(t, confirm.Prompts(), 1)
	assert.Empty(t, h.notices.Notices())
}

func TestDeleteTransaction_UnknownID(t *testing.T) {
	h := newHarness(t)
	confirm := NewMockConfirmer(true)

	_, err := h.engine.DeleteTransaction(context.Background(), "nope", confirm)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPrecondition)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Empty(t, confirm.Prompts(), "no confirmation for a missing transaction")
	assert.Len(t, h.notices.Notices(), 1)
}

func TestDeleteTransaction_ConfirmerFails(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "10")
	h.notices.Reset()

	_, err := h.engine.DeleteTransaction(context.Background(), h.state.Transactions[0].ID,
		NewMockConfirmer(true).WithError(errors.New("stdin closed")))

	require.Error(t, err)
	assert.Len(t, h.state.Transactions, 1)
	assert.Len(t, h.notices.Notices(), 1)
}

func TestDeleteTransaction_KeepsOrderOfOthers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	for _, amt := range []string{"1", "2", "3"} {
		h.fund(t, amt)
	}

	_, err := h.engine.DeleteTransaction(ctx, "txn-002", Confirmed)
	require.NoError(t, err)

	require.Len(t, h.state.Transactions, 2)
	assert.Equal(t, "txn-001", h.state.Transactions[0].ID)
	assert.Equal(t, "txn-003", h.state.Transactions[1].ID)
}

func TestDailyDeposit_InsufficientBalance(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "14.99")
	h.notices.Reset()

	_, err := h.engine.DailyDeposit(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPrecondition)
	assertDec(t, "0", h.state.Savings)
	require.Len(t, h.notices.Notices(), 1)
	assert.Equal(t, "Insufficient balance for daily deposit", h.notices.Notices()[0].Message)
}

func TestDailyDeposit_ExactBalance(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "15")

	eff, err := h.engine.DailyDeposit(context.Background())

	require.NoError(t, err)
	assertDec(t, "0", h.state.CashBalance)
	assertDec(t, "15", h.state.Savings)
	assert.Equal(t, model.CategoryDeposit, eff.Transaction.Category)
	assert.Equal(t, model.KindSavings, eff.Transaction.Kind)
}

func TestUpdateSettings_PerFieldIndependent(t *testing.T) {
	tests := []struct {
		in            SettingsInput
		name          string
		wantAllowance string
		wantTarget    string
		wantGoal      string
		wantUpdated   []string
	}{
		{
			name:          "all valid",
			in:            SettingsInput{Allowance: "25", Target: "10", Goal: "5000"},
			wantAllowance: "25", wantTarget: "10", wantGoal: "5000",
			wantUpdated: []string{SettingAllowance, SettingTarget, SettingGoal},
		},
		{
			name:          "invalid allowance left unchanged",
			in:            SettingsInput{Allowance: "-3", Target: "30"},
			wantAllowance: "20", wantTarget: "30", wantGoal: "10000",
			wantUpdated: []string{SettingTarget},
		},
		{
			name:          "nothing valid",
			in:            SettingsInput{Allowance: "abc", Target: "2000000"},
			wantAllowance: "20", wantTarget: "15", wantGoal: "10000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			eff, err := h.engine.UpdateSettings(context.Background(), tt.in)

			require.NoError(t, err)
			assert.True(t, eff.Refresh)
			assert.Equal(t, tt.wantUpdated, eff.Updated)
			assertDec(t, tt.wantAllowance, h.state.DailyAllowance)
			assertDec(t, tt.wantTarget, h.state.DailyTarget)
			assertDec(t, tt.wantGoal, h.state.SavingsGoal)
			assert.Empty(t, h.notices.Notices())
		})
	}
}

func TestToggleTheme_Persists(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	eff, err := h.engine.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, eff.Theme)

	reloaded := model.NewState()
	require.NoError(t, h.persist.Load(ctx, reloaded))
	assert.True(t, reloaded.DarkMode)

	eff, err = h.engine.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, eff.Theme)
	assert.False(t, h.state.DarkMode)
}

func TestExportCSV(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "100")
	_, err := h.engine.AddTransaction(context.Background(), TransactionInput{Kind: "expense", Amount: "30", Category: "food"})
	require.NoError(t, err)
	before := h.state.Clone()

	eff, err := h.engine.ExportCSV(context.Background())

	require.NoError(t, err)
	require.NotNil(t, eff.Download)
	assert.Equal(t, "finances_2026-10-16.csv", eff.Download.Filename)
	assert.Equal(t, "text/csv", eff.Download.ContentType)
	assert.Equal(t,
		"Date,Type,Category,Amount\n2026-10-16,income,salary,100\n2026-10-16,expense,food,30\n",
		string(eff.Download.Data))
	assert.False(t, eff.Refresh)
	assertUnchanged(t, before, h.state)
}

func TestSaveFailure_KeepsInMemoryChange(t *testing.T) {
	h := newHarness(t)
	h.store.FailWrites(storage.ErrQuotaExceeded)

	eff, err := h.engine.AddTransaction(context.Background(), TransactionInput{Kind: "income", Amount: "10", Category: "salary"})

	require.NoError(t, err)
	assert.True(t, eff.Unsaved)
	assert.True(t, eff.Refresh)
	assertDec(t, "10", h.state.CashBalance)
	notices := h.notices.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, common.NoticeWarning, notices[0].Level)
	assert.True(t, strings.HasPrefix(notices[0].Message, "Error saving data"))
}

type panickingSaver struct{}

func (panickingSaver) Save(context.Context, *model.State) error { panic("disk on fire") }

func TestHandlerPanic_IsReportedWithoutRollback(t *testing.T) {
	rec := &common.NoticeRecorder{}
	state := model.NewState()
	e := New(state, panickingSaver{}, WithNotifier(rec), WithClock(func() time.Time { return testNow }))

	_, err := e.AddTransaction(context.Background(), TransactionInput{Kind: "income", Amount: "10", Category: "salary"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.True(t, common.IsReported(err))
	assert.Len(t, state.Transactions, 1, "state stays as far as execution reached")
	require.Len(t, rec.Notices(), 1)
	assert.Equal(t, "Error processing transaction", rec.Notices()[0].Message)
}

func TestDefaultIDs_NoCollisionInRapidSuccession(t *testing.T) {
	e := New(model.NewState(), nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		eff, err := e.AddTransaction(ctx, TransactionInput{Kind: "income", Amount: "1", Category: "tip"})
		require.NoError(t, err)
		require.False(t, seen[eff.Transaction.ID], "duplicate id %s", eff.Transaction.ID)
		seen[eff.Transaction.ID] = true
	}
}

func TestTransactionDatesSurviveRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.clockNow = time.Date(2026, time.October, 16, 12, 0, 0, 123_456_789, time.UTC)
	h.fund(t, "10")

	reloaded := model.NewState()
	require.NoError(t, h.persist.Load(context.Background(), reloaded))

	require.Len(t, reloaded.Transactions, 1)
	assert.True(t, h.state.Transactions[0].Date.Equal(reloaded.Transactions[0].Date))
}

func TestSnapshotIsDetached(t *testing.T) {
	h := newHarness(t)
	h.fund(t, "10")

	snap := h.engine.Snapshot()
	h.fund(t, "5")

	assert.Len(t, snap.Transactions, 1)
	assertDec(t, "10", snap.CashBalance)
}
