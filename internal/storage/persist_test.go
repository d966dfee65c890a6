package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func sampleState() *model.State {
	s := model.NewState()
	s.CashBalance = decimal.RequireFromString("55")
	s.BankBalance = decimal.RequireFromString("50.25")
	s.Savings = decimal.RequireFromString("15")
	s.DarkMode = true
	s.Transactions = []model.Transaction{
		{ID: "a", Kind: model.KindIncome, Amount: decimal.NewFromInt(100), Category: "salary", Date: fixedNow.Add(-3 * time.Hour)},
		{ID: "b", Kind: model.KindExpense, Amount: decimal.NewFromInt(30), Category: "food", Date: fixedNow.Add(-2 * time.Hour)},
		{ID: "c", Kind: model.KindSavings, Amount: decimal.NewFromInt(15), Category: model.CategoryDeposit, Date: fixedNow.Add(-time.Hour)},
	}
	return s
}

func TestPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rec := &common.NoticeRecorder{}
	p := NewPersister(store, WithNotifier(rec), WithClock(clock))

	original := sampleState()
	require.NoError(t, p.Save(ctx, original))

	loaded := model.NewState()
	require.NoError(t, p.Load(ctx, loaded))

	assert.True(t, loaded.CashBalance.Equal(original.CashBalance))
	assert.True(t, loaded.BankBalance.Equal(original.BankBalance))
	assert.True(t, loaded.Savings.Equal(original.Savings))
	assert.Equal(t, original.DarkMode, loaded.DarkMode)

	require.Len(t, loaded.Transactions, len(original.Transactions))
	byID := make(map[string]model.Transaction)
	for _, txn := range loaded.Transactions {
		byID[txn.ID] = txn
	}
	for _, want := range original.Transactions {
		got, ok := byID[want.ID]
		require.True(t, ok, want.ID)
		assert.Equal(t, want.Kind, got.Kind)
		assert.Equal(t, want.Category, got.Category)
		assert.True(t, want.Amount.Equal(got.Amount))
		assert.True(t, want.Date.Equal(got.Date))
	}

	assert.True(t, loaded.MonthlyExpenses["food"].Equal(decimal.NewFromInt(30)), "cache rebuilt on load")
	assert.Empty(t, rec.Notices())
}

func TestPersister_RoundTripThroughSQLite(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()
	ctx := context.Background()
	p := NewPersister(store, WithClock(clock))

	require.NoError(t, p.Save(ctx, sampleState()))

	loaded := model.NewState()
	require.NoError(t, p.Load(ctx, loaded))
	assert.Len(t, loaded.Transactions, 3)
	assert.True(t, loaded.BankBalance.Equal(decimal.RequireFromString("50.25")))
}

func TestPersister_LoadMissingKeepsDefaultsQuietly(t *testing.T) {
	rec := &common.NoticeRecorder{}
	p := NewPersister(NewMemoryStore(), WithNotifier(rec), WithClock(clock))

	s := model.NewState()
	require.NoError(t, p.Load(context.Background(), s))

	assert.True(t, s.DailyTarget.Equal(model.DefaultDailyTarget))
	assert.Empty(t, rec.Notices())
}

func TestPersister_LoadCorruptReportsAndKeepsState(t *testing.T) {
	store := NewMemoryStore()
	store.Put(DefaultKey, []byte(`{"balance": "lots", "bankBalance": 0}`))
	rec := &common.NoticeRecorder{}
	p := NewPersister(store, WithNotifier(rec), WithClock(clock))

	s := model.NewState()
	s.CashBalance = decimal.NewFromInt(7)
	err := p.Load(context.Background(), s)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPersistence)
	assert.True(t, common.IsReported(err))
	assert.True(t, s.CashBalance.Equal(decimal.NewFromInt(7)))

	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Error loading data", notices[0].Message)
}

func TestPersister_SaveFailureReportsOnce(t *testing.T) {
	store := NewMemoryStore()
	store.FailWrites(ErrQuotaExceeded)
	rec := &common.NoticeRecorder{}
	p := NewPersister(store, WithNotifier(rec), WithKey("custom"))

	err := p.Save(context.Background(), sampleState())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.ErrorIs(t, err, common.ErrPersistence)
	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, common.NoticeWarning, notices[0].Level)
	assert.Equal(t, "custom", p.Key())
}
