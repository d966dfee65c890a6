package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// dateLayout matches JavaScript's Date.toISOString, which earlier blobs were written with.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

type blobTransaction struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

// blob is the persisted layout. Pointer fields tell present keys from absent ones.
type blob struct {
	Balance         *json.Number           `json:"balance,omitempty"`
	BankBalance     *json.Number           `json:"bankBalance,omitempty"`
	Savings         *json.Number           `json:"savings,omitempty"`
	Transactions    *[]blobTransaction     `json:"transactions,omitempty"`
	DailyTarget     *json.Number           `json:"dailyTarget,omitempty"`
	DailyAllowance  *json.Number           `json:"dailyAllowance,omitempty"`
	SavingsGoal     *json.Number           `json:"savingsGoal,omitempty"`
	DarkMode        *bool                  `json:"darkMode,omitempty"`
	MonthlyExpenses map[string]json.Number `json:"monthlyExpenses,omitempty"`
}

func number(d decimal.Decimal) *json.Number {
	n := json.Number(d.String())
	return &n
}

// Encode serializes the full state.
func Encode(s *model.State) ([]byte, error) {
	txns := make([]blobTransaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		txns = append(txns, blobTransaction{
			ID:       t.ID,
			Type:     string(t.Kind),
			Amount:   json.Number(t.Amount.String()),
			Category: t.Category,
			Date:     t.Date.UTC().Format(dateLayout),
		})
	}

	monthly := make(map[string]json.Number, len(s.MonthlyExpenses))
	for k, v := range s.MonthlyExpenses {
		monthly[k] = json.Number(v.String())
	}

	darkMode := s.DarkMode
	b := blob{
		Balance:         number(s.CashBalance),
		BankBalance:     number(s.BankBalance),
		Savings:         number(s.Savings),
		Transactions:    &txns,
		DailyTarget:     number(s.DailyTarget),
		DailyAllowance:  number(s.DailyAllowance),
		SavingsGoal:     number(s.SavingsGoal),
		DarkMode:        &darkMode,
		MonthlyExpenses: monthly,
	}

	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// Decode merges the keys present in data into s. Nothing is changed unless
// the whole blob decodes and balance and bankBalance are JSON numbers.
// The monthly expense cache is advisory and is not read back.
func Decode(data []byte, s *model.State) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse ledger: %w", err)
	}
	if !isNumber(raw["balance"]) || !isNumber(raw["bankBalance"]) {
		return fmt.Errorf("%w: balance and bankBalance must be numbers", ErrShape)
	}

	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}

	next := s.Clone()
	fields := []struct {
		src *json.Number
		dst *decimal.Decimal
		key string
	}{
		{b.Balance, &next.CashBalance, "balance"},
		{b.BankBalance, &next.BankBalance, "bankBalance"},
		{b.Savings, &next.Savings, "savings"},
		{b.DailyTarget, &next.DailyTarget, "dailyTarget"},
		{b.DailyAllowance, &next.DailyAllowance, "dailyAllowance"},
		{b.SavingsGoal, &next.SavingsGoal, "savingsGoal"},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v, err := decimal.NewFromString(f.src.String())
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrShape, f.key, err)
		}
		*f.dst = v
	}

	if b.DarkMode != nil {
		next.DarkMode = *b.DarkMode
	}

	if b.Transactions != nil {
		txns, err := decodeTransactions(*b.Transactions)
		if err != nil {
			return err
		}
		next.Transactions = txns
	}

	*s = *next
	return nil
}

func decodeTransactions(in []blobTransaction) ([]model.Transaction, error) {
	out := make([]model.Transaction, 0, len(in))
	for i, bt := range in {
		kind := model.Kind(bt.Type)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: transaction %d: unknown type %q", ErrShape, i, bt.Type)
		}
		amount, err := decimal.NewFromString(bt.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d: amount: %v", ErrShape, i, err)
		}
		date, err := time.Parse(time.RFC3339Nano, bt.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d: date: %v", ErrShape, i, err)
		}
		out = append(out, model.Transaction{
			ID:       bt.ID,
			Kind:     kind,
			Amount:   amount,
			Category: bt.Category,
			Date:     date,
		})
	}
	return out, nil
}

func isNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}
