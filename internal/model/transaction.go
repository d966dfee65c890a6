// Package model defines the ledger's domain types.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind says which way a transaction moves money.
type Kind string

// Transaction kinds.
const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindSavings Kind = "savings"
)

// Categories used for system-generated transactions.
const (
	CategoryBankTransfer = "bank_transfer"
	CategoryDeposit      = "deposit"
)

// Kinds lists every known kind in display order.
var Kinds = []Kind{KindIncome, KindExpense, KindSavings}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindSavings:
		return true
	default:
		return false
	}
}

// Sign returns "+" for money coming in and "-" otherwise.
func (k Kind) Sign() string {
	if k == KindIncome {
		return "+"
	}
	return "-"
}

// Transaction is an immutable, dated, typed monetary event.
// Amount is always positive; direction comes from Kind.
type Transaction struct {
	Date     time.Time
	Amount   decimal.Decimal
	ID       string
	Kind     Kind
	Category string
}

// IsBankTransfer reports whether the transaction was generated by a bank transfer.
func (t Transaction) IsBankTransfer() bool {
	return t.Category == CategoryBankTransfer
}
