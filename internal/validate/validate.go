// Package validate holds pure predicates over raw user input.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrEmptyAmount   = errors.New("amount is empty")
	ErrMalformed     = errors.New("amount is not a number")
	ErrNotPositive   = errors.New("amount must be greater than zero")
	ErrTooLarge      = errors.New("amount exceeds 1,000,000")
	ErrEmptyKind     = errors.New("transaction type is empty")
	ErrUnknownKind   = errors.New("unknown transaction type")
	ErrEmptyCategory = errors.New("category is empty")
	ErrUnknownAction = errors.New("unknown transfer direction")
)

// ParseAmount parses raw as a positive amount no larger than model.MaxAmount.
// A decimal comma is accepted, but a comma followed by exactly three digits
// after a non-zero whole part reads as a thousands separator and is rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, common.Validation("Invalid amount", ErrEmptyAmount)
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		if looksLikeThousands(s) {
			return decimal.Zero, common.Validation("Invalid amount", fmt.Errorf("%w: %q", ErrMalformed, raw))
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, common.Validation("Invalid amount", fmt.Errorf("%w: %q", ErrMalformed, raw))
	}
	if !amount.IsPositive() {
		return decimal.Zero, common.Validation("Invalid amount", ErrNotPositive)
	}
	if amount.GreaterThan(model.MaxAmount) {
		return decimal.Zero, common.Validation("Invalid amount", ErrTooLarge)
	}
	return amount, nil
}

func looksLikeThousands(s string) bool {
	whole, frac, _ := strings.Cut(s, ",")
	if len(frac) != 3 || strings.Trim(whole, "0+") == "" {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidAmount reports whether raw parses as an amount in (0, 1_000_000].
func IsValidAmount(raw string) bool {
	_, err := ParseAmount(raw)
	return err == nil
}

// IsValidTransactionInput reports whether kind and category are present and
// amount is valid.
func IsValidTransactionInput(kind, amount, category string) bool {
	return strings.TrimSpace(kind) != "" &&
		IsValidAmount(amount) &&
		strings.TrimSpace(category) != ""
}

// ParseKind resolves a user-supplied transaction type.
func ParseKind(raw string) (model.Kind, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", common.Validation("Invalid transaction data", ErrEmptyKind)
	}
	k := model.Kind(s)
	if !k.Valid() {
		return "", common.Validation("Invalid transaction data", fmt.Errorf("%w: %q", ErrUnknownKind, raw))
	}
	return k, nil
}

// Category trims a user-supplied category and rejects empty ones.
func Category(raw string) (string, error) {
	c := strings.TrimSpace(raw)
	if c == "" {
		return "", common.Validation("Invalid transaction data", ErrEmptyCategory)
	}
	return c, nil
}
