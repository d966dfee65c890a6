package engine

import (
	"context"

	"github.com/Veraticus/tally/internal/model"
)

// Saver persists the ledger after a mutation. Implementations report their
// own failures to the user; the engine only records that the save failed.
type Saver interface {
	Save(ctx context.Context, s *model.State) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Confirmed approves every prompt. Use it when the presentation layer has
// already asked.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})
