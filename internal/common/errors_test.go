package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError_WrapsKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("Error saving data", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Error saving data: disk full", err.Error())

	var userErr *UserError
	assert.ErrorAs(t, fmt.Errorf("outer: %w", err), &userErr)
	assert.Equal(t, "Error saving data", userErr.UserMessage)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "user error", err: Validation("Invalid amount", nil), want: "Invalid amount"},
		{name: "wrapped user error", err: fmt.Errorf("ctx: %w", Precondition("Insufficient balance", nil)), want: "Insufficient balance"},
		{name: "plain error", err: errors.New("boom"), want: "fallback"},
		{name: "empty message", err: NewUserError("", errors.New("boom")), want: "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "fallback"))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrValidation, KindOf(Validation("x", nil)))
	assert.Equal(t, ErrPrecondition, KindOf(Precondition("x", nil)))
	assert.Equal(t, ErrPersistence, KindOf(Persistence("x", nil)))
	assert.Equal(t, ErrRender, KindOf(Render("x", nil)))
	assert.Nil(t, KindOf(NewUserError("x", nil)))
	assert.Nil(t, KindOf(errors.New("x")))
}
