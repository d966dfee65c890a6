// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Every error that reaches a user is wrapped around exactly one of these.
var (
	// ErrValidation marks bad or missing user input.
	ErrValidation = errors.New("validation failed")
	// ErrPrecondition marks a domain precondition failure such as insufficient funds.
	ErrPrecondition = errors.New("precondition failed")
	// ErrPersistence marks a blob store read or write failure.
	ErrPersistence = errors.New("persistence failed")
	// ErrRender marks a missing or unusable presentation target.
	ErrRender = errors.New("render failed")
)

// Common application errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Kind        error
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *UserError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Validation returns a user error of kind ErrValidation.
func Validation(userMessage string, err error) error {
	return &UserError{Kind: ErrValidation, UserMessage: userMessage, Err: err}
}

// Precondition returns a user error of kind ErrPrecondition.
func Precondition(userMessage string, err error) error {
	return &UserError{Kind: ErrPrecondition, UserMessage: userMessage, Err: err}
}

// Persistence returns a user error of kind ErrPersistence.
func Persistence(userMessage string, err error) error {
	return &UserError{Kind: ErrPersistence, UserMessage: userMessage, Err: err}
}

// Render returns a user error of kind ErrRender.
func Render(userMessage string, err error) error {
	return &UserError{Kind: ErrRender, UserMessage: userMessage, Err: err}
}

// UserMessage returns the message meant for the user. Errors that are not
// UserErrors fall back to the supplied message.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) && userErr.UserMessage != "" {
		return userErr.UserMessage
	}
	return fallback
}

// KindOf reports which error kind err carries, or nil.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrPrecondition, ErrPersistence, ErrRender} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
