package model

import "github.com/google/uuid"

// NewTransactionID returns a unique, time-ordered transaction id.
func NewTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
