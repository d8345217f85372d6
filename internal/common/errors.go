// Package common defines sentinel errors shared by the NutriTrack core
// packages. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Session errors.
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidUser     = errors.New("user id is required")

	// Store errors. Every failed read or write against the store is wrapped
	// with ErrPersistence before it leaves the core.
	ErrPersistence = errors.New("persistence failure")

	// Validation errors for enumerated fields.
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrInvalidCategory = errors.New("invalid health issue category")
	ErrInvalidSeverity = errors.New("invalid severity")
	ErrInvalidAdvice   = errors.New("invalid recommendation type")

	// Identity errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Recognition errors.
	ErrNoFoodDetected = errors.New("no food detected")
)

// Persistence wraps err so that it matches both ErrPersistence and err.
// A nil err stays nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, errors.Join(ErrPersistence, err))
}
