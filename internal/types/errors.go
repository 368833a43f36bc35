package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Wager and round errors
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrRoundInProgress   ErrorCode = "ROUND_IN_PROGRESS"
	ErrNoRoundInProgress ErrorCode = "NO_ROUND_IN_PROGRESS"

	// Reward errors
	ErrTooSoon     ErrorCode = "TOO_SOON"
	ErrNotEligible ErrorCode = "NOT_ELIGIBLE"

	// Shop errors
	ErrAlreadyOwned ErrorCode = "ALREADY_OWNED"
	ErrNotOwned     ErrorCode = "NOT_OWNED"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Action errors
	ErrInvalidAction   ErrorCode = "INVALID_ACTION"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// System errors
	ErrCorruptState ErrorCode = "CORRUPT_STATE"
	ErrStorageError ErrorCode = "STORAGE_ERROR"
)

// GameError represents a rejected player action or a recoverable system fault
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if an error is a GameError and has a specific code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if err == nil {
		return false
	}
	if ok := As(err, &gameErr); !ok {
		return false
	}
	return gameErr.Code == code
}

// CodeOf returns the code of the outermost GameError in err's chain, or "" if there is none
func CodeOf(err error) ErrorCode {
	var gameErr *GameError
	if !As(err, &gameErr) {
		return ""
	}
	return gameErr.Code
}

// As finds the first GameError in err's chain
func As(err error, target **GameError) bool {
	if target == nil || err == nil {
		return false
	}
	return errors.As(err, target)
}
