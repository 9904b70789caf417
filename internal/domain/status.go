package domain

import (
	"errors"
	"fmt"
)

// WithdrawalStatus is the lifecycle state of a withdrawal request. The core
// creates requests in StatusPending; the fulfillment side advances them and
// must call CheckTransition before persisting any change.
type WithdrawalStatus string

const (
	StatusPending    WithdrawalStatus = "pending"
	StatusProcessing WithdrawalStatus = "processing"
	StatusCompleted  WithdrawalStatus = "completed"
	StatusFailed     WithdrawalStatus = "failed"
)

var (
	// ErrTerminalState guards against double-fulfillment: completed and
	// failed requests never change again.
	ErrTerminalState     = errors.New("withdrawal request is in a terminal state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownStatus     = errors.New("unknown withdrawal status")
)

func (s WithdrawalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

func (s WithdrawalStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var allowedTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// CheckTransition reports whether moving a request from current to next is
// legal. Transitions out of a terminal state return ErrTerminalState so the
// caller can log them loudly instead of silently succeeding.
func CheckTransition(current, next WithdrawalStatus) error {
	if !current.Valid() || !next.Valid() {
		return fmt.Errorf("%w: %q -> %q", ErrUnknownStatus, current, next)
	}
	if current.Terminal() {
		return fmt.Errorf("%w: %q -> %q", ErrTerminalState, current, next)
	}
	for _, s := range allowedTransitions[current] {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, current, next)
}
