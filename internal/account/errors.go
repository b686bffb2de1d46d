package account

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("account_not_found")
	ErrIneligibleForWager    = errors.New("ineligible_for_wager")
	ErrRandomnessUnavailable = errors.New("randomness_unavailable")
	ErrInvariantViolation    = errors.New("invariant_violation")
)

// NotFoundError describes the id or the filter that matched nothing.
type NotFoundError struct {
	ID       string
	Currency string
	InDebt   bool
}

func (e *NotFoundError) Error() string {
	switch {
	case e.ID != "":
		return fmt.Sprintf("there is no account with id %s", e.ID)
	case e.Currency != "":
		return fmt.Sprintf("there are no accounts with currency %s", e.Currency)
	case e.InDebt:
		return "there are no accounts in debt"
	default:
		return "no matching accounts"
	}
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type IneligibleError struct {
	ID      string
	Balance float64
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("account %s has insufficient funds to wager", e.ID)
}

func (e *IneligibleError) Unwrap() error {
	return ErrIneligibleForWager
}

// RandomnessError wraps the transport or protocol failure of a draw.
type RandomnessError struct {
	ID    string
	Cause error
}

func (e *RandomnessError) Error() string {
	return fmt.Sprintf("random number source unavailable for account %s: %v", e.ID, e.Cause)
}

func (e *RandomnessError) Unwrap() []error {
	return []error{ErrRandomnessUnavailable, e.Cause}
}

type InvariantError struct {
	ID     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("account %s: %s", e.ID, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
