package account

import "time"

// Account is a single ledger record. ID and CreatedAt never change after creation.
type Account struct {
	ID        string    `json:"id"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// InDebt reports whether the balance is negative.
func (a Account) InDebt() bool {
	return a.Balance < 0
}

// Filter selects accounts. Zero fields do not constrain the match.
type Filter struct {
	Currency string
	InDebt   bool
}

func (f Filter) Match(a Account) bool {
	if f.Currency != "" && a.Currency != f.Currency {
		return false
	}
	if f.InDebt && !a.InDebt() {
		return false
	}
	return true
}

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

// Patch is a partial update. Absent fields leave the stored value untouched.
type Patch struct {
	Balance  Optional[float64]
	Currency Optional[string]
}

func (p Patch) Empty() bool {
	return !p.Balance.IsSet() && !p.Currency.IsSet()
}

// Apply merges p into a, overwriting only fields whose value differs.
// It reports whether anything changed.
func (p Patch) Apply(a *Account) bool {
	changed := false
	if v, ok := p.Balance.Get(); ok && v != a.Balance {
		a.Balance = v
		changed = true
	}
	if v, ok := p.Currency.Get(); ok && v != a.Currency {
		a.Currency = v
		changed = true
	}
	return changed
}
