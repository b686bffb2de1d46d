package account

import (
	"errors"
	"io"
	"testing"
)

func TestPatchApplyOverwritesOnlyDifferingFields(t *testing.T) {
	tests := []struct {
		name        string
		patch       Patch
		wantBalance float64
		wantCcy     string
		wantChanged bool
	}{
		{"balance only", Patch{Balance: Some(42.5)}, 42.5, "EUR", true},
		{"currency only", Patch{Currency: Some("USD")}, 10, "USD", true},
		{"both", Patch{Balance: Some(-3.0), Currency: Some("GBP")}, -3, "GBP", true},
		{"same balance", Patch{Balance: Some(10.0)}, 10, "EUR", false},
		{"same currency", Patch{Currency: Some("EUR")}, 10, "EUR", false},
		{"empty", Patch{}, 10, "EUR", false},
	}
	for _, tt := range tests {
		a := Account{ID: "a", Balance: 10, Currency: "EUR"}
		changed := tt.patch.Apply(&a)
		if changed != tt.wantChanged {
			t.Fatalf("%s: changed = %v, want %v", tt.name, changed, tt.wantChanged)
		}
		if a.Balance != tt.wantBalance || a.Currency != tt.wantCcy {
			t.Fatalf("%s: got %+v", tt.name, a)
		}
	}
}

func TestPatchEmpty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
	if (Patch{Balance: Some(0.0)}).Empty() {
		t.Fatal("patch with explicit zero balance should not be empty")
	}
}

func TestFilterMatch(t *testing.T) {
	debt := Account{Balance: -1, Currency: "EUR"}
	credit := Account{Balance: 5, Currency: "USD"}

	if !(Filter{InDebt: true}).Match(debt) || (Filter{InDebt: true}).Match(credit) {
		t.Fatal("debt filter mismatch")
	}
	if !(Filter{Currency: "USD"}).Match(credit) || (Filter{Currency: "USD"}).Match(debt) {
		t.Fatal("currency filter mismatch")
	}
	if !(Filter{}).Match(debt) {
		t.Fatal("empty filter should match everything")
	}
}

func TestErrorKinds(t *testing.T) {
	if !errors.Is(&NotFoundError{ID: "x"}, ErrNotFound) {
		t.Fatal("NotFoundError should unwrap to ErrNotFound")
	}
	if !errors.Is(&IneligibleError{ID: "x"}, ErrIneligibleForWager) {
		t.Fatal("IneligibleError should unwrap to ErrIneligibleForWager")
	}
	err := error(&RandomnessError{ID: "x", Cause: io.ErrUnexpectedEOF})
	if !errors.Is(err, ErrRandomnessUnavailable) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("RandomnessError should unwrap to kind and cause")
	}
	if !errors.Is(&InvariantError{ID: "x"}, ErrInvariantViolation) {
		t.Fatal("InvariantError should unwrap to ErrInvariantViolation")
	}
}

func TestNotFoundMessages(t *testing.T) {
	tests := []struct {
		err  *NotFoundError
		want string
	}{
		{&NotFoundError{ID: "abc"}, "there is no account with id abc"},
		{&NotFoundError{Currency: "EUR"}, "there are no accounts with currency EUR"},
		{&NotFoundError{InDebt: true}, "there are no accounts in debt"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("Error() = %q, want %q", got, tt.want)
		}
	}
}
