package ledger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/keylock"
	"banking-backoffice/internal/store"
)

type countingStore struct {
	*store.Memory
	writes    atomic.Int64
	failWrite func(account.Account) error
	afterRead func(id string)
}

func newCountingStore() *countingStore {
	return &countingStore{Memory: store.NewMemory()}
}

func (s *countingStore) GetAccount(ctx context.Context, id string) (account.Account, error) {
	a, err := s.Memory.GetAccount(ctx, id)
	if s.afterRead != nil {
		s.afterRead(id)
	}
	return a, err
}

func (s *countingStore) PutAccount(ctx context.Context, a account.Account) error {
	if err := s.write(a); err != nil {
		return err
	}
	return s.Memory.PutAccount(ctx, a)
}

func (s *countingStore) UpdateAccount(ctx context.Context, a account.Account) error {
	if err := s.write(a); err != nil {
		return err
	}
	return s.Memory.UpdateAccount(ctx, a)
}

func (s *countingStore) write(a account.Account) error {
	if s.failWrite != nil {
		if err := s.failWrite(a); err != nil {
			return err
		}
	}
	s.writes.Add(1)
	return nil
}

func seed(t *testing.T, st *countingStore, id string, balance float64, currency string, created time.Time) {
	t.Helper()
	if err := st.Memory.PutAccount(context.Background(), account.Account{ID: id, Balance: balance, Currency: currency, CreatedAt: created}); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestCreateStartsAtZero(t *testing.T) {
	st := newCountingStore()
	l := New(st, keylock.New())
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Millisecond)
	for _, ccy := range []string{"EUR", "USD", "JPY"} {
		a, err := l.Create(ctx, ccy)
		if err != nil {
			t.Fatalf("create %s: %v", ccy, err)
		}
		after := time.Now().UTC().Add(time.Millisecond)
		if a.Balance != 0 || a.Currency != ccy || a.ID == "" {
			t.Fatalf("unexpected account: %+v", a)
		}
		if a.CreatedAt.Before(before) || a.CreatedAt.After(after) {
			t.Fatalf("created_at %v outside [%v, %v]", a.CreatedAt, before, after)
		}
		got, err := l.Get(ctx, a.ID)
		if err != nil || got != a {
			t.Fatalf("get after create = %+v, %v", got, err)
		}
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	st := newCountingStore()
	seed(t, st, "fixed", 10, "EUR", time.Now())
	l := New(st, keylock.New(), WithIDGenerator(func() string { return "fixed" }))

	_, err := l.Create(context.Background(), "USD")
	if !errors.Is(err, account.ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
	got, _ := st.GetAccount(context.Background(), "fixed")
	if got.Balance != 10 || got.Currency != "EUR" {
		t.Fatalf("existing account overwritten: %+v", got)
	}
}

func TestUnknownIDIsNotFound(t *testing.T) {
	l := New(newCountingStore(), keylock.New())
	ctx := context.Background()

	var nf *account.NotFoundError
	if _, err := l.Get(ctx, "nope"); !errors.As(err, &nf) || nf.ID != "nope" {
		t.Fatalf("get: expected NotFoundError for nope, got %v", err)
	}
	if _, err := l.Update(ctx, "nope", account.Patch{Balance: account.Some(1.0)}); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := l.Delete(ctx, "nope"); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMergesPresentFields(t *testing.T) {
	st := newCountingStore()
	seed(t, st, "a", 10, "EUR", time.Now())
	l := New(st, keylock.New())
	ctx := context.Background()

	got, err := l.Update(ctx, "a", account.Patch{Balance: account.Some(-25.5)})
	if err != nil {
		t.Fatalf("update balance: %v", err)
	}
	if got.Balance != -25.5 || got.Currency != "EUR" {
		t.Fatalf("unexpected after balance patch: %+v", got)
	}
	stored, _ := l.Get(ctx, "a")
	if stored != got {
		t.Fatalf("stored %+v != returned %+v", stored, got)
	}

	got, err = l.Update(ctx, "a", account.Patch{Currency: account.Some("USD")})
	if err != nil {
		t.Fatalf("update currency: %v", err)
	}
	if got.Balance != -25.5 || got.Currency != "USD" {
		t.Fatalf("unexpected after currency patch: %+v", got)
	}
}

func TestUpdateWithUnchangedValueSkipsWrite(t *testing.T) {
	st := newCountingStore()
	seed(t, st, "a", 10, "EUR", time.Now())
	l := New(st, keylock.New())
	ctx := context.Background()

	got, err := l.Update(ctx, "a", account.Patch{Balance: account.Some(10.0), Currency: account.Some("EUR")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Balance != 10 || got.Currency != "EUR" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if n := st.writes.Load(); n != 0 {
		t.Fatalf("expected no writes, got %d", n)
	}

	if _, err := l.Update(ctx, "a", account.Patch{Balance: account.Some(10.0), Currency: account.Some("GBP")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := st.writes.Load(); n != 1 {
		t.Fatalf("expected one write, got %d", n)
	}
}

func TestListByCurrency(t *testing.T) {
	st := newCountingStore()
	now := time.Now()
	seed(t, st, "a", 1, "EUR", now)
	seed(t, st, "b", 2, "USD", now.Add(time.Second))
	seed(t, st, "c", 3, "EUR", now.Add(2*time.Second))
	l := New(st, keylock.New())
	ctx := context.Background()

	items, err := l.ListByCurrency(ctx, "EUR")
	if err != nil {
		t.Fatalf("list EUR: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "c" {
		t.Fatalf("unexpected EUR accounts: %+v", items)
	}

	_, err = l.ListByCurrency(ctx, "CHF")
	var nf *account.NotFoundError
	if !errors.As(err, &nf) || nf.Currency != "CHF" {
		t.Fatalf("expected NotFoundError for CHF, got %v", err)
	}
}

func TestDeleteAndDeleteAll(t *testing.T) {
	st := newCountingStore()
	now := time.Now()
	seed(t, st, "a", 1, "EUR", now)
	seed(t, st, "b", 2, "EUR", now)
	l := New(st, keylock.New())
	ctx := context.Background()

	if err := l.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := l.Get(ctx, "a"); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected a gone, got %v", err)
	}
	if err := l.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if err := l.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all on empty store: %v", err)
	}
	items, _ := l.List(ctx)
	if len(items) != 0 {
		t.Fatalf("expected no accounts, got %d", len(items))
	}
}

func TestUpdateAfterDeleteAllDoesNotRecreate(t *testing.T) {
	st := newCountingStore()
	seed(t, st, "a", 10, "EUR", time.Now())
	l := New(st, keylock.New())
	ctx := context.Background()
	st.afterRead = func(string) {
		st.afterRead = nil
		if err := l.DeleteAll(ctx); err != nil {
			t.Errorf("delete all: %v", err)
		}
	}

	_, err := l.Update(ctx, "a", account.Patch{Balance: account.Some(99.0)})
	var nf *account.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "a" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if all, _ := l.List(ctx); len(all) != 0 {
		t.Fatalf("account came back after DeleteAll: %+v", all)
	}
}

func TestConcurrentUpdatesOnSameAccount(t *testing.T) {
	st := newCountingStore()
	seed(t, st, "a", 0, "EUR", time.Now())
	l := New(st, keylock.New())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 40; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			if _, err := l.Update(ctx, "a", account.Patch{Balance: account.Some(v)}); err != nil {
				t.Errorf("update: %v", err)
			}
		}(float64(i))
	}
	wg.Wait()
	got, _ := l.Get(ctx, "a")
	if got.Balance < 1 || got.Balance > 40 || got.Currency != "EUR" {
		t.Fatalf("unexpected final state: %+v", got)
	}
}
