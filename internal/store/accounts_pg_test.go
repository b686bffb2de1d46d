package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/store"
	"banking-backoffice/internal/testutil"
)

func openStore(t *testing.T) (*store.Store, context.Context) {
	t.Helper()
	return testutil.OpenTestStore(t), context.Background()
}

func mustPutAccount(t *testing.T, st *store.Store, ctx context.Context, balance float64, currency string) account.Account {
	t.Helper()
	a := account.Account{
		ID:        store.NewAccountID(),
		Balance:   balance,
		Currency:  currency,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := st.PutAccount(ctx, a); err != nil {
		t.Fatalf("put account: %v", err)
	}
	return a
}

func TestAccountsPutGetFind(t *testing.T) {
	st, ctx := openStore(t)

	eur := mustPutAccount(t, st, ctx, -50, "EUR")
	usd := mustPutAccount(t, st, ctx, 30, "USD")

	got, err := st.GetAccount(ctx, eur.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.ID != eur.ID || got.Balance != -50 || got.Currency != "EUR" || !got.CreatedAt.Equal(eur.CreatedAt) {
		t.Fatalf("unexpected account: %+v", got)
	}

	debts, err := st.FindAccounts(ctx, account.Filter{InDebt: true})
	if err != nil {
		t.Fatalf("find in debt: %v", err)
	}
	if len(debts) != 1 || debts[0].ID != eur.ID {
		t.Fatalf("unexpected debts: %+v", debts)
	}

	byCcy, err := st.FindAccounts(ctx, account.Filter{Currency: "USD"})
	if err != nil {
		t.Fatalf("find by currency: %v", err)
	}
	if len(byCcy) != 1 || byCcy[0].ID != usd.ID {
		t.Fatalf("unexpected currency match: %+v", byCcy)
	}

	all, err := st.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(all))
	}
}

func TestAccountsPutKeepsCreatedAt(t *testing.T) {
	st, ctx := openStore(t)

	a := mustPutAccount(t, st, ctx, 0, "EUR")
	moved := a
	moved.Balance = 12.5
	moved.Currency = "GBP"
	moved.CreatedAt = a.CreatedAt.Add(48 * time.Hour)
	if err := st.PutAccount(ctx, moved); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := st.GetAccount(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Balance != 12.5 || got.Currency != "GBP" {
		t.Fatalf("replace not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", a.CreatedAt, got.CreatedAt)
	}
}

func TestAccountsUpdateNeverInserts(t *testing.T) {
	st, ctx := openStore(t)

	a := mustPutAccount(t, st, ctx, -3, "EUR")
	a.Balance = 0
	if err := st.UpdateAccount(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got, _ := st.GetAccount(ctx, a.ID); got.Balance != 0 {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := st.DeleteAllAccounts(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if err := st.UpdateAccount(ctx, a); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ok, _ := st.AccountExists(ctx, a.ID); ok {
		t.Fatal("update re-created a deleted account")
	}
}

func TestAccountsDeleteAndExists(t *testing.T) {
	st, ctx := openStore(t)

	a := mustPutAccount(t, st, ctx, 1, "EUR")
	_ = mustPutAccount(t, st, ctx, 2, "EUR")

	ok, err := st.AccountExists(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("expected account to exist, ok=%v err=%v", ok, err)
	}
	if err := st.DeleteAccount(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetAccount(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.DeleteAllAccounts(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	all, err := st.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d", len(all))
	}
}

func TestWagerRoundsRecordAndList(t *testing.T) {
	st, ctx := openStore(t)

	after := 0.0
	if err := st.RecordWagerRound(ctx, store.WagerRound{
		AccountID: "acc-1", Pick: 0, BonusOrDeath: 10, Outcome: "wipeout",
		BalanceBefore: 150000, CurrencyBefore: "EUR", BalanceAfter: &after, CurrencyAfter: "EUR",
	}); err != nil {
		t.Fatalf("record wipeout: %v", err)
	}
	if err := st.RecordWagerRound(ctx, store.WagerRound{
		AccountID: "acc-2", Pick: 0, BonusOrDeath: 1, Outcome: "fatal",
		BalanceBefore: 200000, CurrencyBefore: "EUR",
	}); err != nil {
		t.Fatalf("record fatal: %v", err)
	}

	items, err := st.ListWagerRounds(ctx, store.WagerFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(items))
	}
	fatal, err := st.ListWagerRounds(ctx, store.WagerFilter{AccountID: "acc-2"}, 10, 0)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(fatal) != 1 || fatal[0].Outcome != "fatal" || fatal[0].BalanceAfter != nil {
		t.Fatalf("unexpected filtered rounds: %+v", fatal)
	}
}
