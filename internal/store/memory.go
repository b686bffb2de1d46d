package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"banking-backoffice/internal/account"
)

// Memory is an in-process store used when no database is configured and in tests.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
	rounds   []WagerRound
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]account.Account)}
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) GetAccount(_ context.Context, id string) (account.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) ListAccounts(ctx context.Context) ([]account.Account, error) {
	return m.FindAccounts(ctx, account.Filter{})
}

func (m *Memory) FindAccounts(_ context.Context, f account.Filter) ([]account.Account, error) {
	m.mu.RLock()
	out := make([]account.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	m.mu.RUnlock()
	sortAccounts(out)
	return out, nil
}

func (m *Memory) PutAccount(_ context.Context, a account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.accounts[a.ID]; ok {
		a.CreatedAt = prev.CreatedAt
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *Memory) UpdateAccount(_ context.Context, a account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.accounts[a.ID]
	if !ok {
		return ErrNotFound
	}
	prev.Balance = a.Balance
	prev.Currency = a.Currency
	m.accounts[a.ID] = prev
	return nil
}

func (m *Memory) DeleteAccount(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.accounts, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeleteAllAccounts(context.Context) error {
	m.mu.Lock()
	m.accounts = make(map[string]account.Account)
	m.mu.Unlock()
	return nil
}

func (m *Memory) AccountExists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	_, ok := m.accounts[id]
	m.mu.RUnlock()
	return ok, nil
}

func (m *Memory) RecordWagerRound(_ context.Context, r WagerRound) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	m.rounds = append(m.rounds, r)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListWagerRounds(_ context.Context, f WagerFilter, limit, offset int) ([]WagerRound, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]WagerRound, 0, limit)
	skipped := 0
	for i := len(m.rounds) - 1; i >= 0 && len(out) < limit; i-- {
		r := m.rounds[i]
		if f.AccountID != "" && r.AccountID != f.AccountID {
			continue
		}
		if f.Outcome != "" && r.Outcome != f.Outcome {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func sortAccounts(items []account.Account) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
