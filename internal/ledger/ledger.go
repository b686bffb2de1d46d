package ledger

import (
	"context"
	"errors"
	"time"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/keylock"
	"banking-backoffice/internal/store"

	"github.com/rs/zerolog/log"
)

// Store is the keyed account storage the ledger reads and writes through.
// GetAccount and UpdateAccount return store.ErrNotFound for unknown ids.
// PutAccount inserts; UpdateAccount never does, so a write racing DeleteAll
// cannot bring an account back.
type Store interface {
	GetAccount(ctx context.Context, id string) (account.Account, error)
	ListAccounts(ctx context.Context) ([]account.Account, error)
	FindAccounts(ctx context.Context, f account.Filter) ([]account.Account, error)
	PutAccount(ctx context.Context, a account.Account) error
	UpdateAccount(ctx context.Context, a account.Account) error
	DeleteAccount(ctx context.Context, id string) error
	DeleteAllAccounts(ctx context.Context) error
	AccountExists(ctx context.Context, id string) (bool, error)
}

// Ledger owns read-modify-write over account state. Writes to one account id are
// serialized through locks; different ids proceed independently.
type Ledger struct {
	store Store
	locks *keylock.Map
	now   func() time.Time
	newID func() string
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

func New(st Store, locks *keylock.Map, opts ...Option) *Ledger {
	if locks == nil {
		locks = keylock.New()
	}
	l := &Ledger{
		store: st,
		locks: locks,
		now:   time.Now,
		newID: store.NewAccountID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create opens an account with a zero balance. The currency is expected to be
// validated by the caller.
func (l *Ledger) Create(ctx context.Context, currency string) (account.Account, error) {
	id := l.newID()
	unlock := l.locks.Lock(id)
	defer unlock()

	exists, err := l.store.AccountExists(ctx, id)
	if err != nil {
		return account.Account{}, err
	}
	if exists {
		err := &account.InvariantError{ID: id, Detail: "generated id already present in store"}
		log.Error().Err(err).Str("account_id", id).Msg("account create rejected")
		return account.Account{}, err
	}

	a := account.Account{
		ID:        id,
		Balance:   0,
		Currency:  currency,
		CreatedAt: l.now().UTC().Truncate(time.Microsecond),
	}
	if err := l.store.PutAccount(ctx, a); err != nil {
		return account.Account{}, err
	}
	metricAccountsCreated.Add(1)
	return a, nil
}

func (l *Ledger) Get(ctx context.Context, id string) (account.Account, error) {
	a, err := l.store.GetAccount(ctx, id)
	if err != nil {
		return account.Account{}, mapNotFound(err, id)
	}
	return a, nil
}

func (l *Ledger) List(ctx context.Context) ([]account.Account, error) {
	return l.store.ListAccounts(ctx)
}

// ListByCurrency returns every account in currency. An empty result is reported
// as a NotFoundError rather than an empty slice.
func (l *Ledger) ListByCurrency(ctx context.Context, currency string) ([]account.Account, error) {
	items, err := l.store.FindAccounts(ctx, account.Filter{Currency: currency})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &account.NotFoundError{Currency: currency}
	}
	return items, nil
}

// Update merges patch into the stored account. The store is only written when
// at least one field actually changes.
func (l *Ledger) Update(ctx context.Context, id string, patch account.Patch) (account.Account, error) {
	unlock := l.locks.Lock(id)
	defer unlock()

	a, err := l.store.GetAccount(ctx, id)
	if err != nil {
		return account.Account{}, mapNotFound(err, id)
	}
	if !patch.Apply(&a) {
		return a, nil
	}
	if err := l.store.UpdateAccount(ctx, a); err != nil {
		return account.Account{}, mapNotFound(err, id)
	}
	return a, nil
}

func (l *Ledger) Delete(ctx context.Context, id string) error {
	unlock := l.locks.Lock(id)
	defer unlock()

	exists, err := l.store.AccountExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &account.NotFoundError{ID: id}
	}
	return l.store.DeleteAccount(ctx, id)
}

// DeleteAll takes no per-account locks. Writers that read an account before it
// ran fail with NotFound on their update instead of re-inserting it.
func (l *Ledger) DeleteAll(ctx context.Context) error {
	if err := l.store.DeleteAllAccounts(ctx); err != nil {
		return err
	}
	log.Info().Msg("all accounts deleted")
	return nil
}

func mapNotFound(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &account.NotFoundError{ID: id}
	}
	return err
}
