package ledger

import (
	"context"
	"errors"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/store"

	"github.com/rs/zerolog/log"
)

// ClearDebts zeroes every account that was in debt when the sweep started and
// returns them in their cleared state.
//
// Each account is locked, re-read and written on its own. Accounts deleted or
// brought out of debt after the scan are skipped. A store error stops the sweep;
// accounts already cleared stay cleared and a second call picks up the rest.
func (l *Ledger) ClearDebts(ctx context.Context) ([]account.Account, error) {
	snapshot, err := l.store.FindAccounts(ctx, account.Filter{InDebt: true})
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, &account.NotFoundError{InDebt: true}
	}
	metricDebtSweeps.Add(1)

	cleared := make([]account.Account, 0, len(snapshot))
	for _, candidate := range snapshot {
		a, ok, err := l.clearOne(ctx, candidate.ID)
		if err != nil {
			log.Error().Err(err).Str("account_id", candidate.ID).Int("cleared", len(cleared)).Msg("debt sweep interrupted")
			return nil, err
		}
		if ok {
			cleared = append(cleared, a)
		}
	}
	metricAccountsCleared.Add(int64(len(cleared)))
	log.Info().Int("scanned", len(snapshot)).Int("cleared", len(cleared)).Msg("debt sweep finished")
	return cleared, nil
}

func (l *Ledger) clearOne(ctx context.Context, id string) (account.Account, bool, error) {
	unlock := l.locks.Lock(id)
	defer unlock()

	a, err := l.store.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return account.Account{}, false, nil
		}
		return account.Account{}, false, err
	}
	if !a.InDebt() {
		return account.Account{}, false, nil
	}
	a.Balance = 0
	if err := l.store.UpdateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return account.Account{}, false, nil
		}
		return account.Account{}, false, err
	}
	return a, true, nil
}
