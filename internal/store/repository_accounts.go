package store

import (
	"context"

	"banking-backoffice/internal/account"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `id::text, balance, currency, created_at`

func scanAccount(row pgx.Row) (account.Account, error) {
	var a account.Account
	if err := row.Scan(&a.ID, &a.Balance, &a.Currency, &a.CreatedAt); err != nil {
		return account.Account{}, err
	}
	return a, nil
}

func collectAccounts(rows pgx.Rows) ([]account.Account, error) {
	defer rows.Close()
	out := make([]account.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetAccount(ctx context.Context, id string) (account.Account, error) {
	a, err := scanAccount(s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1::uuid`, id))
	if err != nil {
		return account.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]account.Account, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

func (s *Store) FindAccounts(ctx context.Context, f account.Filter) ([]account.Account, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE ($1::text IS NULL OR currency = $1)
		  AND (NOT $2::boolean OR balance < 0)
		ORDER BY created_at, id`,
		textParam(f.Currency), f.InDebt,
	)
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

// PutAccount inserts or replaces by id. created_at is only written on insert.
func (s *Store) PutAccount(ctx context.Context, a account.Account) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO accounts (id, balance, currency, created_at)
		VALUES ($1::uuid, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET balance = EXCLUDED.balance, currency = EXCLUDED.currency`,
		a.ID, a.Balance, a.Currency, a.CreatedAt,
	)
	return err
}

// UpdateAccount overwrites balance and currency of an existing row. It never
// inserts; a missing row is ErrNotFound.
func (s *Store) UpdateAccount(ctx context.Context, a account.Account) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE accounts SET balance = $2, currency = $3 WHERE id = $1::uuid`,
		a.ID, a.Balance, a.Currency,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1::uuid`, id)
	return err
}

func (s *Store) DeleteAllAccounts(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM accounts`)
	return err
}

func (s *Store) AccountExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1::uuid)`, id).Scan(&ok)
	return ok, err
}
