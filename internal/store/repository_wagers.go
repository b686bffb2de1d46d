package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

func (s *Store) RecordWagerRound(ctx context.Context, r WagerRound) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO wager_rounds
			(id, account_id, pick, bonus_or_death, outcome, balance_before, currency_before, balance_after, currency_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.AccountID, r.Pick, r.BonusOrDeath, r.Outcome,
		r.BalanceBefore, r.CurrencyBefore, float8PtrParam(r.BalanceAfter), textParam(r.CurrencyAfter),
	)
	return err
}

func (s *Store) ListWagerRounds(ctx context.Context, f WagerFilter, limit, offset int) ([]WagerRound, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, account_id, pick, bonus_or_death, outcome, balance_before, currency_before,
		       balance_after, currency_after, created_at
		FROM wager_rounds
		WHERE ($1::text IS NULL OR account_id = $1)
		  AND ($2::text IS NULL OR outcome = $2)
		ORDER BY id DESC
		LIMIT $3 OFFSET $4`,
		textParam(f.AccountID), textParam(f.Outcome), int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]WagerRound, 0, limit)
	for rows.Next() {
		var (
			r             WagerRound
			balanceAfter  pgtype.Float8
			currencyAfter pgtype.Text
		)
		if err := rows.Scan(&r.ID, &r.AccountID, &r.Pick, &r.BonusOrDeath, &r.Outcome, &r.BalanceBefore,
			&r.CurrencyBefore, &balanceAfter, &currencyAfter, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.BalanceAfter = float8PtrVal(balanceAfter)
		r.CurrencyAfter = textVal(currencyAfter)
		out = append(out, r)
	}
	return out, rows.Err()
}
