// Package wager runs the balance wager: an eligibility gate, two remote random
// draws, and one of five outcomes applied to the account.
package wager

import (
	"context"
	"errors"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/keylock"
	"banking-backoffice/internal/store"

	"github.com/rs/zerolog/log"
)

// Source returns one uniform integer in [min, max].
type Source interface {
	Draw(ctx context.Context, min, max int) (int, error)
}

type Store interface {
	GetAccount(ctx context.Context, id string) (account.Account, error)
	UpdateAccount(ctx context.Context, a account.Account) error
	DeleteAccount(ctx context.Context, id string) error
}

// Journal records resolved rounds. It is optional.
type Journal interface {
	RecordWagerRound(ctx context.Context, r store.WagerRound) error
}

type Engine struct {
	store   Store
	source  Source
	locks   *keylock.Map
	journal Journal
}

// NewEngine builds an engine. locks must be shared with every other writer of
// the same accounts so a play cannot interleave with an update.
func NewEngine(st Store, src Source, locks *keylock.Map, journal Journal) *Engine {
	if locks == nil {
		locks = keylock.New()
	}
	return &Engine{store: st, source: src, locks: locks, journal: journal}
}

// Play runs one wager on id. The account stays locked from the eligibility check
// until the outcome is written, draws included. If either draw fails nothing is
// written and the error is a *account.RandomnessError.
func (e *Engine) Play(ctx context.Context, id string) (Result, error) {
	unlock := e.locks.Lock(id)
	defer unlock()

	a, err := e.store.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Result{}, &account.NotFoundError{ID: id}
		}
		return Result{}, err
	}
	if a.Balance < MinBalance {
		metricIneligible.Add(1)
		return Result{}, &account.IneligibleError{ID: id, Balance: a.Balance}
	}

	pick, err := e.source.Draw(ctx, 0, PickMax)
	if err != nil {
		return Result{}, e.randomnessFailure(id, err)
	}
	bonusOrDeath, err := e.source.Draw(ctx, 0, BonusOrDeathMax)
	if err != nil {
		return Result{}, e.randomnessFailure(id, err)
	}

	before := a
	outcome := Resolve(pick, bonusOrDeath)
	res := Result{RoundID: store.NewID(), Outcome: outcome, Pick: pick, BonusOrDeath: bonusOrDeath}

	switch outcome {
	case OutcomeNone:
	case OutcomeFatal:
		if err := e.store.DeleteAccount(ctx, id); err != nil {
			return Result{}, err
		}
	default:
		apply(outcome, &a)
		if err := e.store.UpdateAccount(ctx, a); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return Result{}, &account.NotFoundError{ID: id}
			}
			return Result{}, err
		}
		res.Account = &a
	}

	countOutcome(outcome)
	e.record(ctx, res, before)
	log.Info().
		Str("account_id", id).
		Str("round_id", res.RoundID).
		Str("outcome", string(outcome)).
		Int("pick", pick).
		Int("bonus_or_death", bonusOrDeath).
		Float64("balance_before", before.Balance).
		Msg("wager resolved")
	return res, nil
}

func (e *Engine) randomnessFailure(id string, cause error) error {
	metricRandomnessFailures.Add(1)
	log.Warn().Err(cause).Str("account_id", id).Msg("wager draw failed")
	return &account.RandomnessError{ID: id, Cause: cause}
}

func (e *Engine) record(ctx context.Context, res Result, before account.Account) {
	if e.journal == nil {
		return
	}
	round := store.WagerRound{
		ID:             res.RoundID,
		AccountID:      before.ID,
		Pick:           res.Pick,
		BonusOrDeath:   res.BonusOrDeath,
		Outcome:        string(res.Outcome),
		BalanceBefore:  before.Balance,
		CurrencyBefore: before.Currency,
	}
	switch {
	case res.Account != nil:
		bal := res.Account.Balance
		round.BalanceAfter = &bal
		round.CurrencyAfter = res.Account.Currency
	case res.Outcome == OutcomeNone:
		bal := before.Balance
		round.BalanceAfter = &bal
		round.CurrencyAfter = before.Currency
	}
	if err := e.journal.RecordWagerRound(ctx, round); err != nil {
		log.Warn().Err(err).Str("round_id", res.RoundID).Msg("wager journal write failed")
	}
}
