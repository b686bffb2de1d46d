package wager

import "banking-backoffice/internal/account"

const (
	// MinBalance is the lowest balance, in the account's own currency, allowed to play.
	MinBalance = 100000.0

	PickMax         = 5
	BonusOrDeathMax = 20

	// DevaluedCurrency replaces the account currency on a devaluation outcome.
	DevaluedCurrency = "RMB"

	// Deceased is the marker returned instead of an account after a fatal outcome.
	Deceased = "deceased"
)

type Outcome string

const (
	OutcomeFatal       Outcome = "fatal"
	OutcomeWipeout     Outcome = "wipeout"
	OutcomeWindfall    Outcome = "windfall"
	OutcomeDevaluation Outcome = "devaluation"
	OutcomeNone        Outcome = "none"
)

// Resolve maps the two draws to an outcome. The meaning of bonusOrDeath depends on
// whether pick is zero, so the branches must be checked in this order.
func Resolve(pick, bonusOrDeath int) Outcome {
	if pick == 0 {
		if bonusOrDeath <= 3 {
			return OutcomeFatal
		}
		return OutcomeWipeout
	}
	if bonusOrDeath < 2 {
		if pick == PickMax {
			return OutcomeWindfall
		}
		return OutcomeDevaluation
	}
	return OutcomeNone
}

// apply mutates a for the balance-changing outcomes.
func apply(o Outcome, a *account.Account) {
	switch o {
	case OutcomeWipeout:
		a.Balance = 0
	case OutcomeWindfall:
		a.Balance = a.Balance * 1.5
	case OutcomeDevaluation:
		a.Balance = a.Balance / 5.0
		a.Currency = DevaluedCurrency
	}
}

// Result is what a single play produced. Account is set only when the account
// survived with a new state.
type Result struct {
	RoundID      string           `json:"round_id"`
	Outcome      Outcome          `json:"outcome"`
	Pick         int              `json:"pick"`
	BonusOrDeath int              `json:"bonus_or_death"`
	Account      *account.Account `json:"account,omitempty"`
}

func (r Result) Tombstone() bool {
	return r.Outcome == OutcomeFatal
}

func (r Result) NoOutcome() bool {
	return r.Outcome == OutcomeNone
}
