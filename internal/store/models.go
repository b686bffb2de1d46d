package store

import "time"

type WagerRound struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"account_id"`
	Pick           int       `json:"pick"`
	BonusOrDeath   int       `json:"bonus_or_death"`
	Outcome        string    `json:"outcome"`
	BalanceBefore  float64   `json:"balance_before"`
	CurrencyBefore string    `json:"currency_before"`
	BalanceAfter   *float64  `json:"balance_after,omitempty"`
	CurrencyAfter  string    `json:"currency_after,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type WagerFilter struct {
	AccountID string
	Outcome   string
}
