package ledger

import "expvar"

var (
	metricAccountsCreated = expvar.NewInt("accounts_created_total")
	metricDebtSweeps      = expvar.NewInt("debt_sweeps_total")
	metricAccountsCleared = expvar.NewInt("debt_accounts_cleared_total")
)
