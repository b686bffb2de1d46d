package httptransport

import "expvar"

var (
	metricWagerRequestsTotal = expvar.NewInt("http_wager_requests_total")
	metricWagerErrorsTotal   = expvar.NewInt("http_wager_errors_total")
)
