package wager

import "expvar"

var (
	metricOutcomes           = expvar.NewMap("wager_outcomes_total")
	metricIneligible         = expvar.NewInt("wager_ineligible_total")
	metricRandomnessFailures = expvar.NewInt("wager_randomness_failures_total")
)

func countOutcome(o Outcome) {
	metricOutcomes.Add(string(o), 1)
}
