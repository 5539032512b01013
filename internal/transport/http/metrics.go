package httptransport

import "expvar"

var (
	metricStakeReserveTotal     = expvar.NewInt("stake_reserve_total")
	metricStakeReserveConflicts = expvar.NewInt("stake_reserve_conflicts_total")
	metricStakeReserveErrors    = expvar.NewInt("stake_reserve_errors_total")

	metricSessionCompleteTotal  = expvar.NewInt("session_complete_total")
	metricSessionCompleteErrors = expvar.NewInt("session_complete_errors_total")

	metricPayoutMarkPaidTotal = expvar.NewInt("payout_mark_paid_total")
)
