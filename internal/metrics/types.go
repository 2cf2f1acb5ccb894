package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Logins              prometheus.Counter
	Registrations       prometheus.Counter
	WalletDebits        prometheus.Counter
	WalletCredits       prometheus.Counter
	InsufficientFunds   prometheus.Counter
	VersionConflicts    prometheus.Counter
	RefundsProcessed    prometheus.Counter
	RiskEvaluations     prometheus.Counter
	NotifSent           prometheus.Counter
	NotifFailed         prometheus.Counter
	WalletWriteDuration prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}
