package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncLogins()
	IncRegistrations()
	IncWalletDebits()
	IncWalletCredits()
	IncInsufficientFunds()
	IncVersionConflicts()
	IncRefundsProcessed()
	IncRiskEvaluations()
	IncNotifSent()
	IncNotifFailed()
	ObserveWalletWriteDuration(duration float64)
	SetStartupTime(duration float64)
}
