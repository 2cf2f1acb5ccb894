package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_logins_total",
			Help: "The total number of successful logins.",
		}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_match_registrations_total",
			Help: "The total number of confirmed match registrations.",
		}),
		WalletDebits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_wallet_debits_total",
			Help: "The total number of wallet debit operations persisted.",
		}),
		WalletCredits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_wallet_credits_total",
			Help: "The total number of wallet credit operations persisted.",
		}),
		InsufficientFunds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_insufficient_funds_total",
			Help: "The total number of debits rejected for insufficient funds.",
		}),
		VersionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_profile_version_conflicts_total",
			Help: "The total number of profile writes that hit a version conflict.",
		}),
		RefundsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_refunds_processed_total",
			Help: "The total number of refund requests credited back.",
		}),
		RiskEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_risk_evaluations_total",
			Help: "The total number of anti-cheat risk evaluations served.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_notifications_sent_total",
			Help: "The total number of operator notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_notifications_failed_total",
			Help: "The total number of operator notifications that failed to send.",
		}),
		WalletWriteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arena_wallet_write_duration_seconds",
			Help:    "The duration of wallet read-modify-write cycles, retries included.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arena_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Logins,
		s.Registrations,
		s.WalletDebits,
		s.WalletCredits,
		s.InsufficientFunds,
		s.VersionConflicts,
		s.RefundsProcessed,
		s.RiskEvaluations,
		s.NotifSent,
		s.NotifFailed,
		s.WalletWriteDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncLogins() {
	s.Logins.Inc()
}

func (s *Service) IncRegistrations() {
	s.Registrations.Inc()
}

func (s *Service) IncWalletDebits() {
	s.WalletDebits.Inc()
}

func (s *Service) IncWalletCredits() {
	s.WalletCredits.Inc()
}

func (s *Service) IncInsufficientFunds() {
	s.InsufficientFunds.Inc()
}

func (s *Service) IncVersionConflicts() {
	s.VersionConflicts.Inc()
}

func (s *Service) IncRefundsProcessed() {
	s.RefundsProcessed.Inc()
}

func (s *Service) IncRiskEvaluations() {
	s.RiskEvaluations.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) ObserveWalletWriteDuration(duration float64) {
	s.WalletWriteDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
