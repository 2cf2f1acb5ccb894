package http

import (
	"net/http"

	"github.com/mana-gg/arena/internal/admin"
	"github.com/mana-gg/arena/internal/auth"
	"github.com/mana-gg/arena/internal/config"
	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/mirror"
	"github.com/mana-gg/arena/internal/notifier"
	"github.com/mana-gg/arena/internal/pubsub"
	"github.com/mana-gg/arena/internal/refund"
	"github.com/mana-gg/arena/internal/registration"
)

func NewServer(facade auth.Facade, reg *registration.Service, refundStore refund.RefundStore, refunds *refund.Processor, mirrorStore mirror.Store, admins *admin.Table, metricsSvc metrics.Metrics, metricsHandler http.Handler, notifier notifier.Notifier, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Auth:           facade,
		Registration:   reg,
		RefundStore:    refundStore,
		Refunds:        refunds,
		Mirror:         mirrorStore,
		Admins:         admins,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Notifier:       notifier,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("/auth/register", Chain(s.RegisterHandler(), paramsMiddleware))
	s.Router.Handle("/auth/login", Chain(s.LoginHandler(), paramsMiddleware))
	s.Router.Handle("/auth/logout", Chain(s.LogoutHandler(), paramsMiddleware))
	s.Router.Handle("/auth/session", Chain(s.RestoreSessionHandler(), paramsMiddleware))

	s.Router.Handle("/profile", Chain(s.ProfileHandler(), paramsMiddleware))
	s.Router.Handle("/profile/result", Chain(s.RecordResultHandler(), paramsMiddleware))

	s.Router.Handle("/wallet", Chain(s.WalletHandler(), paramsMiddleware))
	s.Router.Handle("/wallet/transactions", Chain(s.TransactionsHandler(), paramsMiddleware))
	s.Router.Handle("/wallet/add-credits", Chain(s.AddCreditsHandler(), paramsMiddleware))

	s.Router.Handle("/registration/options", Chain(s.RegistrationOptionsHandler(), paramsMiddleware))
	s.Router.Handle("/registration/select", Chain(s.RegistrationSelectHandler(), paramsMiddleware))
	s.Router.Handle("/registration/back", Chain(s.RegistrationBackHandler(), paramsMiddleware))
	s.Router.Handle("/registration/state", Chain(s.RegistrationStateHandler(), paramsMiddleware))
	s.Router.Handle("/registration/confirm", Chain(s.RegistrationConfirmHandler(), paramsMiddleware))

	s.Router.Handle("/refunds", Chain(s.SubmitRefundHandler(), paramsMiddleware))

	s.Router.Handle("/admin/players", Chain(s.ListPlayersHandler(), paramsMiddleware, s.adminMiddleware(admin.PermManageUsers)))
	s.Router.Handle("/admin/transactions", Chain(s.PlayerTransactionsHandler(), paramsMiddleware, s.adminMiddleware(admin.PermManageUsers)))
	s.Router.Handle("/admin/risk", Chain(s.RiskReportHandler(), paramsMiddleware, s.adminMiddleware(admin.PermViewAntiCheat)))
	s.Router.Handle("/admin/credit", Chain(s.AdminCreditHandler(), paramsMiddleware, s.adminMiddleware(admin.PermAdjustWallets)))
	s.Router.Handle("/admin/refunds", Chain(s.ListRefundsHandler(), paramsMiddleware, s.adminMiddleware(admin.PermProcessRefunds)))
	s.Router.Handle("/admin/refunds/review", Chain(s.ReviewRefundHandler(), paramsMiddleware, s.adminMiddleware(admin.PermProcessRefunds)))
	s.Router.Handle("/admin/refunds/process", Chain(s.ProcessRefundsHandler(), paramsMiddleware, s.adminMiddleware(admin.PermProcessRefunds)))

	s.Router.Handle("/pubsub/profile-synced", Chain(s.ProfileSyncedHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
