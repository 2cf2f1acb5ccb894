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

type Server struct {
	Auth           auth.Facade
	Registration   *registration.Service
	RefundStore    refund.RefundStore
	Refunds        *refund.Processor
	Mirror         mirror.Store
	Admins         *admin.Table
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
