package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	Logins             *prometheus.CounterVec
	TokenVerifications *prometheus.CounterVec
	TokenRefreshes     *prometheus.CounterVec
	RolesResolved      *prometheus.CounterVec
}

// New creates and registers all metrics against reg. Pass
// prometheus.DefaultRegisterer in the process; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fia_auth_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		TokenVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fia_auth_token_verifications_total",
			Help: "Access token verifications by outcome.",
		}, []string{"outcome"}),
		TokenRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fia_auth_token_refreshes_total",
			Help: "Access token refreshes by outcome.",
		}, []string{"outcome"}),
		RolesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fia_auth_roles_resolved_total",
			Help: "Roles resolved at login by role.",
		}, []string{"role"}),
	}
}
