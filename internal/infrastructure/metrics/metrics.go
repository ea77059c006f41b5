package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by the services and the request middleware.
const (
	UserCreated      = "user_created_total"
	UserCreateFailed = "user_create_failed_total"
	AppRequests      = "app_requests_total"
)

// NewCounter registers the general counter on reg; a nil reg means the
// default prometheus registry.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "userregistry",
			Name:      "general_counters",
			Help:      "Outcomes of user operations and served requests.",
		},
		[]string{"result"})
}
