// Package metrics exports workflow engine activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"campus-portal-api/internal/notify"
)

// Recorder counts engine events. It is registered on the engine as an
// observer.
type Recorder struct {
	transitions   *prometheus.CounterVec
	notifications prometheus.Counter
	fanoutFailed  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "workflow_transitions_total",
			Help:      "Appointment and issue status changes, including creation and deletion.",
		}, []string{"entity", "from", "to"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "notification_writes_total",
			Help:      "Notification records created, edited, read or deleted.",
		}),
		fanoutFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Name:      "fanout_failures_total",
			Help:      "Derived notifications that could not be stored.",
		}, []string{"kind"}),
	}
	reg.MustRegister(r.transitions, r.notifications, r.fanoutFailed)
	return r
}

func (r *Recorder) Transitioned(entity, from, to string) {
	if from == "" {
		from = "none"
	}
	r.transitions.WithLabelValues(entity, from, to).Inc()
}

func (r *Recorder) NotificationsChanged() {
	r.notifications.Inc()
}

func (r *Recorder) FanoutFailed(kind notify.Kind, _ error) {
	r.fanoutFailed.WithLabelValues(string(kind)).Inc()
}
