package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AdminsRegistered prometheus.Counter
	Logins           *prometheus.CounterVec
	RobotsCreated    prometheus.Counter
	WastesDetected   prometheus.Counter
	WastesCollected  prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AdminsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastebot_admins_registered_total",
			Help: "Total number of admin accounts registered.",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wastebot_logins_total",
			Help: "Total number of login attempts by outcome.",
		}, []string{"outcome"}),
		RobotsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastebot_robots_created_total",
			Help: "Total number of robots registered.",
		}),
		WastesDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastebot_waste_detections_total",
			Help: "Total number of waste detections reported.",
		}),
		WastesCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wastebot_waste_collections_total",
			Help: "Total number of waste collections confirmed.",
		}),
	}
}

func (m *Metrics) IncrementAdminsRegistered() {
	if m != nil {
		m.AdminsRegistered.Inc()
	}
}

func (m *Metrics) IncrementLogins(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementRobotsCreated() {
	if m != nil {
		m.RobotsCreated.Inc()
	}
}

func (m *Metrics) IncrementWastesDetected() {
	if m != nil {
		m.WastesDetected.Inc()
	}
}

func (m *Metrics) IncrementWastesCollected() {
	if m != nil {
		m.WastesCollected.Inc()
	}
}
