package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animal_hospitality_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "animal_hospitality_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	emergenciesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animal_hospitality_emergencies_created_total",
		Help: "Emergency report submissions by result",
	}, []string{"result"})

	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animal_hospitality_status_transitions_total",
		Help: "Emergency status transition attempts",
	}, []string{"from", "to", "result"})

	relayClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "animal_hospitality_relay_clients",
		Help: "Connected notification relay clients",
	})

	relayDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "animal_hospitality_relay_dropped_total",
		Help: "Relay events dropped for slow or gone clients",
	}, []string{"event"})

	auditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "animal_hospitality_audit_dropped_total",
		Help: "Audit events dropped because the queue was full",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveEmergencyCreated uses result "created", "no_vet" or "error".
func ObserveEmergencyCreated(result string) {
	emergenciesCreated.WithLabelValues(result).Inc()
}

func ObserveStatusTransition(from, to, result string) {
	statusTransitions.WithLabelValues(from, to, result).Inc()
}

func RelayClientConnected()    { relayClients.Inc() }
func RelayClientDisconnected() { relayClients.Dec() }

func ObserveRelayDropped(event string) {
	relayDropped.WithLabelValues(event).Inc()
}

func ObserveAuditDropped() {
	auditDropped.Inc()
}
