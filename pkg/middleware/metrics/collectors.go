package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.005, 0.05, 0.5, 1, 5, 10},
		},
	)

	totalHttpRequestsToRoute = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_route", Help: "http requests by code, route pattern and method"},
		[]string{"code", "route", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	signups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "activity_signups_total", Help: "successful signups by activity"},
		[]string{"activity"},
	)

	unregistrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "activity_unregistrations_total", Help: "successful unregistrations by activity"},
		[]string{"activity"},
	)

	participants = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "activity_participants", Help: "current roster size by activity"},
		[]string{"activity"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsToRoute,
		totalHttpRequests,
		signups,
		unregistrations,
		participants,
	)
}

// RecordSignup counts a signup and updates the roster gauge.
func RecordSignup(activity string, roster int) {
	signups.WithLabelValues(activity).Inc()
	participants.WithLabelValues(activity).Set(float64(roster))
}

// RecordUnregister counts an unregistration and updates the roster gauge.
func RecordUnregister(activity string, roster int) {
	unregistrations.WithLabelValues(activity).Inc()
	participants.WithLabelValues(activity).Set(float64(roster))
}

// SetParticipants sets the roster gauge, used when the registry is seeded.
func SetParticipants(activity string, roster int) {
	participants.WithLabelValues(activity).Set(float64(roster))
}
