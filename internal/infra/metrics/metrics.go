package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups every collector the client exports. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	apiRequests  *prometheus.CounterVec
	apiDuration  *prometheus.HistogramVec
	reports      *prometheus.CounterVec
	reminders    *prometheus.CounterVec
	checkoutRuns *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gympro_api_requests_total",
			Help: "Backend API calls by method, route and HTTP status (0 means transport failure).",
		}, []string{"method", "route", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gympro_api_request_duration_seconds",
			Help:    "Backend API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gympro_reports_exported_total",
			Help: "Exported analytics reports.",
		}, []string{"type", "format", "result"}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gympro_reminders_sent_total",
			Help: "Reminder deliveries by channel and result.",
		}, []string{"channel", "result"}),
		checkoutRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gympro_checkout_outcomes_total",
			Help: "Payment checkout outcomes.",
		}, []string{"outcome"}),
	}
	m.Registry.MustRegister(m.apiRequests, m.apiDuration, m.reports, m.reminders, m.checkoutRuns)
	return m
}

func (m *Metrics) ObserveAPI(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.apiDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

func (m *Metrics) ReportExported(kind, format string, err error) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(kind, format, result(err)).Inc()
}

func (m *Metrics) ReminderSent(channel string, err error) {
	if m == nil {
		return
	}
	m.reminders.WithLabelValues(channel, result(err)).Inc()
}

func (m *Metrics) CheckoutOutcome(outcome string) {
	if m == nil {
		return
	}
	m.checkoutRuns.WithLabelValues(outcome).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
