package membership

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the engine. A nil *Metrics records nothing.
type Metrics struct {
	paymentsApplied  *prometheus.CounterVec
	paymentsRejected *prometheus.CounterVec
	remindersSent    prometheus.Counter
	reminderFailures *prometheus.CounterVec
	adminNotices     *prometheus.CounterVec
	scanDuration     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		paymentsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "premiumhub",
			Subsystem: "membership",
			Name:      "payments_applied_total",
			Help:      "Payments applied to membership records by kind (new, early_renewal, lapsed_renewal).",
		}, []string{"kind"}),
		paymentsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "premiumhub",
			Subsystem: "membership",
			Name:      "payments_rejected_total",
			Help:      "Payment events not applied, by reason.",
		}, []string{"reason"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "premiumhub",
			Subsystem: "membership",
			Name:      "reminders_sent_total",
			Help:      "Expiry reminders delivered to members.",
		}),
		reminderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "premiumhub",
			Subsystem: "membership",
			Name:      "reminder_failures_total",
			Help:      "Reminder attempts that failed, by stage (record, gateway, notify).",
		}, []string{"stage"}),
		adminNotices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "premiumhub",
			Subsystem: "membership",
			Name:      "admin_notices_total",
			Help:      "Notices sent to the admin channel, by kind.",
		}, []string{"kind"}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "premiumhub",
			Subsystem: "membership",
			Name:      "scan_duration_seconds",
			Help:      "Duration of full reminder scans.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.paymentsApplied,
			m.paymentsRejected,
			m.remindersSent,
			m.reminderFailures,
			m.adminNotices,
			m.scanDuration,
		)
	}
	return m
}

func (m *Metrics) paymentApplied(kind string) {
	if m != nil {
		m.paymentsApplied.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) paymentRejected(reason string) {
	if m != nil {
		m.paymentsRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) reminderSent() {
	if m != nil {
		m.remindersSent.Inc()
	}
}

func (m *Metrics) reminderFailed(stage string) {
	if m != nil {
		m.reminderFailures.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) adminNotice(kind string) {
	if m != nil {
		m.adminNotices.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) observeScan(d time.Duration) {
	if m != nil {
		m.scanDuration.Observe(d.Seconds())
	}
}
