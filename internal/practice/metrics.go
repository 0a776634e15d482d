package practice

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gokatarajesh/exam-prep/internal/mastery"
	"github.com/gokatarajesh/exam-prep/internal/selector"
)

// Metrics records selection activity for the /metrics endpoint.
type Metrics struct {
	sessions       *prometheus.CounterVec
	snapshotErrors prometheus.Counter
	selection      *prometheus.HistogramVec
	poolTiers      *prometheus.CounterVec
}

// NewMetrics registers collectors on reg. A nil reg leaves them unregistered,
// which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "examprep",
			Subsystem: "practice",
			Name:      "sessions_started_total",
			Help:      "Practice sessions started, by selection mode.",
		}, []string{"mode"}),
		snapshotErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "examprep",
			Subsystem: "practice",
			Name:      "snapshot_fetch_failures_total",
			Help:      "Mastery snapshot fetches that failed and fell back to random selection.",
		}),
		selection: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "examprep",
			Subsystem: "practice",
			Name:      "selection_seconds",
			Help:      "Time spent selecting questions, by mode.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"mode"}),
		poolTiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "examprep",
			Subsystem: "practice",
			Name:      "pool_questions_total",
			Help:      "Questions seen in adaptive pools, by mastery tier.",
		}, []string{"tier"}),
	}
	if reg != nil {
		reg.MustRegister(m.sessions, m.snapshotErrors, m.selection, m.poolTiers)
	}
	return m
}

func (m *Metrics) observeSession(mode string, seconds float64) {
	m.sessions.WithLabelValues(mode).Inc()
	m.selection.WithLabelValues(mode).Observe(seconds)
}

func (m *Metrics) observeStats(st selector.Stats) {
	m.poolTiers.WithLabelValues(string(mastery.CategoryNew)).Add(float64(st.New))
	m.poolTiers.WithLabelValues(string(mastery.CategoryLearning)).Add(float64(st.Learning))
	m.poolTiers.WithLabelValues(string(mastery.CategoryStruggling)).Add(float64(st.Struggling))
	m.poolTiers.WithLabelValues(string(mastery.CategoryMastered)).Add(float64(st.Mastered))
}

func (m *Metrics) snapshotFailed() {
	m.snapshotErrors.Inc()
}
