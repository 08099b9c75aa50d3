package metrics

import "github.com/prometheus/client_golang/prometheus"

// AssistantMetrics exposes counters for chat answers, uploads and history writes.
type AssistantMetrics struct {
	answersTotal        *prometheus.CounterVec
	uploadsTotal        *prometheus.CounterVec
	historyWriteFailure prometheus.Counter
}

func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	m := &AssistantMetrics{
		answersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nidhaan",
			Subsystem: "assistant",
			Name:      "answers_total",
			Help:      "Text answers by source (rule name, generated, generation_failed)",
		}, []string{"source"}),
		uploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nidhaan",
			Subsystem: "assistant",
			Name:      "uploads_total",
			Help:      "Document uploads by outcome",
		}, []string{"outcome"}),
		historyWriteFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nidhaan",
			Subsystem: "history",
			Name:      "write_failures_total",
			Help:      "Chat turns that could not be persisted",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.answersTotal, m.uploadsTotal, m.historyWriteFailure)
	return m
}

func (m *AssistantMetrics) ObserveAnswer(source string) {
	if m == nil {
		return
	}
	m.answersTotal.WithLabelValues(source).Inc()
}

func (m *AssistantMetrics) ObserveUpload(outcome string) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(outcome).Inc()
}

func (m *AssistantMetrics) ObserveHistoryWriteFailure() {
	if m == nil {
		return
	}
	m.historyWriteFailure.Inc()
}
