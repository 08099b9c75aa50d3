package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAssistantMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAssistantMetrics(reg)

	m.ObserveAnswer("appointment")
	m.ObserveAnswer("appointment")
	m.ObserveAnswer("generated")
	m.ObserveUpload("unsupported")
	m.ObserveHistoryWriteFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.answersTotal.WithLabelValues("appointment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.answersTotal.WithLabelValues("generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploadsTotal.WithLabelValues("unsupported")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.historyWriteFailure))
}

func TestAssistantMetrics_NilSafe(t *testing.T) {
	var m *AssistantMetrics
	assert.NotPanics(t, func() {
		m.ObserveAnswer("generated")
		m.ObserveUpload("failed")
		m.ObserveHistoryWriteFailure()
	})
}
