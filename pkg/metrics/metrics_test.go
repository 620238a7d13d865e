package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg, "test")

	m.ObserveBackendCall("get_by_status", OutcomeSuccess, 10*time.Millisecond)
	m.ObserveBackendCall("get_by_status", OutcomeSuccess, 20*time.Millisecond)
	m.IncAllocation(AllocationSucceeded)
	m.SetActiveSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.backendCallsTotal.WithLabelValues("get_by_status", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.allocationsTotal.WithLabelValues(AllocationSucceeded)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveBackendCall("op", OutcomeError, time.Millisecond)
		m.IncAllocation(AllocationFailed)
		m.SetActiveSessions(1)
	})
}
