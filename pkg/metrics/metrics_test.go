package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFetch(time.Second, 3, nil)
		m.SetCursor(42)
		m.IncDispatchFailure()
		m.IncCommand("start", CommandStatusOK)
		m.IncAPIFailure("sendMessage")
		m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
	})
}

func TestMetrics_Fetch(t *testing.T) {
	m := New("test_bot", prometheus.NewRegistry())

	m.ObserveFetch(10*time.Millisecond, 3, nil)
	m.ObserveFetch(10*time.Millisecond, 2, nil)
	m.ObserveFetch(time.Second, 0, errors.New("timeout"))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.updatesFetched))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchErrors))
}

func TestMetrics_CursorAndCommands(t *testing.T) {
	m := New("test_bot", prometheus.NewRegistry())

	m.SetCursor(42)
	m.IncCommand("start", CommandStatusOK)
	m.IncCommand("start", CommandStatusOK)
	m.IncCommand("start", CommandStatusFailed)
	m.IncAPIFailure("deleteMessage")
	m.IncDispatchFailure()

	assert.Equal(t, 42.0, testutil.ToFloat64(m.cursor))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("start", CommandStatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("start", CommandStatusFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiFailures.WithLabelValues("deleteMessage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatchFailures))
}

func TestMetrics_HTTP(t *testing.T) {
	m := New("test_bot", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/webhook/telegram", 200, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/webhook/telegram", "200")))
}
