// Package metrics содержит Prometheus метрики бота.
//
// Нулевой указатель *Metrics допустим: все методы ничего не делают,
// поэтому компоненты не проверяют, включены ли метрики.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Статусы обработки команды
const (
	CommandStatusOK     = "ok"
	CommandStatusFailed = "failed"
)

// Metrics набор метрик опроса обновлений, команд, вызовов Bot API и HTTP
type Metrics struct {
	updatesFetched   prometheus.Counter
	fetchErrors      prometheus.Counter
	fetchDuration    prometheus.Histogram
	dispatchFailures prometheus.Counter
	cursor           prometheus.Gauge
	commands         *prometheus.CounterVec
	apiFailures      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New создаёт и регистрирует метрики с префиксом serviceName
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		updatesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "updates_fetched_total",
			Help:      "Total number of updates received from getUpdates.",
		}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "fetch_errors_total",
			Help:      "Total number of failed getUpdates calls.",
		}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of getUpdates long-poll calls.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		dispatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "dispatch_failures_total",
			Help:      "Total number of updates whose dispatch aborted a batch.",
		}),
		cursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "poll_cursor",
			Help:      "Next update id the poller will request.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "commands_total",
			Help:      "Total number of dispatched commands by command and status.",
		}, []string{"command", "status"}),
		apiFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "api_failures_total",
			Help:      "Total number of failed Bot API calls by operation.",
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.updatesFetched,
		m.fetchErrors,
		m.fetchDuration,
		m.dispatchFailures,
		m.cursor,
		m.commands,
		m.apiFailures,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// ObserveFetch учитывает один вызов getUpdates
func (m *Metrics) ObserveFetch(duration time.Duration, updates int, err error) {
	if m == nil {
		return
	}

	m.fetchDuration.Observe(duration.Seconds())
	if err != nil {
		m.fetchErrors.Inc()
		return
	}
	m.updatesFetched.Add(float64(updates))
}

// SetCursor фиксирует текущее значение курсора
func (m *Metrics) SetCursor(cursor int) {
	if m == nil {
		return
	}

	m.cursor.Set(float64(cursor))
}

// IncDispatchFailure учитывает прерванную обработку пачки обновлений
func (m *Metrics) IncDispatchFailure() {
	if m == nil {
		return
	}

	m.dispatchFailures.Inc()
}

// IncCommand учитывает вызов обработчика команды
func (m *Metrics) IncCommand(command, status string) {
	if m == nil {
		return
	}

	m.commands.WithLabelValues(command, status).Inc()
}

// IncAPIFailure учитывает ошибку вызова Bot API
func (m *Metrics) IncAPIFailure(operation string) {
	if m == nil {
		return
	}

	m.apiFailures.WithLabelValues(operation).Inc()
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
