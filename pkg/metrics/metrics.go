package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry           *prometheus.Registry
	withdrawalRequests *prometheus.CounterVec
	withdrawalRejected prometheus.Counter
	depositsRecorded   prometheus.Counter
	statusTransitions  *prometheus.CounterVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		withdrawalRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "withdrawal_requests_total",
			Help: "Withdrawal requests accepted, by currency",
		}, []string{"currency"}),
		withdrawalRejected: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "withdrawal_requests_rejected_total",
			Help: "Withdrawal proposals rejected by validation",
		}),
		depositsRecorded: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "deposits_recorded_total",
			Help: "Deposit intents recorded",
		}),
		statusTransitions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "withdrawal_status_transitions_total",
			Help: "Withdrawal request status transitions, by outcome",
		}, []string{"outcome"}),
	}
}

func (c *Collector) WithdrawalAccepted(currency string) {
	c.withdrawalRequests.WithLabelValues(currency).Inc()
}

func (c *Collector) WithdrawalRejected() {
	c.withdrawalRejected.Inc()
}

func (c *Collector) DepositRecorded() {
	c.depositsRecorded.Inc()
}

func (c *Collector) StatusTransition(outcome string) {
	c.statusTransitions.WithLabelValues(outcome).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
