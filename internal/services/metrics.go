package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	accountsOpened  prometheus.Counter
	accountsClosed  prometheus.Counter
	authEvents      *prometheus.CounterVec
	depositsTotal   prometheus.Counter
	transfersTotal  *prometheus.CounterVec
	transferAmounts prometheus.Histogram
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		accountsOpened: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bank_accounts_opened_total",
				Help: "Total number of card accounts opened",
			},
		),
		accountsClosed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bank_accounts_closed_total",
				Help: "Total number of card accounts closed",
			},
		),
		authEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_authentication_events_total",
				Help: "Total number of authentication attempts by outcome",
			},
			[]string{"outcome"},
		),
		depositsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bank_deposits_total",
				Help: "Total number of completed deposits",
			},
		),
		transfersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_transfers_total",
				Help: "Total number of transfers by status",
			},
			[]string{"status"},
		),
		transferAmounts: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bank_transfer_amount",
				Help:    "Transfer amount in whole currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "account_opened":
		m.accountsOpened.Inc()
	case "account_closed":
		m.accountsClosed.Inc()
	case "deposit_completed":
		m.depositsTotal.Inc()
	case "authentication_event":
		if outcome := tags["outcome"]; outcome != "" {
			m.authEvents.WithLabelValues(outcome).Inc()
		}
	case "transfers_total":
		if status := tags["status"]; status != "" {
			m.transfersTotal.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordAmount(name string, value float64) {
	switch name {
	case "transfer_amount":
		m.transferAmounts.Observe(value)
	}
}
