// Package metrics provides Prometheus metrics for the EdgeDesk client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// ClientMetrics collects and exposes client-side Prometheus metrics.
type ClientMetrics struct {
	registry *prometheus.Registry

	// API metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	// Dashboard refresh metrics
	RefreshTotal    *prometheus.CounterVec
	RefreshDuration *prometheus.HistogramVec

	// Derived-state metrics
	RecommendationEdge *prometheus.HistogramVec
	TrackingPnL        *prometheus.GaugeVec
	TrackingWinRate    *prometheus.GaugeVec
	TrackingStake      *prometheus.GaugeVec

	// Streaming metrics
	StreamClients prometheus.Gauge
	StreamEvents  *prometheus.CounterVec
}

// NewClientMetrics creates a new client metrics collector on a private
// registry.
func NewClientMetrics() *ClientMetrics {
	registry := prometheus.NewRegistry()

	m := &ClientMetrics{
		registry: registry,

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgedesk_api_requests_total",
				Help: "Total number of API requests issued",
			},
			[]string{"method", "group", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edgedesk_api_request_duration_seconds",
				Help:    "API request round-trip time",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
			},
			[]string{"method", "group"},
		),
		RequestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgedesk_api_request_errors_total",
				Help: "Total number of failed API requests",
			},
			[]string{"group", "kind"},
		),

		RefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgedesk_board_refresh_total",
				Help: "Total number of dashboard refresh runs",
			},
			[]string{"board", "status"},
		),
		RefreshDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edgedesk_board_refresh_duration_seconds",
				Help:    "Time to refresh a dashboard",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"board"},
		),

		RecommendationEdge: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edgedesk_recommendation_edge",
				Help:    "Edge of loaded recommendations",
				Buckets: []float64{0, 0.01, 0.02, 0.03, 0.05, 0.08, 0.12, 0.20, 0.35},
			},
			[]string{"sport"},
		),
		TrackingPnL: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgedesk_tracking_pnl_usd",
				Help: "Tracked profit/loss in USD (can be negative)",
			},
			[]string{"client_id"},
		),
		TrackingWinRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgedesk_tracking_win_rate",
				Help: "Win rate over settled tracked bets (0-1)",
			},
			[]string{"client_id"},
		),
		TrackingStake: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "edgedesk_tracking_total_stake_usd",
				Help: "Total stake across loaded tracked bets",
			},
			[]string{"client_id"},
		),

		StreamClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "edgedesk_stream_clients",
				Help: "Connected WebSocket clients",
			},
		),
		StreamEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edgedesk_stream_events_total",
				Help: "Events broadcast to WebSocket clients",
			},
			[]string{"type"},
		),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestErrors,
		m.RefreshTotal,
		m.RefreshDuration,
		m.RecommendationEdge,
		m.TrackingPnL,
		m.TrackingWinRate,
		m.TrackingStake,
		m.StreamClients,
		m.StreamEvents,
	)

	return m
}

// Registry returns the private registry for promhttp exposure.
func (m *ClientMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTracking updates the tracking gauges from derived stats.
func (m *ClientMetrics) ObserveTracking(clientID string, pnl, winRate, stake decimal.Decimal) {
	m.TrackingPnL.WithLabelValues(clientID).Set(pnl.InexactFloat64())
	m.TrackingWinRate.WithLabelValues(clientID).Set(winRate.InexactFloat64())
	m.TrackingStake.WithLabelValues(clientID).Set(stake.InexactFloat64())
}
