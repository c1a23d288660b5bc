package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Spin Metrics
var (
	SpinStateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinStateTransitions,
			Help: HelpTextSpinStateTransitions,
		},
		[]string{LabelFrom, LabelTo},
	)

	SpinsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsStarted,
			Help: HelpTextSpinsStarted,
		},
		[]string{LabelMeaningful},
	)

	SpinOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinOutcomes,
			Help: HelpTextSpinOutcomes,
		},
		[]string{LabelHeadline},
	)

	SpinsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSpinsInFlight,
			Help: HelpTextSpinsInFlight,
		},
	)
)

// Reconciliation Metrics
var (
	ReconcileAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconcileAttempts,
			Help: HelpTextReconcileAttempts,
		},
	)

	ReconcileResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReconcileResults,
			Help: HelpTextReconcileResults,
		},
		[]string{LabelResult},
	)

	ReconcileLateResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconcileLateResults,
			Help: HelpTextReconcileLateResults,
		},
	)
)

// Backend Metrics
var (
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBackendRequestsTotal,
			Help: HelpTextBackendRequestsTotal,
		},
		[]string{LabelOperation, LabelStatus},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameBackendRequestDuration,
			Help:    HelpTextBackendRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelOperation},
	)
)
