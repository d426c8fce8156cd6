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

// Claim Pipeline Metrics
var (
	ClaimsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsSubmitted,
			Help: HelpTextClaimsSubmitted,
		},
		[]string{LabelStatus},
	)

	ClaimsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsRejected,
			Help: HelpTextClaimsRejected,
		},
		[]string{LabelReason},
	)

	RiskBlocks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRiskBlocks,
			Help: HelpTextRiskBlocks,
		},
	)

	RewardsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardsSettled,
			Help: HelpTextRewardsSettled,
		},
	)

	RewardsSettledFMH = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardsSettledFMH,
			Help: HelpTextRewardsSettledFMH,
		},
	)

	PendingRewardConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePendingRewardConflict,
			Help: HelpTextPendingRewardConflict,
		},
	)
)

// Economy Metrics
var (
	PoolUsed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePoolUsed,
			Help: HelpTextPoolUsed,
		},
	)

	EconomicFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEconomicFetchFailures,
			Help: HelpTextEconomicFetchFailures,
		},
	)

	BalanceActionsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBalanceActionsRun,
			Help: HelpTextBalanceActionsRun,
		},
		[]string{LabelType, LabelOutcome},
	)
)
