package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Claim pipeline metric names
const (
	MetricNameClaimsSubmitted       = "reward_claims_submitted_total"
	MetricNameClaimsRejected        = "reward_claims_rejected_total"
	MetricNameRiskBlocks            = "risk_blocks_total"
	MetricNameRewardsSettled        = "rewards_settled_total"
	MetricNameRewardsSettledFMH     = "rewards_settled_fmh_total"
	MetricNamePendingRewardConflict = "pending_reward_conflicts_total"
)

// Economy metric names
const (
	MetricNamePoolUsed              = "reward_pool_used_fmh"
	MetricNameEconomicFetchFailures = "economic_fetch_failures_total"
	MetricNameBalanceActionsRun     = "balance_actions_executed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextClaimsSubmitted       = "Total number of reward claims submitted"
	HelpTextClaimsRejected        = "Total number of reward claims rejected, by reason"
	HelpTextRiskBlocks            = "Total number of payouts blocked by the risk engine"
	HelpTextRewardsSettled        = "Total number of pending rewards created"
	HelpTextRewardsSettledFMH     = "Total FMH promised in pending rewards"
	HelpTextPendingRewardConflict = "Total claim retries that observed an existing pending reward"

	HelpTextPoolUsed              = "FMH drawn from today's reward pool"
	HelpTextEconomicFetchFailures = "Total economic snapshot fetches that fell back"
	HelpTextBalanceActionsRun     = "Total balance actions executed, by type and outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelReason  = "reason"
	LabelType    = "type"
	LabelOutcome = "outcome"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
