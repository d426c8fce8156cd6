package balance

// Permission scopes per action type
const (
	ScopeMint         = "economic.mint"
	ScopeStop         = "economic.stop"
	ScopeRewardAdjust = "economic.adjust"
	ScopeRiskReset    = "risk.reset"
)

// Parameter keys
const (
	ParamPool       = "pool"
	ParamAmount     = "amount"
	ParamScope      = "scope"
	ParamTTL        = "ttl"
	ParamMultiplier = "multiplier"
	ParamScale      = "scale"
	ParamPlayer     = "player"
)

// DefaultPool is the pool a MINT targets when none is named
const DefaultPool = "daily"

// Log messages
const (
	LogMsgActionCreated  = "Balance action created"
	LogMsgActionExecuted = "Balance action executed"
	LogMsgActionFailed   = "Balance action failed"
	LogMsgActionReplayed = "Balance action already executed, returning prior outcome"
)

// Metric outcome labels
const (
	OutcomeExecuted = "executed"
	OutcomeFailed   = "failed"
	OutcomeReplayed = "replayed"
)
