package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Nonce Operations
const (
	ErrMsgFailedToCheckNonce   = "failed to check nonce"
	ErrMsgFailedToConsumeNonce = "failed to consume nonce"
)

// Error Messages - Economy Operations
const (
	ErrMsgFailedToFetchSnapshot   = "failed to fetch economic snapshot"
	ErrMsgFailedToIncrementPool   = "failed to increment pool usage"
	ErrMsgFailedToResetDailyUsage = "failed to reset daily pool usage"
	ErrMsgFailedToAdjustPool      = "failed to adjust pool balance"
	ErrMsgFailedToSetMultiplier   = "failed to set reward multiplier"
	ErrMsgFailedToGetMultiplier   = "failed to get reward multiplier"
	ErrMsgFailedToSetStopFlag     = "failed to set stop flag"
	ErrMsgFailedToClearStopFlag   = "failed to clear stop flag"
	ErrMsgFailedToGetStopFlags    = "failed to get stop flags"
	ErrMsgFailedToGetActiveEvents = "failed to get active seasonal events"
	ErrMsgFailedToGetPlayerStats  = "failed to get player stats"
)

// Error Messages - Reward Operations
const (
	ErrMsgFailedToCreatePendingReward = "failed to create pending reward"
	ErrMsgFailedToGetPendingReward    = "failed to get pending reward"
	ErrMsgFailedToDeleteExpired       = "failed to delete expired pending rewards"
)

// Error Messages - Balance Action Operations
const (
	ErrMsgFailedToCreateAction = "failed to create balance action"
	ErrMsgFailedToGetAction    = "failed to get balance action"
	ErrMsgFailedToClaimAction  = "failed to claim balance action execution"
	ErrMsgFailedToMarkExecuted = "failed to mark balance action executed"
	ErrMsgFailedToMarkFailed   = "failed to mark balance action failed"
)

// Error Messages - Risk Profile Operations
const (
	ErrMsgFailedToLoadProfile  = "failed to load risk profile"
	ErrMsgFailedToSaveProfile  = "failed to save risk profile"
	ErrMsgFailedToResetProfile = "failed to reset risk profile"
)
