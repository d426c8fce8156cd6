package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Reward Sweep Job
// ============================================================================

// Log messages for expired pending reward cleanup
const (
	LogMsgRewardSweepCompleted = "Expired pending rewards swept"
	LogMsgRewardSweepFailed    = "Pending reward sweep failed"
)

// ============================================================================
// Log Messages - Daily Reset Worker
// ============================================================================

// Log messages for daily pool reset worker operations
const (
	LogMsgDailyResetStarting  = "Daily pool reset starting"
	LogMsgDailyResetCompleted = "Daily pool reset completed"
	LogMsgDailyResetFailed    = "Daily pool reset failed"
	LogMsgDailyResetStandby   = "Daily pool reset in standby"
	LogMsgDailyResetApproach  = "Daily pool reset scheduled"
)
