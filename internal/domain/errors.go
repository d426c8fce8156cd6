package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Claim authentication errors
	ErrMsgExpiredTimestamp = "invalid timestamp"
	ErrMsgReplayedNonce    = "nonce already used"
	ErrMsgInvalidSignature = "invalid signature"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Rate limiting
	ErrMsgRateLimited = "rate limit exceeded"

	// Admin errors
	ErrMsgUnknownAdminToken   = "unknown admin token"
	ErrMsgPermissionDenied    = "insufficient permission"
	ErrMsgUnsupportedAction   = "unsupported action type"
	ErrMsgInvalidActionParams = "invalid action parameters"

	// Balance action errors
	ErrMsgActionNotFound      = "balance action not found"
	ErrMsgActionNotExecutable = "balance action is not executable"

	// Economic/persistence errors
	ErrMsgEconomicUnavailable = "economic state unavailable"
	ErrMsgPoolNotFound        = "reward pool not found"
	ErrMsgProfileNotFound     = "risk profile not found"
	ErrMsgStatsNotFound       = "player stats not found"
	ErrMsgRewardNotFound      = "pending reward not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Claim authentication errors
	ErrExpiredTimestamp = errors.New(ErrMsgExpiredTimestamp)
	ErrReplayedNonce    = errors.New(ErrMsgReplayedNonce)
	ErrInvalidSignature = errors.New(ErrMsgInvalidSignature)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Rate limiting
	ErrRateLimited = errors.New(ErrMsgRateLimited)

	// Admin errors
	ErrUnknownAdminToken   = errors.New(ErrMsgUnknownAdminToken)
	ErrPermissionDenied    = errors.New(ErrMsgPermissionDenied)
	ErrUnsupportedAction   = errors.New(ErrMsgUnsupportedAction)
	ErrInvalidActionParams = errors.New(ErrMsgInvalidActionParams)

	// Balance action errors
	ErrActionNotFound      = errors.New(ErrMsgActionNotFound)
	ErrActionNotExecutable = errors.New(ErrMsgActionNotExecutable)

	// Economic/persistence errors
	ErrEconomicUnavailable = errors.New(ErrMsgEconomicUnavailable)
	ErrPoolNotFound        = errors.New(ErrMsgPoolNotFound)
	ErrProfileNotFound     = errors.New(ErrMsgProfileNotFound)
	ErrStatsNotFound       = errors.New(ErrMsgStatsNotFound)
	ErrRewardNotFound      = errors.New(ErrMsgRewardNotFound)
)
