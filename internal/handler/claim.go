package handler

import (
	"net/http"
	"time"

	"github.com/fmhgames/reward-service/internal/claims"
	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/logger"
	"github.com/fmhgames/reward-service/internal/ratelimit"
)

// SubmitClaimRequest is the full reward claim envelope. The signature
// covers the identity fields plus timestamp and nonce.
type SubmitClaimRequest struct {
	GameResult  domain.GameResult        `json:"gameResult" validate:"required"`
	PlayerStats *domain.PlayerStats      `json:"playerStats,omitempty"`
	Telemetry   domain.SessionTelemetry  `json:"telemetry"`
	Timestamp   int64                    `json:"timestamp" validate:"required,gt=0"`
	Nonce       string                   `json:"nonce" validate:"required,min=8,max=128"`
	Signature   string                   `json:"signature" validate:"required,hexstring,len=64"`
}

// SubmitClaimResponse mirrors the legacy client contract. Achievements
// is always present and currently always empty.
type SubmitClaimResponse struct {
	Success        bool                           `json:"success"`
	Reward         domain.RewardCalculationResult `json:"reward"`
	Achievements   []string                       `json:"achievements"`
	CanClaim       bool                           `json:"canClaim"`
	ClaimSignature string                         `json:"claimSignature,omitempty"`
	ExpiresAt      *time.Time                     `json:"expiresAt,omitempty"`
	SessionID      string                         `json:"sessionId,omitempty"`
}

// HandleSubmitClaim handles a signed reward claim for a finished game
// @Summary Submit a reward claim
// @Description Verify a signed game result, compute the FMH reward, and settle a pending payout
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body SubmitClaimRequest true "Signed game result"
// @Success 200 {object} SubmitClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rewards/claim [post]
func HandleSubmitClaim(svc claims.Service, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := loggerFromRequest(r)

		var req SubmitClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "submit claim"); err != nil {
			return
		}

		// Rate limiting keys on the claimed player address; an invalid
		// signature still burns budget for that address.
		if !limiter.Allow(req.GameResult.PlayerAddress) {
			log.Warn("Claim rate limit exceeded", "player", req.GameResult.PlayerAddress)
			respondError(w, http.StatusTooManyRequests, ErrMsgTooManyRequests)
			return
		}

		log.Debug("Claim received",
			"player", req.GameResult.PlayerAddress,
			"game_id", req.GameResult.GameID,
			"score", req.GameResult.FinalScore)

		outcome, err := svc.SubmitClaim(r.Context(), claims.Submission{
			GameResult:  req.GameResult,
			PlayerStats: req.PlayerStats,
			Telemetry:   req.Telemetry,
			Timestamp:   req.Timestamp,
			Nonce:       req.Nonce,
			Signature:   req.Signature,
		})
		if err != nil {
			respondServiceError(w, r, "Submit claim", err)
			return
		}

		sessionID, _ := logger.SessionIDFromContext(r.Context())
		respondJSON(w, http.StatusOK, SubmitClaimResponse{
			Success:        true,
			Reward:         outcome.Reward,
			Achievements:   []string{},
			CanClaim:       outcome.CanClaim,
			ClaimSignature: outcome.ClaimSignature,
			ExpiresAt:      outcome.ExpiresAt,
			SessionID:      sessionID,
		})
	}
}
