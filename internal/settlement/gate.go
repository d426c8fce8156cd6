package settlement

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/logger"
	"github.com/fmhgames/reward-service/internal/metrics"
	"github.com/fmhgames/reward-service/internal/repository"
)

// Gate turns a payable reward calculation into a signed, time-bound
// promise to pay. The payout secret is distinct from the claim secret:
// one secret authenticates submissions, the other authenticates payouts.
type Gate interface {
	// Settle persists a PendingReward for a payable calculation and
	// returns it. Re-submission of the same gameID inside the expiry
	// window returns the first entry with created=false instead of
	// minting a second one; the nonce check alone cannot provide this
	// because retries may legitimately carry fresh nonces for the same
	// game. Callers charge economic counters only when created is true.
	Settle(ctx context.Context, playerAddress, gameID string, amount float64) (*domain.PendingReward, bool, error)

	// VerifyPayoutSignature checks a presented claim signature against
	// the entry fields. Used at redeem time by the settlement collaborator.
	VerifyPayoutSignature(entry domain.PendingReward) bool
}

type gate struct {
	secret  []byte
	rewards repository.PendingRewards
	expiry  time.Duration
	now     func() time.Time
}

// NewGate creates a settlement gate signing under the payout secret
func NewGate(payoutSecret string, rewards repository.PendingRewards, expiry time.Duration) Gate {
	return &gate{
		secret:  []byte(payoutSecret),
		rewards: rewards,
		expiry:  expiry,
		now:     time.Now,
	}
}

// payoutMessage builds the signed payout message. Amount is fixed to
// 8 decimal places so the signature is reproducible from stored values.
func payoutMessage(playerAddress, gameID string, amount float64, expiresAt time.Time) string {
	return strings.Join([]string{
		playerAddress,
		gameID,
		strconv.FormatFloat(amount, 'f', 8, 64),
		strconv.FormatInt(expiresAt.Unix(), 10),
	}, ":")
}

func (g *gate) sign(playerAddress, gameID string, amount float64, expiresAt time.Time) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(payoutMessage(playerAddress, gameID, amount, expiresAt)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *gate) Settle(ctx context.Context, playerAddress, gameID string, amount float64) (*domain.PendingReward, bool, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, false, fmt.Errorf("%w: non-positive settlement amount", domain.ErrInvalidInput)
	}

	now := g.now()
	expiresAt := now.Add(g.expiry).Truncate(time.Second)

	entry := domain.PendingReward{
		PlayerAddress:  playerAddress,
		GameID:         gameID,
		RewardAmount:   amount,
		ClaimSignature: g.sign(playerAddress, gameID, amount, expiresAt),
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
	}

	stored, created, err := g.rewards.Create(ctx, entry)
	if err != nil {
		return nil, false, fmt.Errorf("failed to persist pending reward: %w", err)
	}

	if !created {
		// A retry for the same game: hand back the original promise
		log.Info("Pending reward already exists, returning prior entry",
			"player", playerAddress,
			"game_id", gameID)
		metrics.PendingRewardConflicts.Inc()
		return stored, false, nil
	}

	metrics.RewardsSettled.Inc()
	metrics.RewardsSettledFMH.Add(amount)

	log.Info("Pending reward created",
		"player", playerAddress,
		"game_id", gameID,
		"amount", amount,
		"expires_at", expiresAt)

	return stored, true, nil
}

func (g *gate) VerifyPayoutSignature(entry domain.PendingReward) bool {
	expected := g.sign(entry.PlayerAddress, entry.GameID, entry.RewardAmount, entry.ExpiresAt)
	return hmac.Equal([]byte(expected), []byte(entry.ClaimSignature))
}
