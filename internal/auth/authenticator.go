package auth

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
	"github.com/fmhgames/reward-service/internal/repository"
)

// Claim is the authenticated portion of a reward submission
type Claim struct {
	PlayerAddress string
	GameID        string
	FinalScore    int64
	Timestamp     int64 // unix seconds, client clock
	Nonce         string
	Signature     string
}

// Authenticator verifies signed claims and rejects replays
type Authenticator interface {
	// VerifyClaim checks the signature, the timestamp window, and
	// consumes the nonce. All failures close the claim: no reward is
	// computed, and the nonce is written only after signature success.
	VerifyClaim(ctx context.Context, claim Claim) error
}

type authenticator struct {
	secret    []byte
	nonces    repository.Nonce
	window    time.Duration
	now       func() time.Time
}

// NewAuthenticator creates a claim authenticator around the server-held
// claim secret. window bounds |now - timestamp|.
func NewAuthenticator(secret string, nonces repository.Nonce, window time.Duration) Authenticator {
	return &authenticator{
		secret: []byte(secret),
		nonces: nonces,
		window: window,
		now:    time.Now,
	}
}

// claimMessage builds the deterministic message the client signed.
// Field order is part of the wire contract; never reorder.
func claimMessage(c Claim) string {
	return strings.Join([]string{
		c.PlayerAddress,
		c.GameID,
		strconv.FormatInt(c.FinalScore, 10),
		strconv.FormatInt(c.Timestamp, 10),
		c.Nonce,
	}, ":")
}

// Sign computes the claim signature for a message under the given
// secret. Exported for clients and tests.
func Sign(secret []byte, c Claim) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(claimMessage(c)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (a *authenticator) VerifyClaim(ctx context.Context, claim Claim) error {
	log := logger.FromContext(ctx)

	submitted := time.Unix(claim.Timestamp, 0)
	drift := a.now().Sub(submitted)
	if drift < 0 {
		drift = -drift
	}
	if drift > a.window {
		log.Warn("Claim timestamp outside window",
			"player", claim.PlayerAddress,
			"game_id", claim.GameID,
			"drift", drift)
		return fmt.Errorf("%w: drift %s exceeds %s", domain.ErrExpiredTimestamp, drift.Round(time.Second), a.window)
	}

	expected := Sign(a.secret, claim)
	// hmac.Equal is constant time
	if !hmac.Equal([]byte(expected), []byte(claim.Signature)) {
		log.Warn("Claim signature mismatch",
			"player", claim.PlayerAddress,
			"game_id", claim.GameID)
		return domain.ErrInvalidSignature
	}

	// Consume the nonce only after the signature checks out, so an
	// attacker cannot burn a victim's nonce with a forged request.
	// The repository insert is the atomic check-and-mark; concurrent
	// duplicates see exactly one winner.
	consumed, err := a.nonces.Consume(ctx, claim.PlayerAddress, claim.Nonce, claim.GameID)
	if err != nil {
		return fmt.Errorf("failed to consume nonce: %w", err)
	}
	if !consumed {
		log.Warn("Replayed nonce rejected",
			"player", claim.PlayerAddress,
			"game_id", claim.GameID)
		return fmt.Errorf("%w: nonce %s", domain.ErrReplayedNonce, claim.Nonce)
	}

	return nil
}
