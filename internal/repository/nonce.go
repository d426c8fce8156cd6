package repository

import "context"

// Nonce defines replay-protection storage. Implementations must back
// Consume with a uniqueness constraint on (playerAddress, nonce) so the
// existence check and the mark-as-used write are one atomic operation.
type Nonce interface {
	// IsUsed reports whether the nonce has already been consumed for the player.
	IsUsed(ctx context.Context, playerAddress, nonce string) (bool, error)

	// Consume atomically marks the nonce used for the player, recording
	// the game it bound. Returns false when the nonce was already
	// consumed; exactly one of any set of concurrent callers wins.
	Consume(ctx context.Context, playerAddress, nonce, gameID string) (bool, error)
}
