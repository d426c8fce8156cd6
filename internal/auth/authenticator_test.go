package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/repository"
)

// MockNonceRepository
type MockNonceRepository struct {
	mock.Mock
}

func (m *MockNonceRepository) IsUsed(ctx context.Context, playerAddress, nonce string) (bool, error) {
	args := m.Called(ctx, playerAddress, nonce)
	return args.Bool(0), args.Error(1)
}

func (m *MockNonceRepository) Consume(ctx context.Context, playerAddress, nonce, gameID string) (bool, error) {
	args := m.Called(ctx, playerAddress, nonce, gameID)
	return args.Bool(0), args.Error(1)
}

// memoryNonceStore is a thread-safe in-memory nonce store for race tests
type memoryNonceStore struct {
	mu   sync.Mutex
	used map[string]bool
}

func newMemoryNonceStore() *memoryNonceStore {
	return &memoryNonceStore{used: make(map[string]bool)}
}

func (s *memoryNonceStore) IsUsed(ctx context.Context, playerAddress, nonce string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used[playerAddress+":"+nonce], nil
}

func (s *memoryNonceStore) Consume(ctx context.Context, playerAddress, nonce, gameID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := playerAddress + ":" + nonce
	if s.used[key] {
		return false, nil
	}
	s.used[key] = true
	return true, nil
}

const testSecret = "test-claim-secret"

func fixedTime() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func signedClaim(nonce string) Claim {
	claim := Claim{
		PlayerAddress: "0xabc123def456",
		GameID:        "game-0001-aaaa",
		FinalScore:    1500,
		Timestamp:     fixedTime().Unix(),
		Nonce:         nonce,
	}
	claim.Signature = Sign([]byte(testSecret), claim)
	return claim
}

func newTestAuthenticator(nonces repository.Nonce) Authenticator {
	a := NewAuthenticator(testSecret, nonces, 5*time.Minute).(*authenticator)
	a.now = fixedTime
	return a
}

func TestVerifyClaim_Valid(t *testing.T) {
	// ARRANGE
	nonces := new(MockNonceRepository)
	nonces.On("Consume", mock.Anything, "0xabc123def456", "nonce-1", "game-0001-aaaa").Return(true, nil)
	auth := newTestAuthenticator(nonces)

	// ACT
	err := auth.VerifyClaim(context.Background(), signedClaim("nonce-1"))

	// ASSERT
	assert.NoError(t, err)
	nonces.AssertExpectations(t)
}

func TestVerifyClaim_ExpiredTimestamp(t *testing.T) {
	t.Run("old timestamp is rejected without touching the nonce", func(t *testing.T) {
		nonces := new(MockNonceRepository)
		auth := newTestAuthenticator(nonces)

		claim := Claim{
			PlayerAddress: "0xabc123def456",
			GameID:        "game-0001-aaaa",
			FinalScore:    1500,
			Timestamp:     fixedTime().Add(-10 * time.Minute).Unix(),
			Nonce:         "nonce-old",
		}
		claim.Signature = Sign([]byte(testSecret), claim)

		err := auth.VerifyClaim(context.Background(), claim)

		assert.ErrorIs(t, err, domain.ErrExpiredTimestamp)
		nonces.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("future timestamp beyond window is rejected", func(t *testing.T) {
		nonces := new(MockNonceRepository)
		auth := newTestAuthenticator(nonces)

		claim := Claim{
			PlayerAddress: "0xabc123def456",
			GameID:        "game-0001-aaaa",
			FinalScore:    1500,
			Timestamp:     fixedTime().Add(6 * time.Minute).Unix(),
			Nonce:         "nonce-future",
		}
		claim.Signature = Sign([]byte(testSecret), claim)

		err := auth.VerifyClaim(context.Background(), claim)

		assert.ErrorIs(t, err, domain.ErrExpiredTimestamp)
	})
}

func TestVerifyClaim_InvalidSignature(t *testing.T) {
	nonces := new(MockNonceRepository)
	auth := newTestAuthenticator(nonces)

	claim := signedClaim("nonce-2")
	claim.Signature = Sign([]byte("wrong-secret"), claim)

	err := auth.VerifyClaim(context.Background(), claim)

	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	// A forged request must never burn the victim's nonce
	nonces.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyClaim_TamperedScore(t *testing.T) {
	nonces := new(MockNonceRepository)
	auth := newTestAuthenticator(nonces)

	claim := signedClaim("nonce-3")
	claim.FinalScore = 999999

	err := auth.VerifyClaim(context.Background(), claim)

	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestVerifyClaim_ReplayedNonce(t *testing.T) {
	nonces := new(MockNonceRepository)
	nonces.On("Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	auth := newTestAuthenticator(nonces)

	err := auth.VerifyClaim(context.Background(), signedClaim("nonce-4"))

	assert.ErrorIs(t, err, domain.ErrReplayedNonce)
}

func TestVerifyClaim_ConcurrentReplayOneWinner(t *testing.T) {
	// ARRANGE: a real store with atomic consumption
	store := newMemoryNonceStore()
	auth := newTestAuthenticator(store)
	claim := signedClaim("nonce-race")

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	// ACT: submit the same signed claim concurrently
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- auth.VerifyClaim(context.Background(), claim)
		}()
	}
	wg.Wait()
	close(results)

	// ASSERT: exactly one submission wins
	winners := 0
	for err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, domain.ErrReplayedNonce)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestSign_Deterministic(t *testing.T) {
	claim := Claim{
		PlayerAddress: "0xabc",
		GameID:        "game-1",
		FinalScore:    100,
		Timestamp:     1700000000,
		Nonce:         "n1",
	}

	assert.Equal(t, Sign([]byte(testSecret), claim), Sign([]byte(testSecret), claim))
	assert.NotEqual(t, Sign([]byte(testSecret), claim), Sign([]byte("other"), claim))
}
