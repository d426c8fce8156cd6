package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDeleter struct {
	cutoff  int64
	deleted int64
	err     error
}

func (s *stubDeleter) DeleteExpired(ctx context.Context, cutoffUnix int64) (int64, error) {
	s.cutoff = cutoffUnix
	return s.deleted, s.err
}

func TestRewardSweepJob(t *testing.T) {
	t.Run("sweeps up to the current instant", func(t *testing.T) {
		deleter := &stubDeleter{deleted: 3}
		job := NewRewardSweepJob(deleter)
		fixed := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
		job.now = func() time.Time { return fixed }

		err := job.Process(context.Background())

		require.NoError(t, err)
		assert.Equal(t, fixed.Unix(), deleter.cutoff)
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		job := NewRewardSweepJob(&stubDeleter{err: errors.New("timeout")})

		err := job.Process(context.Background())

		assert.Error(t, err)
	})
}
