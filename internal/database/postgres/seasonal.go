package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmhgames/reward-service/internal/domain"
)

// SeasonalRepository implements read access to seasonal reward events
type SeasonalRepository struct {
	db *pgxpool.Pool
}

// NewSeasonalRepository creates a new SeasonalRepository
func NewSeasonalRepository(db *pgxpool.Pool) *SeasonalRepository {
	return &SeasonalRepository{db: db}
}

// ActiveEvents returns events whose window covers now. Ordering by ID
// keeps multiplier application deterministic across replicas.
func (r *SeasonalRepository) ActiveEvents(ctx context.Context, now time.Time) ([]domain.SeasonalEvent, error) {
	const query = `
		SELECT id, name, start_time, end_time, bonus_multiplier, conditions, is_active
		FROM seasonal_events
		WHERE is_active = TRUE AND start_time <= $1 AND end_time > $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetActiveEvents, err)
	}
	defer rows.Close()

	var events []domain.SeasonalEvent
	for rows.Next() {
		var event domain.SeasonalEvent
		var conditions []byte
		if err := rows.Scan(&event.ID, &event.Name, &event.StartTime, &event.EndTime,
			&event.BonusMultiplier, &conditions, &event.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetActiveEvents, err)
		}
		if len(conditions) > 0 {
			if err := json.Unmarshal(conditions, &event.Conditions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event conditions for %s: %w", event.ID, err)
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetActiveEvents, err)
	}
	return events, nil
}
