package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/exam-prep/internal/db/sqlc"
	"github.com/gokatarajesh/exam-prep/internal/mastery"
)

type weakSpotStore interface {
	ListOpenWeakSpotsByUser(ctx context.Context, arg sqlcgen.ListOpenWeakSpotsByUserParams) ([]sqlcgen.ListOpenWeakSpotsByUserRow, error)
}

// WeakSpotRepository reads the weak spots the grading workflow records.
type WeakSpotRepository struct {
	store weakSpotStore
}

func NewWeakSpotRepository(store weakSpotStore) *WeakSpotRepository {
	return &WeakSpotRepository{store: store}
}

// OpenWeakSpots returns uncleared spots missed at least minIncorrect times,
// most missed first, capped at limit.
func (r *WeakSpotRepository) OpenWeakSpots(ctx context.Context, userID uuid.UUID, minIncorrect, limit int) ([]mastery.WeakSpot, error) {
	if limit <= 0 {
		return []mastery.WeakSpot{}, nil
	}
	var pgUserID pgtype.UUID
	if err := pgUserID.Scan(userID.String()); err != nil {
		return nil, fmt.Errorf("encode user id: %w", err)
	}
	rows, err := r.store.ListOpenWeakSpotsByUser(ctx, sqlcgen.ListOpenWeakSpotsByUserParams{
		UserID:         pgUserID,
		IncorrectCount: clampInt32(minIncorrect),
		Limit:          clampInt32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list weak spots: %w", err)
	}
	spots := make([]mastery.WeakSpot, 0, len(rows))
	for _, row := range rows {
		spots = append(spots, mastery.WeakSpot{
			QuestionID:     row.QuestionID,
			IncorrectCount: int(row.IncorrectCount),
		})
	}
	return spots, nil
}

func clampInt32(n int) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < 0:
		return 0
	}
	return int32(n)
}
