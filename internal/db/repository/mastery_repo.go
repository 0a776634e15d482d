package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/exam-prep/internal/db/sqlc"
	"github.com/gokatarajesh/exam-prep/internal/mastery"
)

type masteryStore interface {
	ListQuestionMasteryByUser(ctx context.Context, userID pgtype.UUID) ([]sqlcgen.QuestionMastery, error)
	MaxAttemptedWeight(ctx context.Context) (pgtype.Float8, error)
}

// MasteryRepository reads per-user question mastery rows written by the grading workflow.
type MasteryRepository struct {
	store masteryStore
}

// NewMasteryRepository constructs a new mastery repository.
func NewMasteryRepository(store masteryStore) *MasteryRepository {
	return &MasteryRepository{store: store}
}

// Snapshot loads every mastery row for userID into an immutable snapshot.
func (r *MasteryRepository) Snapshot(ctx context.Context, userID uuid.UUID) (mastery.Snapshot, error) {
	var pgUserID pgtype.UUID
	if err := pgUserID.Scan(userID.String()); err != nil {
		return mastery.Snapshot{}, fmt.Errorf("encode user id: %w", err)
	}
	rows, err := r.store.ListQuestionMasteryByUser(ctx, pgUserID)
	if err != nil {
		return mastery.Snapshot{}, fmt.Errorf("list mastery: %w", err)
	}
	records := make([]mastery.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return mastery.NewSnapshot(records), nil
}

// MaxAttemptedWeight reports the largest weight the store currently assigns
// to an active row, or false if there is none.
func (r *MasteryRepository) MaxAttemptedWeight(ctx context.Context) (float64, bool, error) {
	w, err := r.store.MaxAttemptedWeight(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("max weight: %w", err)
	}
	return w.Float64, w.Valid, nil
}

func toRecord(row sqlcgen.QuestionMastery) mastery.Record {
	rec := mastery.Record{
		QuestionID:        row.QuestionID,
		CorrectStreak:     int(row.CorrectStreak),
		LastWasWrong:      row.LastWasWrong,
		IsMastered:        row.IsMastered,
		InExclusionWindow: row.InExclusionWindow,
	}
	if row.LastSeenAt.Valid {
		rec.LastSeenAt = row.LastSeenAt.Time
	}
	if row.Weight.Valid {
		w := row.Weight.Float64
		rec.Weight = &w
	}
	return rec
}
