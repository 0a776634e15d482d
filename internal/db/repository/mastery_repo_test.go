package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sqlcgen "github.com/gokatarajesh/exam-prep/internal/db/sqlc"
)

type mockMasteryStore struct {
	mock.Mock
}

func (m *mockMasteryStore) ListQuestionMasteryByUser(ctx context.Context, userID pgtype.UUID) ([]sqlcgen.QuestionMastery, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]sqlcgen.QuestionMastery), args.Error(1)
}

func (m *mockMasteryStore) MaxAttemptedWeight(ctx context.Context) (pgtype.Float8, error) {
	args := m.Called(ctx)
	return args.Get(0).(pgtype.Float8), args.Error(1)
}

func TestMasteryRepository_Snapshot(t *testing.T) {
	store := new(mockMasteryStore)
	repo := NewMasteryRepository(store)

	userID := uuid.MustParse("00000000-0000-0000-0000-000000000007")
	seen := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := []sqlcgen.QuestionMastery{
		{
			UserID:        uuidFromByte(7),
			QuestionID:    "q1",
			CorrectStreak: 2,
			LastSeenAt:    pgtype.Timestamptz{Time: seen, Valid: true},
			Weight:        pgtype.Float8{Float64: 2.5, Valid: true},
		},
		{
			UserID:            uuidFromByte(7),
			QuestionID:        "q2",
			IsMastered:        true,
			InExclusionWindow: true,
			LastSeenAt:        pgtype.Timestamptz{Time: seen.Add(-time.Hour), Valid: true},
		},
	}
	store.On("ListQuestionMasteryByUser", mock.Anything, uuidFromByte(7)).Return(rows, nil)

	snap, err := repo.Snapshot(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())

	q1, ok := snap.Get("q1")
	require.True(t, ok)
	require.NotNil(t, q1.Weight)
	assert.Equal(t, 2.5, *q1.Weight)
	assert.Equal(t, 2, q1.CorrectStreak)
	assert.Equal(t, seen, q1.LastSeenAt)

	q2, ok := snap.Get("q2")
	require.True(t, ok)
	assert.Nil(t, q2.Weight)
	assert.True(t, q2.Excluded())
	store.AssertExpectations(t)
}

func TestMasteryRepository_SnapshotError(t *testing.T) {
	store := new(mockMasteryStore)
	repo := NewMasteryRepository(store)

	boom := errors.New("connection refused")
	store.On("ListQuestionMasteryByUser", mock.Anything, mock.Anything).Return([]sqlcgen.QuestionMastery(nil), boom)

	_, err := repo.Snapshot(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	store.AssertExpectations(t)
}

func TestMasteryRepository_MaxAttemptedWeight(t *testing.T) {
	store := new(mockMasteryStore)
	repo := NewMasteryRepository(store)

	store.On("MaxAttemptedWeight", mock.Anything).Return(pgtype.Float8{Float64: 4, Valid: true}, nil).Once()
	store.On("MaxAttemptedWeight", mock.Anything).Return(pgtype.Float8{}, nil).Once()

	w, ok, err := repo.MaxAttemptedWeight(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4.0, w)

	_, ok, err = repo.MaxAttemptedWeight(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
	store.AssertExpectations(t)
}
