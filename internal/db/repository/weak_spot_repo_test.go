package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sqlcgen "github.com/gokatarajesh/exam-prep/internal/db/sqlc"
	"github.com/gokatarajesh/exam-prep/internal/mastery"
)

type mockWeakSpotStore struct {
	mock.Mock
}

func (m *mockWeakSpotStore) ListOpenWeakSpotsByUser(ctx context.Context, arg sqlcgen.ListOpenWeakSpotsByUserParams) ([]sqlcgen.ListOpenWeakSpotsByUserRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]sqlcgen.ListOpenWeakSpotsByUserRow), args.Error(1)
}

func TestWeakSpotRepository_OpenWeakSpots(t *testing.T) {
	store := new(mockWeakSpotStore)
	repo := NewWeakSpotRepository(store)

	userID := uuid.MustParse("00000000-0000-0000-0000-000000000009")
	store.On("ListOpenWeakSpotsByUser", mock.Anything, sqlcgen.ListOpenWeakSpotsByUserParams{
		UserID:         uuidFromByte(9),
		IncorrectCount: 2,
		Limit:          20,
	}).Return([]sqlcgen.ListOpenWeakSpotsByUserRow{
		{QuestionID: "q7", IncorrectCount: 5},
		{QuestionID: "q3", IncorrectCount: 2},
	}, nil)

	spots, err := repo.OpenWeakSpots(context.Background(), userID, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, []mastery.WeakSpot{
		{QuestionID: "q7", IncorrectCount: 5},
		{QuestionID: "q3", IncorrectCount: 2},
	}, spots)
	store.AssertExpectations(t)
}

func TestWeakSpotRepository_ZeroLimitSkipsQuery(t *testing.T) {
	store := new(mockWeakSpotStore)
	repo := NewWeakSpotRepository(store)

	spots, err := repo.OpenWeakSpots(context.Background(), uuid.New(), 2, 0)
	require.NoError(t, err)
	assert.Empty(t, spots)
	store.AssertNotCalled(t, "ListOpenWeakSpotsByUser", mock.Anything, mock.Anything)
}

func TestWeakSpotRepository_Error(t *testing.T) {
	store := new(mockWeakSpotStore)
	repo := NewWeakSpotRepository(store)

	boom := errors.New("timeout")
	store.On("ListOpenWeakSpotsByUser", mock.Anything, mock.Anything).Return([]sqlcgen.ListOpenWeakSpotsByUserRow(nil), boom)

	_, err := repo.OpenWeakSpots(context.Background(), uuid.New(), 2, 20)
	assert.ErrorIs(t, err, boom)
}
