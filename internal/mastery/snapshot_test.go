package mastery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func w(v float64) *float64 { return &v }

func TestSnapshotLookup(t *testing.T) {
	snap := NewSnapshot([]Record{
		{QuestionID: "a", CorrectStreak: 1, Weight: w(2)},
		{QuestionID: "b"},
		{QuestionID: "a", CorrectStreak: 2, Weight: w(3)},
	})

	assert.Equal(t, 2, snap.Len())
	rec, ok := snap.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, rec.CorrectStreak, "later row wins")

	_, ok = snap.Get("missing")
	assert.False(t, ok)

	var zero Snapshot
	_, ok = zero.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, zero.Len())
}

func TestSnapshotMaxWeight(t *testing.T) {
	_, ok := NewSnapshot([]Record{{QuestionID: "x"}}).MaxWeight()
	assert.False(t, ok)

	max, ok := NewSnapshot([]Record{
		{QuestionID: "a", Weight: w(2)},
		{QuestionID: "b", Weight: w(4.5)},
		{QuestionID: "c"},
	}).MaxWeight()
	assert.True(t, ok)
	assert.Equal(t, 4.5, max)
}

func TestRecordCategory(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want Category
	}{
		{"mastered excluded", Record{IsMastered: true, InExclusionWindow: true}, CategoryMastered},
		{"mastered wins over wrong", Record{IsMastered: true, LastWasWrong: true, Weight: w(1)}, CategoryMastered},
		{"struggling", Record{LastWasWrong: true, Weight: w(3)}, CategoryStruggling},
		{"learning streak 1", Record{CorrectStreak: 1, Weight: w(2)}, CategoryLearning},
		{"learning streak 2", Record{CorrectStreak: 2, Weight: w(2)}, CategoryLearning},
		{"streak 3 unflagged", Record{CorrectStreak: 3, Weight: w(1)}, CategoryOther},
		{"excluded wrong not struggling", Record{LastWasWrong: true}, CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Category())
		})
	}
}
