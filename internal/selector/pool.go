package selector

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/gokatarajesh/exam-prep/internal/mastery"
	"github.com/gokatarajesh/exam-prep/internal/question"
)

// Candidate is a question paired with its selection mass (active pool) or its
// last-seen time (backfill pool).
type Candidate struct {
	Question   question.Question
	Weight     float64
	LastSeenAt time.Time
}

// Stats summarizes the learner's standing over a whole pool.
type Stats struct {
	New        int `json:"new"`
	Learning   int `json:"learning"`
	Struggling int `json:"struggling"`
	Mastered   int `json:"mastered"`
}

// Partition splits pool into the weighted active pool and the backfill pool,
// accumulating Stats along the way. Backfill comes back least recently seen
// first; active keeps pool order.
func Partition(pool []question.Question, snapshot mastery.Snapshot, newWeight float64) (active, backfill []Candidate, stats Stats) {
	for _, q := range pool {
		rec, ok := snapshot.Get(q.ID)
		if !ok {
			active = append(active, Candidate{Question: q, Weight: newWeight})
			stats.New++
			continue
		}
		if rec.IsMastered {
			stats.Mastered++
		}
		if rec.Excluded() {
			backfill = append(backfill, Candidate{Question: q, LastSeenAt: rec.LastSeenAt})
			continue
		}
		switch {
		case rec.Struggling():
			stats.Struggling++
		case rec.Learning():
			stats.Learning++
		}
		w := *rec.Weight
		if w < 0 {
			w = 0
		}
		active = append(active, Candidate{Question: q, Weight: w})
	}

	sort.SliceStable(backfill, func(i, j int) bool {
		return backfill[i].LastSeenAt.Before(backfill[j].LastSeenAt)
	})
	return active, backfill, stats
}

// WeightedDraw samples up to count questions from active without
// replacement, each pick proportional to weight among those remaining.
// active is not modified.
func WeightedDraw(r *rand.Rand, active []Candidate, count int) []question.Question {
	remaining := make([]Candidate, len(active))
	copy(remaining, active)

	out := make([]question.Question, 0, min(count, len(remaining)))
	for len(out) < count && len(remaining) > 0 {
		idx := pick(r, remaining)
		out = append(out, remaining[idx].Question)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out
}

func pick(r *rand.Rand, remaining []Candidate) int {
	var total float64
	for _, c := range remaining {
		total += c.Weight
	}
	if total <= 0 {
		return r.IntN(len(remaining))
	}

	rest := r.Float64() * total
	last := 0
	for i, c := range remaining {
		if c.Weight <= 0 {
			continue
		}
		last = i
		rest -= c.Weight
		if rest <= 0 {
			return i
		}
	}
	// Rounding can leave a sliver of mass after the walk.
	return last
}
