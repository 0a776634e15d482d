package mastery

import "time"

// Category buckets a question for the dashboard summary.
type Category string

const (
	CategoryNew        Category = "new"
	CategoryLearning   Category = "learning"
	CategoryStruggling Category = "struggling"
	CategoryMastered   Category = "mastered"
	// CategoryOther covers attempted rows that fit no bucket, e.g. a long
	// streak on a question the grading workflow has not flagged mastered.
	CategoryOther Category = "other"
)

// Record is one per-user per-question row maintained by the grading workflow.
type Record struct {
	QuestionID        string    `json:"question_id"`
	CorrectStreak     int       `json:"correct_streak"`
	LastWasWrong      bool      `json:"last_was_wrong"`
	LastSeenAt        time.Time `json:"last_seen_at"`
	IsMastered        bool      `json:"is_mastered"`
	InExclusionWindow bool      `json:"in_exclusion_window"`
	// Weight is nil while the question sits in its exclusion window.
	Weight *float64 `json:"weight"`
}

// Excluded reports whether the record may only be used as backfill.
func (r Record) Excluded() bool {
	return r.Weight == nil
}

// Struggling and Learning apply only to rows still in the active pool.
func (r Record) Struggling() bool {
	return !r.Excluded() && r.LastWasWrong
}

func (r Record) Learning() bool {
	return !r.Excluded() && !r.LastWasWrong && r.CorrectStreak >= 1 && r.CorrectStreak < 3
}

// Category returns the single dominant bucket, mastered first. Aggregate
// counts use the individual predicates instead, since a mastered row can also
// be struggling.
func (r Record) Category() Category {
	switch {
	case r.IsMastered:
		return CategoryMastered
	case r.Struggling():
		return CategoryStruggling
	case r.Learning():
		return CategoryLearning
	default:
		return CategoryOther
	}
}
