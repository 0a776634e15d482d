package mastery

// WeakSpot is a question the learner keeps missing. The grading workflow
// maintains the counts and clears a spot after three correct answers in a row.
type WeakSpot struct {
	QuestionID     string `json:"question_id"`
	IncorrectCount int    `json:"incorrect_count"`
}
