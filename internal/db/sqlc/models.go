package sqlcgen

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type QuestionMastery struct {
	UserID            pgtype.UUID        `json:"user_id"`
	QuestionID        string             `json:"question_id"`
	CorrectStreak     int32              `json:"correct_streak"`
	LastWasWrong      bool               `json:"last_was_wrong"`
	LastSeenAt        pgtype.Timestamptz `json:"last_seen_at"`
	IsMastered        bool               `json:"is_mastered"`
	InExclusionWindow bool               `json:"in_exclusion_window"`
	Weight            pgtype.Float8      `json:"weight"`
}

type WeakSpot struct {
	UserID         pgtype.UUID        `json:"user_id"`
	QuestionID     string             `json:"question_id"`
	IncorrectCount int32              `json:"incorrect_count"`
	CorrectStreak  int32              `json:"correct_streak"`
	IsCleared      bool               `json:"is_cleared"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}
