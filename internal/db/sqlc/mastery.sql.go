package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listQuestionMasteryByUser = `-- name: ListQuestionMasteryByUser :many
SELECT user_id, question_id, correct_streak, last_was_wrong, last_seen_at, is_mastered, in_exclusion_window, weight
FROM question_mastery
WHERE user_id = $1
`

func (q *Queries) ListQuestionMasteryByUser(ctx context.Context, userID pgtype.UUID) ([]QuestionMastery, error) {
	rows, err := q.db.Query(ctx, listQuestionMasteryByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []QuestionMastery
	for rows.Next() {
		var i QuestionMastery
		if err := rows.Scan(
			&i.UserID,
			&i.QuestionID,
			&i.CorrectStreak,
			&i.LastWasWrong,
			&i.LastSeenAt,
			&i.IsMastered,
			&i.InExclusionWindow,
			&i.Weight,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const maxAttemptedWeight = `-- name: MaxAttemptedWeight :one
SELECT MAX(weight)::double precision AS max_weight
FROM question_mastery
WHERE weight IS NOT NULL
`

func (q *Queries) MaxAttemptedWeight(ctx context.Context) (pgtype.Float8, error) {
	row := q.db.QueryRow(ctx, maxAttemptedWeight)
	var max_weight pgtype.Float8
	err := row.Scan(&max_weight)
	return max_weight, err
}
