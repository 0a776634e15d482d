package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listOpenWeakSpotsByUser = `-- name: ListOpenWeakSpotsByUser :many
SELECT question_id, incorrect_count
FROM weak_spots
WHERE user_id = $1
  AND is_cleared = FALSE
  AND incorrect_count >= $2
ORDER BY incorrect_count DESC, question_id
LIMIT $3
`

type ListOpenWeakSpotsByUserParams struct {
	UserID         pgtype.UUID `json:"user_id"`
	IncorrectCount int32       `json:"incorrect_count"`
	Limit          int32       `json:"limit"`
}

type ListOpenWeakSpotsByUserRow struct {
	QuestionID     string `json:"question_id"`
	IncorrectCount int32  `json:"incorrect_count"`
}

func (q *Queries) ListOpenWeakSpotsByUser(ctx context.Context, arg ListOpenWeakSpotsByUserParams) ([]ListOpenWeakSpotsByUserRow, error) {
	rows, err := q.db.Query(ctx, listOpenWeakSpotsByUser, arg.UserID, arg.IncorrectCount, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListOpenWeakSpotsByUserRow
	for rows.Next() {
		var i ListOpenWeakSpotsByUserRow
		if err := rows.Scan(&i.QuestionID, &i.IncorrectCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
