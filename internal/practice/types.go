package practice

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/exam-prep/internal/question"
	"github.com/gokatarajesh/exam-prep/internal/selector"
)

// Session modes.
const (
	ModeAdaptive = "adaptive"
	ModeRandom   = "random"
	ModeExam     = "exam"
	ModeWeakSpot = "weak_spot"
)

const (
	defaultWeakSpotMinIncorrect = 2
	defaultWeakSpotLimit        = 20
)

var (
	ErrSessionNotFound = errors.New("practice session not found")
	ErrUnknownDomain   = errors.New("unknown domain")
	ErrInvalidCount    = errors.New("question count must not be negative")
	ErrNoWeakSpots     = errors.New("no open weak spots")
)

// StartRequest describes a session the learner asked for. UserID is nil for
// unauthenticated callers.
type StartRequest struct {
	UserID *uuid.UUID
	Domain question.Domain
	Count  int
}

// Session is a selected question set plus the dashboard stats captured when
// it was built. Questions keep their answers so the session can be graded.
type Session struct {
	ID        uuid.UUID           `json:"id"`
	UserID    *uuid.UUID          `json:"user_id,omitempty"`
	Mode      string              `json:"mode"`
	Domain    question.Domain     `json:"domain,omitempty"`
	Questions []question.Question `json:"questions"`
	Stats     *selector.Stats     `json:"stats,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// PublicQuestions returns the questions with answers stripped.
func (s *Session) PublicQuestions() []question.Question {
	out := make([]question.Question, len(s.Questions))
	for i, q := range s.Questions {
		out[i] = q.Public()
	}
	return out
}

// Owned reports whether userID may read the session. Anonymous sessions are
// readable by anyone holding the ID.
func (s *Session) Owned(userID *uuid.UUID) bool {
	if s.UserID == nil {
		return true
	}
	return userID != nil && *userID == *s.UserID
}
