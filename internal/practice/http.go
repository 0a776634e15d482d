package practice

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/exam-prep/internal/auth"
	"github.com/gokatarajesh/exam-prep/internal/question"
	"github.com/gokatarajesh/exam-prep/internal/selector"
	httperrors "github.com/gokatarajesh/exam-prep/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for practice sessions.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for practice endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "practice_http").Logger(),
	}
}

// StartSessionRequest is the body of POST /v1/practice/sessions.
type StartSessionRequest struct {
	Domain int `json:"domain"`
	Count  int `json:"count"`
}

// ScoreRequest is the body of POST /v1/practice/sessions/{id}/score.
type ScoreRequest struct {
	Answers map[string][]string `json:"answers"`
}

// SessionResponse is what clients see of a session; answers are withheld.
type SessionResponse struct {
	ID        uuid.UUID           `json:"id"`
	Mode      string              `json:"mode"`
	Domain    int                 `json:"domain,omitempty"`
	Questions []question.Question `json:"questions"`
	Stats     *selector.Stats     `json:"stats,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// StartSession handles POST /v1/practice/sessions
func (h *HTTPHandlers) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	sess, err := h.service.Start(r.Context(), StartRequest{
		UserID: auth.UserIDFromContext(r.Context()),
		Domain: question.Domain(req.Domain),
		Count:  req.Count,
	})
	switch {
	case errors.Is(err, ErrUnknownDomain):
		httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownDomain, "domain must be between 1 and 4", "domain")
		return
	case errors.Is(err, ErrInvalidCount):
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidCount, "count must not be negative", "count")
		return
	case err != nil:
		h.logger.Error().Err(err).Int("domain", req.Domain).Msg("failed to start practice session")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSessionStartFailed, "Could not start session")
		return
	}

	httperrors.RespondJSON(w, http.StatusCreated, toResponse(sess))
}

// StartExam handles POST /v1/exams
func (h *HTTPHandlers) StartExam(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.StartExam(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to start mock exam")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeExamStartFailed, "Could not start exam")
		return
	}
	httperrors.RespondJSON(w, http.StatusCreated, toResponse(sess))
}

// StartWeakSpots handles POST /v1/practice/weak-spots
func (h *HTTPHandlers) StartWeakSpots(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}
	sess, err := h.service.StartWeakSpots(r.Context(), *userID)
	switch {
	case errors.Is(err, ErrNoWeakSpots):
		httperrors.RespondNotFound(w, httperrors.ErrCodeNoWeakSpots, "No weak spots to practice yet")
		return
	case err != nil:
		h.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to start weak spot session")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSessionStartFailed, "Could not start session")
		return
	}
	httperrors.RespondJSON(w, http.StatusCreated, toResponse(sess))
}

// GetSession handles GET /v1/practice/sessions/{id}
func (h *HTTPHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.service.Get(r.Context(), id, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.respondLookupError(w, err, id)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, toResponse(sess))
}

// ScoreSession handles POST /v1/practice/sessions/{id}/score
func (h *HTTPHandlers) ScoreSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	rep, err := h.service.Score(r.Context(), id, auth.UserIDFromContext(r.Context()), req.Answers)
	if err != nil {
		h.respondLookupError(w, err, id)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, rep)
}

func (h *HTTPHandlers) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidSessionID, "Session id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *HTTPHandlers) respondLookupError(w http.ResponseWriter, err error, id uuid.UUID) {
	if errors.Is(err, ErrSessionNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "Session not found or expired")
		return
	}
	h.logger.Error().Err(err).Str("session_id", id.String()).Msg("session lookup failed")
	httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "Session store unavailable")
}

func toResponse(s *Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Mode:      s.Mode,
		Domain:    int(s.Domain),
		Questions: s.PublicQuestions(),
		Stats:     s.Stats,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}
