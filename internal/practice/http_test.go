package practice

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/exam-prep/internal/auth"
	"github.com/gokatarajesh/exam-prep/internal/auth/jwt"
	"github.com/gokatarajesh/exam-prep/internal/mastery"
	"github.com/gokatarajesh/exam-prep/internal/scoring"
)

func newTestRouter(t *testing.T, snaps SnapshotSource) (http.Handler, *jwt.Manager) {
	t.Helper()
	return newTestRouterWithWeakSpots(t, snaps, nil)
}

func newTestRouterWithWeakSpots(t *testing.T, snaps SnapshotSource, spots WeakSpotSource) (http.Handler, *jwt.Manager) {
	t.Helper()
	svc := newTestServiceWithWeakSpots(t, snaps, spots, newMemoryCache(), nil)
	h := NewHTTPHandlers(svc, zerolog.New(io.Discard))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/practice/sessions", h.StartSession)
	mux.HandleFunc("GET /v1/practice/sessions/{id}", h.GetSession)
	mux.HandleFunc("POST /v1/practice/sessions/{id}/score", h.ScoreSession)
	mux.Handle("POST /v1/practice/weak-spots", auth.RequireAuth(http.HandlerFunc(h.StartWeakSpots)))
	mux.Handle("POST /v1/exams", auth.RequireAuth(http.HandlerFunc(h.StartExam)))

	manager := jwt.NewManager(jwt.TokenConfig{AccessSecret: []byte("test-secret")})
	return auth.Middleware(manager, zerolog.New(io.Discard))(mux), manager
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTPStartAndFetchSession(t *testing.T) {
	router, manager := newTestRouter(t, &stubSnapshots{})
	token, err := manager.GenerateAccessToken(jwt.User{ID: uuid.New()})
	require.NoError(t, err)

	rec := do(t, router, http.MethodPost, "/v1/practice/sessions", token, StartSessionRequest{Domain: 3, Count: 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, ModeAdaptive, created.Mode)
	assert.Len(t, created.Questions, 5)
	require.NotNil(t, created.Stats)
	assert.Equal(t, 30, created.Stats.New)
	for _, q := range created.Questions {
		assert.Empty(t, q.Answer, "answers must not leak to clients")
	}

	rec = do(t, router, http.MethodGet, "/v1/practice/sessions/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)

	rec = do(t, router, http.MethodGet, "/v1/practice/sessions/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "anonymous callers cannot read a user's session")
}

func TestHTTPAnonymousSessionAndScore(t *testing.T) {
	router, _ := newTestRouter(t, &stubSnapshots{})

	rec := do(t, router, http.MethodPost, "/v1/practice/sessions", "", StartSessionRequest{Domain: 1, Count: 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, ModeRandom, created.Mode)
	assert.Nil(t, created.Stats)

	answers := map[string][]string{}
	for _, q := range created.Questions {
		answers[q.ID] = []string{"A"}
	}
	rec = do(t, router, http.MethodPost, "/v1/practice/sessions/"+created.ID.String()+"/score", "", ScoreRequest{Answers: answers})
	require.Equal(t, http.StatusOK, rec.Code)
	var rep scoring.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	assert.Equal(t, 2, rep.Correct)
	assert.Equal(t, 1000, rep.Scaled)
}

func TestHTTPValidation(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPost, "/v1/practice/sessions", "", StartSessionRequest{Domain: 7, Count: 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown_domain")

	rec = do(t, router, http.MethodPost, "/v1/practice/sessions", "", StartSessionRequest{Domain: 1, Count: -2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_count")

	req := httptest.NewRequest(http.MethodPost, "/v1/practice/sessions", bytes.NewBufferString("{"))
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)

	rec = do(t, router, http.MethodGet, "/v1/practice/sessions/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/practice/sessions/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPExamRequiresAuth(t *testing.T) {
	router, manager := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPost, "/v1/exams", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := manager.GenerateAccessToken(jwt.User{ID: uuid.New()})
	require.NoError(t, err)
	rec = do(t, router, http.MethodPost, "/v1/exams", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, ModeExam, created.Mode)
	assert.Len(t, created.Questions, 65)
}

func TestHTTPWeakSpots(t *testing.T) {
	spots := &stubWeakSpots{spots: []mastery.WeakSpot{{QuestionID: "d2-q5", IncorrectCount: 3}}}
	router, manager := newTestRouterWithWeakSpots(t, nil, spots)

	rec := do(t, router, http.MethodPost, "/v1/practice/weak-spots", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := manager.GenerateAccessToken(jwt.User{ID: uuid.New()})
	require.NoError(t, err)
	rec = do(t, router, http.MethodPost, "/v1/practice/weak-spots", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, ModeWeakSpot, created.Mode)
	require.Len(t, created.Questions, 1)
	assert.Equal(t, "d2-q5", created.Questions[0].ID)
	assert.Empty(t, created.Questions[0].Answer)

	spots.spots = nil
	rec = do(t, router, http.MethodPost, "/v1/practice/weak-spots", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no_weak_spots")
}
