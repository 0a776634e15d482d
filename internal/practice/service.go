package practice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/exam-prep/internal/logging"
	"github.com/gokatarajesh/exam-prep/internal/mastery"
	"github.com/gokatarajesh/exam-prep/internal/question"
	"github.com/gokatarajesh/exam-prep/internal/scoring"
	"github.com/gokatarajesh/exam-prep/internal/selector"
)

// QuestionBank supplies domain pools (implemented by question.Bank).
type QuestionBank interface {
	Domain(d question.Domain) []question.Question
	All() []question.Question
	Question(id string) (question.Question, bool)
}

// SnapshotSource fetches a user's mastery rows (implemented by repository.MasteryRepository).
type SnapshotSource interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (mastery.Snapshot, error)
}

// WeakSpotSource lists a user's uncleared weak spots, most missed first
// (implemented by repository.WeakSpotRepository).
type WeakSpotSource interface {
	OpenWeakSpots(ctx context.Context, userID uuid.UUID, minIncorrect, limit int) ([]mastery.WeakSpot, error)
}

type ServiceOptions struct {
	DefaultCount int
	MaxCount     int
	SessionTTL   time.Duration
	Blueprint    selector.Blueprint
	// A weak spot qualifies once it has been missed WeakSpotMinIncorrect
	// times; at most WeakSpotLimit are practiced per session.
	WeakSpotMinIncorrect int
	WeakSpotLimit        int
}

// Service runs the practice-session workflow around the selector: it loads
// the pool, fetches the snapshot once, selects, and stores the session.
type Service struct {
	bank      QuestionBank
	snapshots SnapshotSource
	weakSpots WeakSpotSource
	selector  *selector.Selector
	cache     SessionCache
	scorer    *scoring.Engine
	metrics   *Metrics
	logger    zerolog.Logger
	opts      ServiceOptions
	now       func() time.Time
}

func NewService(bank QuestionBank, snapshots SnapshotSource, weakSpots WeakSpotSource, sel *selector.Selector, cache SessionCache, scorer *scoring.Engine, metrics *Metrics, logger zerolog.Logger, opts ServiceOptions) *Service {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = 10
	}
	if opts.MaxCount <= 0 {
		opts.MaxCount = 100
	}
	if opts.MaxCount < opts.DefaultCount {
		opts.MaxCount = opts.DefaultCount
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.WeakSpotMinIncorrect <= 0 {
		opts.WeakSpotMinIncorrect = defaultWeakSpotMinIncorrect
	}
	if opts.WeakSpotLimit <= 0 {
		opts.WeakSpotLimit = defaultWeakSpotLimit
	}
	if opts.Blueprint == nil {
		opts.Blueprint = selector.DefaultBlueprint
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Service{
		bank:      bank,
		snapshots: snapshots,
		weakSpots: weakSpots,
		selector:  sel,
		cache:     cache,
		scorer:    scorer,
		metrics:   metrics,
		logger:    logger.With().Str("component", "practice").Logger(),
		opts:      opts,
		now:       time.Now,
	}
}

// Start builds a domain practice session. Authenticated callers get adaptive
// selection; if their snapshot cannot be fetched the session degrades to a
// random one instead of failing.
func (s *Service) Start(ctx context.Context, req StartRequest) (*Session, error) {
	if !req.Domain.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDomain, req.Domain)
	}
	count, err := s.resolveCount(req.Count)
	if err != nil {
		return nil, err
	}

	logger := s.requestLogger(ctx, req.UserID).With().Int("domain", int(req.Domain)).Int("count", count).Logger()
	pool := s.bank.Domain(req.Domain)

	var (
		snap     mastery.Snapshot
		adaptive bool
	)
	if req.UserID != nil && s.snapshots != nil {
		snap, err = s.snapshots.Snapshot(ctx, *req.UserID)
		if err != nil {
			s.metrics.snapshotFailed()
			logger.Warn().Err(err).Msg("mastery snapshot unavailable, falling back to random selection")
		} else {
			adaptive = true
		}
	}

	// Timed after the fetch so the histogram covers selection only.
	started := s.now()
	var (
		res  selector.Result
		mode = ModeRandom
	)
	if adaptive {
		s.checkNovelty(logger, snap)
		res = s.selector.Select(pool, snap, count)
		mode = ModeAdaptive
		s.metrics.observeStats(res.Stats)
	} else {
		res = s.selector.SelectAnonymous(pool, count)
	}
	s.metrics.observeSession(mode, s.now().Sub(started).Seconds())

	sess := s.newSession(req.UserID, mode, res.Questions)
	sess.Domain = req.Domain
	if res.Authenticated {
		stats := res.Stats
		sess.Stats = &stats
	}
	if err := s.cache.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	logger.Info().
		Str("session_id", sess.ID.String()).
		Str("mode", mode).
		Int("selected", len(sess.Questions)).
		Int("pool", len(pool)).
		Msg("practice session started")
	return sess, nil
}

// StartWeakSpots builds a session from the caller's open weak spots, worst
// first. Spots whose question is no longer in the bank are skipped.
func (s *Service) StartWeakSpots(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if s.weakSpots == nil {
		return nil, ErrNoWeakSpots
	}
	logger := s.requestLogger(ctx, &userID)

	spots, err := s.weakSpots.OpenWeakSpots(ctx, userID, s.opts.WeakSpotMinIncorrect, s.opts.WeakSpotLimit)
	if err != nil {
		return nil, fmt.Errorf("load weak spots: %w", err)
	}

	started := s.now()
	questions := make([]question.Question, 0, len(spots))
	for _, spot := range spots {
		q, ok := s.bank.Question(spot.QuestionID)
		if !ok {
			logger.Debug().Str("question_id", spot.QuestionID).Msg("weak spot question missing from bank")
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, ErrNoWeakSpots
	}
	s.metrics.observeSession(ModeWeakSpot, s.now().Sub(started).Seconds())

	sess := s.newSession(&userID, ModeWeakSpot, questions)
	if err := s.cache.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	logger.Info().
		Str("session_id", sess.ID.String()).
		Int("open_spots", len(spots)).
		Int("selected", len(questions)).
		Msg("weak spot session started")
	return sess, nil
}

// StartExam builds a mock exam across all domains following the blueprint.
func (s *Service) StartExam(ctx context.Context, userID *uuid.UUID) (*Session, error) {
	started := s.now()
	questions := s.selector.SelectExam(s.bank.All(), s.opts.Blueprint)
	s.metrics.observeSession(ModeExam, s.now().Sub(started).Seconds())

	sess := s.newSession(userID, ModeExam, questions)
	if err := s.cache.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	logger := s.requestLogger(ctx, userID)
	logger.Info().
		Str("session_id", sess.ID.String()).
		Int("selected", len(questions)).
		Int("target", s.opts.Blueprint.Total()).
		Msg("mock exam started")
	return sess, nil
}

// Get returns a stored session the caller may read.
func (s *Service) Get(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*Session, error) {
	sess, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || !sess.Owned(userID) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Score grades answers against a stored session. Writing mastery back is the
// grading workflow's job, not this service's.
func (s *Service) Score(ctx context.Context, id uuid.UUID, userID *uuid.UUID, answers map[string][]string) (*scoring.Report, error) {
	sess, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	rep := s.scorer.Report(sess.Questions, answers)
	logger := s.requestLogger(ctx, userID)
	logger.Info().
		Str("session_id", id.String()).
		Int("correct", rep.Correct).
		Int("total", rep.Total).
		Int("scaled", rep.Scaled).
		Msg("practice session scored")
	return &rep, nil
}

func (s *Service) resolveCount(n int) (int, error) {
	switch {
	case n < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	case n == 0:
		return s.opts.DefaultCount, nil
	case n > s.opts.MaxCount:
		return s.opts.MaxCount, nil
	}
	return n, nil
}

// checkNovelty warns when the store hands out weights at or above the
// synthetic new-question weight, which silently undoes novelty priority.
func (s *Service) checkNovelty(logger zerolog.Logger, snap mastery.Snapshot) {
	maxWeight, ok := snap.MaxWeight()
	if ok && maxWeight >= s.selector.NewQuestionWeight() {
		logger.Warn().
			Float64("store_max_weight", maxWeight).
			Float64("new_question_weight", s.selector.NewQuestionWeight()).
			Msg("attempted question weight reaches new question weight")
	}
}

func (s *Service) newSession(userID *uuid.UUID, mode string, questions []question.Question) *Session {
	now := s.now().UTC()
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Mode:      mode,
		Questions: questions,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}
}

func (s *Service) requestLogger(ctx context.Context, userID *uuid.UUID) zerolog.Logger {
	logger := logging.FromContextOr(ctx, s.logger)
	if userID != nil {
		return logger.With().Str("user_id", userID.String()).Logger()
	}
	return logger
}
