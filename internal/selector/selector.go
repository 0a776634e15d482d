package selector

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/gokatarajesh/exam-prep/internal/mastery"
	"github.com/gokatarajesh/exam-prep/internal/question"
)

// DefaultNewQuestionWeight is the synthetic weight given to never-attempted
// questions. It must stay above any weight the store assigns to attempted,
// unmastered questions so novelty keeps priority.
const DefaultNewQuestionWeight = 5.0

var (
	ErrInvalidWeight   = errors.New("new question weight must be positive")
	ErrNoveltyInverted = errors.New("new question weight does not exceed store maximum")
)

// Result is the outcome of one selection pass.
type Result struct {
	Questions     []question.Question `json:"questions"`
	Stats         Stats               `json:"stats"`
	Authenticated bool                `json:"authenticated"`
}

// Selector picks practice questions. Each call is independent; the only
// shared state is the random source, which is serialized internally.
type Selector struct {
	mu        sync.Mutex
	rng       *rand.Rand
	newWeight float64
}

// Option customizes a Selector.
type Option func(*options)

type options struct {
	rng            *rand.Rand
	newWeight      float64
	maxStoreWeight *float64
}

// WithRand injects the random source shared by the weighted draw and shuffles.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed is shorthand for WithRand over a PCG seeded with seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithNewQuestionWeight overrides DefaultNewQuestionWeight.
func WithNewQuestionWeight(w float64) Option {
	return func(o *options) { o.newWeight = w }
}

// WithMaxStoreWeight declares the largest weight the store gives attempted
// questions. New fails if the new-question weight would not exceed it.
func WithMaxStoreWeight(w float64) Option {
	return func(o *options) { o.maxStoreWeight = &w }
}

// New builds a Selector.
func New(opts ...Option) (*Selector, error) {
	o := options{newWeight: DefaultNewQuestionWeight}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newWeight <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeight, o.newWeight)
	}
	if o.maxStoreWeight != nil && o.newWeight <= *o.maxStoreWeight {
		return nil, fmt.Errorf("%w: new=%v store max=%v", ErrNoveltyInverted, o.newWeight, *o.maxStoreWeight)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(entropy(), entropy()))
	}
	return &Selector{rng: o.rng, newWeight: o.newWeight}, nil
}

// NewQuestionWeight reports the synthetic weight in use.
func (s *Selector) NewQuestionWeight() float64 {
	return s.newWeight
}

// SelectAnonymous is the fallback for callers without mastery history: a
// uniform permutation of pool truncated to count.
func (s *Selector) SelectAnonymous(pool []question.Question, count int) Result {
	if count <= 0 || len(pool) == 0 {
		return Result{Questions: []question.Question{}}
	}
	shuffled := dedupe(pool)

	s.mu.Lock()
	Shuffle(s.rng, shuffled)
	s.mu.Unlock()

	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return Result{Questions: shuffled}
}

// Select draws count questions biased toward weak and unseen material. The
// snapshot is only read. Stats cover the entire pool regardless of count.
func (s *Selector) Select(pool []question.Question, snapshot mastery.Snapshot, count int) Result {
	active, backfill, stats := Partition(dedupe(pool), snapshot, s.newWeight)
	res := Result{Questions: []question.Question{}, Stats: stats, Authenticated: true}
	if count <= 0 || len(active)+len(backfill) == 0 {
		return res
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selected := WeightedDraw(s.rng, active, count)
	for i := 0; len(selected) < count && i < len(backfill); i++ {
		selected = append(selected, backfill[i].Question)
	}
	// Backfill is appended last; shuffle so position does not reveal the tier.
	Shuffle(s.rng, selected)

	res.Questions = selected
	return res
}

// Shuffle permutes items in place with Fisher–Yates.
func Shuffle[T any](r *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func dedupe(pool []question.Question) []question.Question {
	seen := make(map[string]struct{}, len(pool))
	out := make([]question.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}

func entropy() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}
