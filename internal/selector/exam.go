package selector

import (
	"github.com/gokatarajesh/exam-prep/internal/question"
)

// Blueprint maps each domain to its question target in a mock exam.
type Blueprint map[question.Domain]int

// DefaultBlueprint follows the published domain split for a 65-question exam.
var DefaultBlueprint = Blueprint{
	question.DomainCloudConcepts:      16,
	question.DomainSecurityCompliance: 20,
	question.DomainTechnologyServices: 22,
	question.DomainBillingPricing:     7,
}

// Total is the sum of all domain targets.
func (bp Blueprint) Total() int {
	n := 0
	for _, c := range bp {
		if c > 0 {
			n += c
		}
	}
	return n
}

// SelectExam draws a mock exam from bank: a uniform sample per domain sized
// by bp, then one shuffle across domains. Short domains give what they have.
func (s *Selector) SelectExam(bank []question.Question, bp Blueprint) []question.Question {
	byDomain := make(map[question.Domain][]question.Question)
	for _, q := range dedupe(bank) {
		byDomain[q.Domain] = append(byDomain[q.Domain], q)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]question.Question, 0, bp.Total())
	// Iterate in domain order so a fixed seed gives a fixed exam.
	for _, d := range question.AllDomains() {
		target := bp[d]
		pool := byDomain[d]
		if target <= 0 || len(pool) == 0 {
			continue
		}
		Shuffle(s.rng, pool)
		out = append(out, pool[:min(target, len(pool))]...)
	}
	Shuffle(s.rng, out)
	return out
}
