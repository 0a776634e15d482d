package scoring

import (
	"math"

	"github.com/gokatarajesh/exam-prep/internal/question"
)

// Config holds the fixed scaled-score constants (defaults match the exam).
type Config struct {
	MinScaled  int // default: 100
	MaxScaled  int // default: 1000
	PassScaled int // default: 700
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MinScaled:  100,
		MaxScaled:  1000,
		PassScaled: 700,
	}
}

// Engine computes session results with configurable constants.
type Engine struct {
	config Config
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config Config) *Engine {
	def := DefaultConfig()
	if config.MaxScaled <= config.MinScaled {
		config.MinScaled, config.MaxScaled = def.MinScaled, def.MaxScaled
	}
	if config.PassScaled <= 0 {
		config.PassScaled = def.PassScaled
	}
	return &Engine{config: config}
}

// Scaled maps a raw result onto the scaled range.
// Formula: min + pct * (max - min), rounded and clamped.
func (e *Engine) Scaled(correct, total int) int {
	if total <= 0 {
		return e.config.MinScaled
	}
	pct := float64(correct) / float64(total)
	span := float64(e.config.MaxScaled - e.config.MinScaled)
	scaled := int(math.Round(float64(e.config.MinScaled) + pct*span))
	return max(e.config.MinScaled, min(e.config.MaxScaled, scaled))
}

// Passed reports whether a scaled score clears the bar.
func (e *Engine) Passed(scaled int) bool {
	return scaled >= e.config.PassScaled
}

// DomainResult aggregates answers for one domain.
type DomainResult struct {
	Domain  question.Domain `json:"domain"`
	Name    string          `json:"name"`
	Correct int             `json:"correct"`
	Total   int             `json:"total"`
	Percent int             `json:"percent"`
}

// QuestionResult records how one question was answered.
type QuestionResult struct {
	QuestionID string          `json:"question_id"`
	Domain     question.Domain `json:"domain"`
	Given      []string        `json:"given"`
	Correct    []string        `json:"correct"`
	IsCorrect  bool            `json:"is_correct"`
}

// Report is the graded outcome of a session.
type Report struct {
	Correct   int              `json:"correct"`
	Total     int              `json:"total"`
	Percent   int              `json:"percent"`
	Scaled    int              `json:"scaled"`
	Passed    bool             `json:"passed"`
	Domains   []DomainResult   `json:"domains"`
	Questions []QuestionResult `json:"questions"`
}

// Report grades answers against questions. Unanswered questions count as wrong.
func (e *Engine) Report(questions []question.Question, answers map[string][]string) Report {
	rep := Report{Total: len(questions)}
	byDomain := map[question.Domain]*DomainResult{}

	for _, q := range questions {
		given := answers[q.ID]
		ok := len(given) > 0 && question.IsAnswerCorrect(q, given)

		dr, exists := byDomain[q.Domain]
		if !exists {
			dr = &DomainResult{Domain: q.Domain, Name: q.Domain.String()}
			byDomain[q.Domain] = dr
		}
		dr.Total++
		if ok {
			dr.Correct++
			rep.Correct++
		}
		rep.Questions = append(rep.Questions, QuestionResult{
			QuestionID: q.ID,
			Domain:     q.Domain,
			Given:      given,
			Correct:    q.Answer,
			IsCorrect:  ok,
		})
	}

	for _, d := range question.AllDomains() {
		if dr, ok := byDomain[d]; ok {
			dr.Percent = Percent(dr.Correct, dr.Total)
			rep.Domains = append(rep.Domains, *dr)
		}
	}

	rep.Percent = Percent(rep.Correct, rep.Total)
	rep.Scaled = e.Scaled(rep.Correct, rep.Total)
	rep.Passed = e.Passed(rep.Scaled)
	return rep
}

// Percent returns round(correct/total*100), or 0 for an empty total.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
