package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrInvalidEntry is returned when a bank entry cannot be used.
var ErrInvalidEntry = errors.New("invalid question entry")

// Bank is the static question collection partitioned by domain.
type Bank struct {
	byDomain map[Domain][]Question
	byID     map[string]Question
	total    int
}

// rawQuestion mirrors the master question file, where answer is either a
// single letter or a list of letters.
type rawQuestion struct {
	ID          string            `json:"id"`
	Domain      Domain            `json:"domainId"`
	Prompt      string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      json.RawMessage   `json:"answer"`
	Explanation string            `json:"explanation"`
	Source      string            `json:"source"`
	MultiAnswer bool              `json:"isMultiAnswer"`
}

// LoadBankFile reads the master question file at path.
func LoadBankFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return LoadBank(f)
}

// LoadBank parses a JSON array of questions. Duplicate IDs keep the first entry.
func LoadBank(r io.Reader) (*Bank, error) {
	var raws []rawQuestion
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	seen := make(map[string]struct{}, len(raws))
	qs := make([]Question, 0, len(raws))
	for i, raw := range raws {
		q, err := raw.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}
		qs = append(qs, q)
	}
	return NewBank(qs), nil
}

// NewBank builds a bank from already-validated questions.
func NewBank(qs []Question) *Bank {
	b := &Bank{byDomain: make(map[Domain][]Question), byID: make(map[string]Question, len(qs))}
	for _, q := range qs {
		if _, dup := b.byID[q.ID]; dup {
			continue
		}
		b.byID[q.ID] = q
		b.byDomain[q.Domain] = append(b.byDomain[q.Domain], q)
		b.total++
	}
	return b
}

func (raw rawQuestion) toQuestion() (Question, error) {
	if raw.ID == "" {
		return Question{}, fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if !raw.Domain.Valid() {
		return Question{}, fmt.Errorf("%w: %s has unknown domain %d", ErrInvalidEntry, raw.ID, raw.Domain)
	}
	answer, err := decodeAnswer(raw.Answer)
	if err != nil {
		return Question{}, fmt.Errorf("%w: %s answer: %v", ErrInvalidEntry, raw.ID, err)
	}
	return Question{
		ID:          raw.ID,
		Domain:      raw.Domain,
		Prompt:      raw.Prompt,
		Options:     raw.Options,
		Answer:      answer,
		Explanation: raw.Explanation,
		Source:      raw.Source,
		MultiAnswer: raw.MultiAnswer,
	}, nil
}

func decodeAnswer(data json.RawMessage) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		return []string{single}, nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return nil, err
	}
	return multi, nil
}

// Domain returns a copy of the questions in d.
func (b *Bank) Domain(d Domain) []Question {
	src := b.byDomain[d]
	out := make([]Question, len(src))
	copy(out, src)
	return out
}

// Question looks up a single question by ID.
func (b *Bank) Question(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// All returns every question ordered by domain.
func (b *Bank) All() []Question {
	out := make([]Question, 0, b.total)
	for _, d := range b.Domains() {
		out = append(out, b.byDomain[d]...)
	}
	return out
}

// Domains lists the domains that hold at least one question.
func (b *Bank) Domains() []Domain {
	ds := make([]Domain, 0, len(b.byDomain))
	for d := range b.byDomain {
		ds = append(ds, d)
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })
	return ds
}

// Len is the total number of questions.
func (b *Bank) Len() int {
	return b.total
}
