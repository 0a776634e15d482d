package question

import "sort"

// IsAnswerCorrect checks a learner's selection. Multi-answer questions compare
// as sets; single-answer questions need exactly one matching letter.
func IsAnswerCorrect(q Question, given []string) bool {
	if !q.MultiAnswer {
		return len(given) == 1 && len(q.Answer) == 1 && given[0] == q.Answer[0]
	}
	if len(given) != len(q.Answer) {
		return false
	}
	a := append([]string(nil), given...)
	b := append([]string(nil), q.Answer...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
