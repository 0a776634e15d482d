package mastery

// Snapshot is a point-in-time, read-only view of one user's records keyed by
// question ID. The zero value is an empty snapshot.
type Snapshot struct {
	records map[string]Record
}

// NewSnapshot indexes records by question ID. A later row for the same
// question replaces an earlier one.
func NewSnapshot(records []Record) Snapshot {
	m := make(map[string]Record, len(records))
	for _, r := range records {
		m[r.QuestionID] = r
	}
	return Snapshot{records: m}
}

// Get returns the record for questionID, if the question was ever attempted.
func (s Snapshot) Get(questionID string) (Record, bool) {
	r, ok := s.records[questionID]
	return r, ok
}

func (s Snapshot) Len() int {
	return len(s.records)
}

// MaxWeight returns the largest non-nil weight in the snapshot, and false
// when every record is excluded or the snapshot is empty.
func (s Snapshot) MaxWeight() (float64, bool) {
	var (
		best  float64
		found bool
	)
	for _, r := range s.records {
		if r.Weight == nil {
			continue
		}
		if !found || *r.Weight > best {
			best = *r.Weight
			found = true
		}
	}
	return best, found
}
