package reconcile

import "sort"

// IDSet is a set of entity identifiers.
type IDSet map[EntityID]struct{}

// Add inserts id into the set.
func (s IDSet) Add(id EntityID) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id EntityID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []EntityID {
	ids := make([]EntityID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Summary accumulates the outcome of one run. It is owned by that run and
// must not be shared between concurrent runs.
type Summary struct {
	TotalSeen  int
	Inserted   IDSet
	Updated    IDSet
	Touched    IDSet
	Duplicates []Record
	Skipped    []RecordError

	DeletedCount int
	Chunks       int

	// Pruned is true only when the pruner ran to completion.
	Pruned bool
	// Fatal is the error that aborted the run, if any.
	Fatal error
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{
		Inserted:   make(IDSet),
		Updated:    make(IDSet),
		Touched:    make(IDSet),
		Duplicates: []Record{},
		Skipped:    []RecordError{},
	}
}

// apply folds one outcome into the summary.
func (s *Summary) apply(pos Position, rec Record, out Outcome) {
	if out.Err != nil {
		s.Skipped = append(s.Skipped, RecordError{Position: pos, Record: rec, Err: out.Err})
		return
	}

	switch out.Status {
	case StatusNew:
		s.Inserted.Add(out.ID)
	case StatusUpdated:
		s.Updated.Add(out.ID)
	case StatusDuplicate:
		s.Duplicates = append(s.Duplicates, rec)
	}
	s.Touched.Add(out.ID)
}
