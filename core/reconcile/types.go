package reconcile

import (
	"fmt"
	"strings"
)

// DefaultText replaces missing or blank name and city values.
const DefaultText = "Unknown"

// EntityID is the store-assigned identifier of a student.
// It is stable across updates.
type EntityID uint

// Record is a normalized source row. Name and City are never blank.
type Record struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	City string `json:"city"`
}

// String renders the record as its natural-key triple.
func (r Record) String() string {
	return fmt.Sprintf("(%s, %d, %s)", r.Name, r.Age, r.City)
}

// Entity is a stored student.
type Entity struct {
	ID   EntityID `json:"id"`
	Name string   `json:"name"`
	Age  int      `json:"age"`
	City string   `json:"city"`
}

// Record returns the entity's payload.
func (e Entity) Record() Record {
	return Record{Name: e.Name, Age: e.Age, City: e.City}
}

// Status classifies one upserted record.
type Status int

const (
	// StatusNew means the record created a new entity.
	StatusNew Status = iota + 1
	// StatusUpdated means an existing entity's age or city changed.
	StatusUpdated
	// StatusDuplicate means an existing entity already matched exactly.
	StatusDuplicate
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusUpdated:
		return "updated"
	case StatusDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Outcome is the result of upserting one record.
// When Err is set, Status and ID are meaningless.
type Outcome struct {
	Status Status
	ID     EntityID
	Err    error
}

// MatchMode selects the predicate used to locate stored entities.
type MatchMode string

const (
	// MatchExact matches on (name, age, city).
	MatchExact MatchMode = "exact"
	// MatchName matches on name alone.
	MatchName MatchMode = "name"
)

// ParseMatchMode accepts "exact" or "name". An empty string means MatchExact.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchName:
		return MatchName, nil
	default:
		return "", fmt.Errorf("unknown match mode %q: expected %q or %q", s, MatchExact, MatchName)
	}
}

// Position locates a record within the run.
type Position struct {
	// Sheet is the 1-based sheet number, zero for delimited sources.
	Sheet int `json:"sheet,omitempty"`
	// Chunk is the 1-based chunk number within the sheet.
	Chunk int `json:"chunk"`
	// Row is the 1-based record number across the whole run.
	Row int `json:"row"`
}

func (p Position) String() string {
	if p.Sheet > 0 {
		return fmt.Sprintf("sheet %d chunk %d row %d", p.Sheet, p.Chunk, p.Row)
	}
	return fmt.Sprintf("chunk %d row %d", p.Chunk, p.Row)
}

// RecordError is a recoverable failure for a single record.
type RecordError struct {
	Position Position
	Record   Record
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Position, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
