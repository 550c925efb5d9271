package reconcile

import (
	"errors"
	"fmt"
)

// ErrNameMatchUnsupported is returned by NewEngine when MatchName is requested
// for a store that cannot look entities up by name.
var ErrNameMatchUnsupported = errors.New("store does not support matching by name")

// MultipleMatchError reports that more than one stored entity matched a record.
// The record is skipped; the run continues.
type MultipleMatchError struct {
	Record Record
	IDs    []EntityID
}

func (e *MultipleMatchError) Error() string {
	return fmt.Sprintf("multiple students found with name: %s, age: %d, city: %s (%d matches)",
		e.Record.Name, e.Record.Age, e.Record.City, len(e.IDs))
}

// StoreError wraps a failed store call. It aborts the run.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
