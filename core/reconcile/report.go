package reconcile

import (
	"go.uber.org/zap"
)

// RunStatus is the overall verdict of a run.
type RunStatus string

const (
	StatusCompleted          RunStatus = "completed"
	StatusCompletedWithSkips RunStatus = "completed_with_skips"
	StatusAborted            RunStatus = "aborted"
)

// SkippedRecord is the display form of a RecordError.
type SkippedRecord struct {
	Position Position `json:"position"`
	Record   Record   `json:"record"`
	Reason   string   `json:"reason"`
}

// Report is the caller-facing result of a run.
type Report struct {
	Status        RunStatus       `json:"status"`
	TotalRecords  int             `json:"total_records"`
	NumNew        int             `json:"num_new"`
	NumUpdated    int             `json:"num_updated"`
	NumDuplicates int             `json:"num_duplicates"`
	NumDeleted    int             `json:"num_deleted"`
	NumSkipped    int             `json:"num_skipped"`
	Chunks        int             `json:"chunks"`
	Pruned        bool            `json:"pruned"`
	Duplicates    []Record        `json:"duplicates"`
	Skipped       []SkippedRecord `json:"skipped"`
	Error         string          `json:"error,omitempty"`
}

// BuildReport aggregates a finished summary. A nil summary yields an empty
// aborted report.
func BuildReport(s *Summary) Report {
	if s == nil {
		return Report{Status: StatusAborted, Duplicates: []Record{}, Skipped: []SkippedRecord{}}
	}

	r := Report{
		TotalRecords:  s.TotalSeen,
		NumNew:        len(s.Inserted),
		NumUpdated:    len(s.Updated),
		NumDuplicates: len(s.Duplicates),
		NumDeleted:    s.DeletedCount,
		NumSkipped:    len(s.Skipped),
		Chunks:        s.Chunks,
		Pruned:        s.Pruned,
		Duplicates:    append([]Record{}, s.Duplicates...),
		Skipped:       make([]SkippedRecord, 0, len(s.Skipped)),
	}
	for _, sk := range s.Skipped {
		r.Skipped = append(r.Skipped, SkippedRecord{
			Position: sk.Position,
			Record:   sk.Record,
			Reason:   sk.Err.Error(),
		})
	}

	switch {
	case s.Fatal != nil:
		r.Status = StatusAborted
		r.Error = s.Fatal.Error()
	case len(s.Skipped) > 0:
		r.Status = StatusCompletedWithSkips
	default:
		r.Status = StatusCompleted
	}
	return r
}

// Succeeded reports whether the run completed and pruned.
func (r Report) Succeeded() bool {
	return r.Status != StatusAborted
}

// Log writes the console rendering of the report.
func (r Report) Log(l *zap.Logger) {
	if r.Status == StatusAborted {
		l.Error("Import aborted",
			zap.Int("records_processed", r.TotalRecords),
			zap.Int("inserted", r.NumNew),
			zap.Int("updated", r.NumUpdated),
			zap.Bool("pruned", r.Pruned),
			zap.String("error", r.Error))
		return
	}

	l.Info("Source contains records", zap.Int("count", r.TotalRecords))
	l.Info("Records inserted into the database", zap.Int("count", r.NumNew))
	l.Info("Records updated in the database", zap.Int("count", r.NumUpdated))
	l.Warn("Duplicate records found", zap.Int("count", r.NumDuplicates))
	l.Info("Obsolete records deleted from the database", zap.Int("count", r.NumDeleted))

	for _, d := range r.Duplicates {
		l.Warn("Duplicate record", zap.String("name", d.Name), zap.Int("age", d.Age), zap.String("city", d.City))
	}

	if r.NumSkipped > 0 {
		for _, sk := range r.Skipped {
			l.Warn("Skipped record", zap.Stringer("position", sk.Position), zap.String("reason", sk.Reason))
		}
		l.Warn("Imported students with skipped records", zap.Int("skipped", r.NumSkipped))
		return
	}
	l.Info("Successfully imported students")
}
