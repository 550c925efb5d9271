package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"student-sync/core/tabular"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Options configures an Engine.
type Options struct {
	MatchMode MatchMode
}

// Engine reconciles tabular sources against a Store.
// Runs on the same Engine are serialized.
type Engine struct {
	store  Store
	names  NameFinder
	mode   MatchMode
	logger *zap.Logger
	runs   *semaphore.Weighted
}

// NewEngine creates an engine over store. A nil logger is replaced by a no-op
// logger. MatchName requires store to implement NameFinder.
func NewEngine(store Store, logger *zap.Logger, opts Options) (*Engine, error) {
	if store == nil {
		return nil, errors.New("reconcile: nil store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mode, err := ParseMatchMode(string(opts.MatchMode))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:  store,
		mode:   mode,
		logger: logger,
		runs:   semaphore.NewWeighted(1),
	}
	if mode == MatchName {
		finder, ok := store.(NameFinder)
		if !ok {
			return nil, ErrNameMatchUnsupported
		}
		e.names = finder
	}
	return e, nil
}

// MatchMode returns the predicate the engine matches records with.
func (e *Engine) MatchMode() MatchMode {
	return e.mode
}

// Upsert inserts rec or affirms the stored entity it matches.
// Ambiguous matches and store failures are reported in Outcome.Err.
func (e *Engine) Upsert(ctx context.Context, rec Record) Outcome {
	matches, err := e.find(ctx, rec)
	if err != nil {
		return Outcome{Err: &StoreError{Op: "find", Err: err}}
	}

	switch len(matches) {
	case 0:
		created, err := e.store.Create(ctx, rec)
		if err != nil {
			return Outcome{Err: &StoreError{Op: "create", Err: err}}
		}
		return Outcome{Status: StatusNew, ID: created.ID}

	case 1:
		existing := matches[0]
		// Under MatchExact the lookup already compared age and city, so this
		// branch only fires under MatchName.
		if existing.Age != rec.Age || existing.City != rec.City {
			if err := e.store.Update(ctx, existing.ID, rec.Age, rec.City); err != nil {
				return Outcome{Err: &StoreError{Op: "update", Err: err}}
			}
			return Outcome{Status: StatusUpdated, ID: existing.ID}
		}
		return Outcome{Status: StatusDuplicate, ID: existing.ID}

	default:
		ids := make([]EntityID, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return Outcome{Err: &MultipleMatchError{Record: rec, IDs: ids}}
	}
}

func (e *Engine) find(ctx context.Context, rec Record) ([]Entity, error) {
	if e.mode == MatchName {
		return e.names.FindByName(ctx, rec.Name)
	}
	return e.store.FindExact(ctx, rec.Name, rec.Age, rec.City)
}

// Run consumes src batch by batch, upserts every normalized row and, if the
// whole source was read without a fatal error, prunes entities the source no
// longer mentions.
//
// The returned Summary is never nil. On a fatal error it describes the rows
// processed before the failure, Summary.Fatal is set, Summary.Pruned is false
// and the same error is returned.
func (e *Engine) Run(ctx context.Context, src tabular.Reader) (*Summary, error) {
	summary := NewSummary()

	if err := e.runs.Acquire(ctx, 1); err != nil {
		summary.Fatal = err
		return summary, err
	}
	defer e.runs.Release(1)

	if err := e.consume(ctx, src, summary); err != nil {
		summary.Fatal = err
		e.logger.Error("Import aborted, obsolete records were not deleted",
			zap.Int("rows_processed", summary.TotalSeen),
			zap.Int("chunks", summary.Chunks),
			zap.Error(err))
		return summary, err
	}

	deleted, err := Prune(ctx, e.store, summary.Touched)
	if err != nil {
		summary.Fatal = fmt.Errorf("prune obsolete records: %w", err)
		return summary, summary.Fatal
	}
	summary.DeletedCount = deleted
	summary.Pruned = true

	e.logger.Debug("Import finished",
		zap.Int("total", summary.TotalSeen),
		zap.Int("new", len(summary.Inserted)),
		zap.Int("updated", len(summary.Updated)),
		zap.Int("duplicates", len(summary.Duplicates)),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Int("deleted", deleted))
	return summary, nil
}

// consume upserts every row of src in order. It returns the first fatal error.
func (e *Engine) consume(ctx context.Context, src tabular.Reader, summary *Summary) error {
	for {
		batch, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		summary.Chunks++

		for _, row := range batch.Rows {
			if err := ctx.Err(); err != nil {
				return err
			}

			summary.TotalSeen++
			pos := Position{Sheet: batch.Sheet, Chunk: batch.Index, Row: summary.TotalSeen}
			rec := Normalize(row)

			out := e.Upsert(ctx, rec)
			var storeErr *StoreError
			if errors.As(out.Err, &storeErr) {
				return fmt.Errorf("%s: %w", pos, storeErr)
			}
			if out.Err != nil {
				e.logger.Warn("Skipping record", zap.Stringer("position", pos), zap.Error(out.Err))
			}
			summary.apply(pos, rec, out)
		}
	}
}

// ProgressLogger returns a tabular.Observer that logs each batch.
func ProgressLogger(logger *zap.Logger) tabular.Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(p tabular.Progress) {
		fields := []zap.Field{
			zap.Int("chunk", p.Chunk),
			zap.Int("rows", p.Rows),
			zap.Int("rows_read", p.RowsRead),
		}
		if p.Sheet > 0 {
			fields = append(fields, zap.Int("sheet", p.Sheet), zap.String("sheet_name", p.SheetName))
		}
		logger.Info("Processing chunk", fields...)
	}
}
