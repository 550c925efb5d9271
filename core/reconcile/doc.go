// Package reconcile brings a persistent store of students in line with a
// tabular source.
//
// A run reads the source batch by batch, normalizes each row into a Record,
// and upserts it by natural key. Every entity created or matched during the
// run is "touched". Once the whole source has been consumed without a fatal
// error, every stored entity that was not touched is deleted, which gives the
// run replace-all semantics.
//
// # Components
//
//  1. Normalize: maps a raw row to a Record, defaulting missing fields.
//  2. Engine.Upsert: classifies one record as New, Updated or Duplicate.
//  3. Engine.Run: drives the source, accumulates a Summary, then prunes.
//  4. Prune: deletes stored ids that were not touched.
//  5. BuildReport: turns a Summary into counts for display.
//
// # Matching
//
// The natural key is (name, age, city). Under MatchExact, the default, the key
// is the whole payload, so a located entity can never differ and Updated is
// never produced. MatchName matches on name alone and compares age and city,
// which makes Updated reachable; it needs a Store that also implements
// NameFinder.
//
// # Failure handling
//
//   - *MultipleMatchError is per record: the record is skipped, recorded in
//     Summary.Skipped, and the run continues.
//   - Decode errors, *StoreError and context cancellation are fatal: the run
//     stops, Summary.Fatal is set, and pruning is never attempted.
//
// # Usage
//
//	engine, err := reconcile.NewEngine(store, logger, reconcile.Options{})
//	src, err := tabular.Open(path, "", tabular.WithChunkSize(cfg.ChunkSize))
//	defer src.Close()
//
//	summary, err := engine.Run(ctx, src)
//	report := reconcile.BuildReport(summary)
//	report.Log(logger)
package reconcile
