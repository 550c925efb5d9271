package reconcile_test

import (
	"context"
	"strings"
	"testing"

	"student-sync/core/reconcile"
	"student-sync/core/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleCSV = "name,age,city\n" +
	"Ann,20,Oslo\n" +
	"Bob,21,Rome\n" +
	",,Metropolis\n" +
	"Ann,20,Oslo\n" +
	"  Cid ,22, Nice \n"

func newEngine(t *testing.T, store reconcile.Store, mode reconcile.MatchMode) *reconcile.Engine {
	t.Helper()
	e, err := reconcile.NewEngine(store, zap.NewNop(), reconcile.Options{MatchMode: mode})
	require.NoError(t, err)
	return e
}

func csvSource(t *testing.T, content string, opts ...tabular.Option) tabular.Reader {
	t.Helper()
	r, err := tabular.NewReader(strings.NewReader(content), tabular.FormatDelimited, opts...)
	require.NoError(t, err)
	return r
}

func TestRun_FreshImport(t *testing.T) {
	store := newMemStore()
	engine := newEngine(t, store, "")

	summary, err := engine.Run(context.Background(), csvSource(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalSeen)
	assert.Len(t, summary.Inserted, 4)
	assert.Empty(t, summary.Updated)
	assert.Equal(t, []reconcile.Record{{Name: "Ann", Age: 20, City: "Oslo"}}, summary.Duplicates)
	assert.Len(t, summary.Touched, 4)
	assert.Equal(t, 2, summary.Chunks)
	assert.True(t, summary.Pruned)
	assert.NoError(t, summary.Fatal)

	assert.Equal(t, []reconcile.Record{
		{Name: "Ann", Age: 20, City: "Oslo"},
		{Name: "Bob", Age: 21, City: "Rome"},
		{Name: "Unknown", Age: 0, City: "Metropolis"},
		{Name: "Cid", Age: 22, City: "Nice"},
	}, store.records())

	report := reconcile.BuildReport(summary)
	assert.Equal(t, reconcile.StatusCompleted, report.Status)
	assert.Equal(t, 4, report.NumNew)
	assert.Equal(t, 1, report.NumDuplicates)
	assert.Equal(t, 0, report.NumDeleted)
}

func TestRun_Idempotent(t *testing.T) {
	store := newMemStore()
	engine := newEngine(t, store, "")

	_, err := engine.Run(context.Background(), csvSource(t, sampleCSV))
	require.NoError(t, err)
	before := store.records()

	summary, err := engine.Run(context.Background(), csvSource(t, sampleCSV))
	require.NoError(t, err)

	report := reconcile.BuildReport(summary)
	assert.Equal(t, 0, report.NumNew)
	assert.Equal(t, 0, report.NumUpdated)
	assert.Equal(t, report.TotalRecords, report.NumDuplicates)
	assert.Equal(t, 0, report.NumDeleted)
	assert.Equal(t, before, store.records())
}

func TestRun_ChunkBoundaryInvariance(t *testing.T) {
	var reports []reconcile.Report
	for _, size := range []int{1, 3, 1000} {
		store := newMemStore(reconcile.Record{Name: "Z", Age: 99, City: "Nowhere"})
		engine := newEngine(t, store, "")

		summary, err := engine.Run(context.Background(), csvSource(t, sampleCSV, tabular.WithChunkSize(size)))
		require.NoError(t, err)

		report := reconcile.BuildReport(summary)
		report.Chunks = 0
		reports = append(reports, report)
	}

	assert.Equal(t, reports[0], reports[1])
	assert.Equal(t, reports[0], reports[2])
}

func TestRun_DeletesObsolete(t *testing.T) {
	store := newMemStore(
		reconcile.Record{Name: "Z", Age: 99, City: "Nowhere"},
		reconcile.Record{Name: "Ann", Age: 20, City: "Oslo"},
	)
	engine := newEngine(t, store, "")

	summary, err := engine.Run(context.Background(), csvSource(t, "name,age,city\nAnn,20,Oslo\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DeletedCount)
	assert.Equal(t, [][]reconcile.EntityID{{1}}, store.deletes)
	assert.Equal(t, []reconcile.Record{{Name: "Ann", Age: 20, City: "Oslo"}}, store.records())

	// Every stored row was seen in this run.
	ids, _ := store.AllIDs(context.Background())
	for _, id := range ids {
		assert.True(t, summary.Touched.Has(id))
	}
}

func TestRun_AmbiguousMatch(t *testing.T) {
	store := newMemStore(
		reconcile.Record{Name: "Dup", Age: 20, City: "Town"},
		reconcile.Record{Name: "Dup", Age: 20, City: "Town"},
	)
	engine := newEngine(t, store, "")

	summary, err := engine.Run(context.Background(), csvSource(t, "name,age,city\nDup,20,Town\n"))
	require.NoError(t, err)

	assert.Empty(t, summary.Inserted)
	assert.Empty(t, summary.Updated)
	assert.Empty(t, summary.Duplicates)
	assert.Empty(t, summary.Touched)
	require.Len(t, summary.Skipped, 1)

	var mm *reconcile.MultipleMatchError
	require.ErrorAs(t, summary.Skipped[0].Err, &mm)
	assert.Equal(t, []reconcile.EntityID{1, 2}, mm.IDs)
	assert.Equal(t, reconcile.Position{Chunk: 1, Row: 1}, summary.Skipped[0].Position)

	// Neither ambiguous entity was affirmed, so both are pruned.
	assert.Equal(t, 2, summary.DeletedCount)
	assert.Empty(t, store.records())

	report := reconcile.BuildReport(summary)
	assert.Equal(t, reconcile.StatusCompletedWithSkips, report.Status)
	assert.Equal(t, 1, report.NumSkipped)
	assert.Contains(t, report.Skipped[0].Reason, "multiple students found")
}

func TestRun_DecodeFailureSkipsPrune(t *testing.T) {
	store := newMemStore(reconcile.Record{Name: "Z", Age: 99, City: "Nowhere"})
	engine := newEngine(t, store, "")

	src := "name,age,city\n" +
		"Ann,20,Oslo\n" +
		"Bob,21,Rome\n" +
		"Cid,22,Nice\n" +
		"Dee,23,Lyon,broken\n"

	summary, err := engine.Run(context.Background(), csvSource(t, src))

	var de *tabular.DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, summary.Fatal, err)
	assert.False(t, summary.Pruned)
	assert.Equal(t, 0, summary.DeletedCount)
	assert.Len(t, summary.Inserted, 3)
	assert.Empty(t, store.deletes)
	assert.Contains(t, store.records(), reconcile.Record{Name: "Z", Age: 99, City: "Nowhere"})

	report := reconcile.BuildReport(summary)
	assert.Equal(t, reconcile.StatusAborted, report.Status)
	assert.False(t, report.Succeeded())
	assert.NotEmpty(t, report.Error)
	assert.Equal(t, 3, report.TotalRecords)
}

func TestRun_StoreFailureSkipsPrune(t *testing.T) {
	store := newMemStore(reconcile.Record{Name: "Z", Age: 99, City: "Nowhere"})
	store.failCreateAfter = 1
	engine := newEngine(t, store, "")

	summary, err := engine.Run(context.Background(), csvSource(t, sampleCSV))

	var se *reconcile.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create", se.Op)
	assert.ErrorIs(t, err, errInjected)
	assert.False(t, summary.Pruned)
	assert.Len(t, summary.Inserted, 1)
	assert.Empty(t, store.deletes)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	store := newMemStore(reconcile.Record{Name: "Z", Age: 99, City: "Nowhere"})
	engine := newEngine(t, store, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := engine.Run(ctx, csvSource(t, sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, summary.Pruned)
	assert.Len(t, store.records(), 1)
}

func TestRun_CancelledMidRun(t *testing.T) {
	store := newMemStore(reconcile.Record{Name: "Z", Age: 99, City: "Nowhere"})
	engine := newEngine(t, store, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel as soon as the second chunk has been read.
	src := csvSource(t, sampleCSV, tabular.WithObserver(func(p tabular.Progress) {
		if p.Chunk == 2 {
			cancel()
		}
	}))

	summary, err := engine.Run(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, summary.Chunks)
	assert.Equal(t, 3, summary.TotalSeen)
	assert.False(t, summary.Pruned)
	assert.Empty(t, store.deletes)
}

func TestRun_NameMatchUpdates(t *testing.T) {
	store := newMemStore(reconcile.Record{Name: "Ann", Age: 20, City: "Oslo"})
	engine := newEngine(t, store, reconcile.MatchName)
	assert.Equal(t, reconcile.MatchName, engine.MatchMode())

	summary, err := engine.Run(context.Background(), csvSource(t, "name,age,city\nAnn,21,Bergen\nBob,30,Rome\n"))
	require.NoError(t, err)

	assert.True(t, summary.Updated.Has(1))
	assert.Len(t, summary.Inserted, 1)
	assert.Equal(t, 0, summary.DeletedCount)
	assert.Equal(t, []reconcile.Record{
		{Name: "Ann", Age: 21, City: "Bergen"},
		{Name: "Bob", Age: 30, City: "Rome"},
	}, store.records())
}

func TestRun_ExactMatchNeverUpdates(t *testing.T) {
	store := newMemStore(reconcile.Record{Name: "Ann", Age: 20, City: "Oslo"})
	engine := newEngine(t, store, reconcile.MatchExact)

	summary, err := engine.Run(context.Background(), csvSource(t, "name,age,city\nAnn,21,Bergen\n"))
	require.NoError(t, err)

	// A drifted row is a new entity and the old one becomes obsolete.
	assert.Empty(t, summary.Updated)
	assert.Len(t, summary.Inserted, 1)
	assert.Equal(t, 1, summary.DeletedCount)
}

func TestNewEngine(t *testing.T) {
	_, err := reconcile.NewEngine(nil, nil, reconcile.Options{})
	assert.Error(t, err)

	_, err = reconcile.NewEngine(exactOnly{newMemStore()}, nil, reconcile.Options{MatchMode: reconcile.MatchName})
	assert.ErrorIs(t, err, reconcile.ErrNameMatchUnsupported)

	_, err = reconcile.NewEngine(newMemStore(), nil, reconcile.Options{MatchMode: "fuzzy"})
	assert.Error(t, err)

	e, err := reconcile.NewEngine(exactOnly{newMemStore()}, nil, reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, reconcile.MatchExact, e.MatchMode())
}

func TestUpsert(t *testing.T) {
	store := newMemStore()
	engine := newEngine(t, store, "")
	ctx := context.Background()
	rec := reconcile.Record{Name: "Ann", Age: 20, City: "Oslo"}

	out := engine.Upsert(ctx, rec)
	require.NoError(t, out.Err)
	assert.Equal(t, reconcile.StatusNew, out.Status)

	again := engine.Upsert(ctx, rec)
	require.NoError(t, again.Err)
	assert.Equal(t, reconcile.StatusDuplicate, again.Status)
	assert.Equal(t, out.ID, again.ID)
}

func TestRun_Sequential(t *testing.T) {
	store := newMemStore()
	engine := newEngine(t, store, "")

	done := make(chan *reconcile.Summary, 2)
	for i := 0; i < 2; i++ {
		src := csvSource(t, sampleCSV)
		go func() {
			s, _ := engine.Run(context.Background(), src)
			done <- s
		}()
	}

	first, second := <-done, <-done
	// Runs do not interleave, so exactly one of them inserted the rows.
	assert.Equal(t, 4, len(first.Inserted)+len(second.Inserted))
	assert.Len(t, store.records(), 4)
}
