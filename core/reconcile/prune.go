package reconcile

import "context"

// Obsolete returns the members of all that are not in touched, ascending.
func Obsolete(all []EntityID, touched IDSet) []EntityID {
	stale := make(IDSet)
	for _, id := range all {
		if !touched.Has(id) {
			stale.Add(id)
		}
	}
	return stale.Sorted()
}

// Prune deletes every stored entity that was not touched and returns the
// number of entities removed. It must only be called after a source has been
// consumed without a fatal error.
func Prune(ctx context.Context, store Store, touched IDSet) (int, error) {
	all, err := store.AllIDs(ctx)
	if err != nil {
		return 0, &StoreError{Op: "all_ids", Err: err}
	}

	stale := Obsolete(all, touched)
	if len(stale) == 0 {
		return 0, nil
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := store.DeleteMany(ctx, stale); err != nil {
		return 0, &StoreError{Op: "delete_many", Err: err}
	}
	return len(stale), nil
}
