package reconcile

import "context"

// Store is the persistent student store a run reconciles against.
type Store interface {
	// FindExact returns every entity whose name, age and city all equal the
	// arguments.
	FindExact(ctx context.Context, name string, age int, city string) ([]Entity, error)

	// Create persists a new entity and returns it with its assigned ID.
	Create(ctx context.Context, rec Record) (Entity, error)

	// Update changes age and city of an existing entity.
	Update(ctx context.Context, id EntityID, age int, city string) error

	// AllIDs returns the IDs of every stored entity.
	AllIDs(ctx context.Context) ([]EntityID, error)

	// DeleteMany removes the given entities. Unknown IDs are ignored.
	DeleteMany(ctx context.Context, ids []EntityID) error
}

// NameFinder is implemented by stores that can match on name alone.
// It is required by MatchName.
type NameFinder interface {
	FindByName(ctx context.Context, name string) ([]Entity, error)
}
