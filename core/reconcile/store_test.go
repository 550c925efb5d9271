package reconcile_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"student-sync/core/reconcile"
)

var errInjected = errors.New("injected failure")

// memStore is an in-memory reconcile.Store that also implements NameFinder.
type memStore struct {
	mu      sync.Mutex
	next    reconcile.EntityID
	rows    map[reconcile.EntityID]reconcile.Entity
	deletes [][]reconcile.EntityID

	// failCreateAfter makes Create fail once this many creates succeeded.
	failCreateAfter int
	creates         int
}

func newMemStore(seed ...reconcile.Record) *memStore {
	s := &memStore{rows: make(map[reconcile.EntityID]reconcile.Entity), failCreateAfter: -1}
	for _, r := range seed {
		_, _ = s.Create(context.Background(), r)
	}
	s.creates = 0
	return s
}

func (s *memStore) FindExact(_ context.Context, name string, age int, city string) ([]reconcile.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []reconcile.Entity
	for _, e := range s.sorted() {
		if e.Name == name && e.Age == age && e.City == city {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) FindByName(_ context.Context, name string) ([]reconcile.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []reconcile.Entity
	for _, e := range s.sorted() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, rec reconcile.Record) (reconcile.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateAfter >= 0 && s.creates >= s.failCreateAfter {
		return reconcile.Entity{}, errInjected
	}
	s.creates++
	s.next++
	e := reconcile.Entity{ID: s.next, Name: rec.Name, Age: rec.Age, City: rec.City}
	s.rows[e.ID] = e
	return e, nil
}

func (s *memStore) Update(_ context.Context, id reconcile.EntityID, age int, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.rows[id]
	if !ok {
		return errors.New("not found")
	}
	e.Age, e.City = age, city
	s.rows[id] = e
	return nil
}

func (s *memStore) AllIDs(_ context.Context) ([]reconcile.EntityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]reconcile.EntityID, 0, len(s.rows))
	for _, e := range s.sorted() {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (s *memStore) DeleteMany(_ context.Context, ids []reconcile.EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, append([]reconcile.EntityID(nil), ids...))
	for _, id := range ids {
		delete(s.rows, id)
	}
	return nil
}

func (s *memStore) records() []reconcile.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []reconcile.Record
	for _, e := range s.sorted() {
		out = append(out, e.Record())
	}
	return out
}

func (s *memStore) sorted() []reconcile.Entity {
	out := make([]reconcile.Entity, 0, len(s.rows))
	for _, e := range s.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// exactOnly hides FindByName.
type exactOnly struct {
	reconcile.Store
}
