package dataset

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"maldash/domain/core"
)

// MemoryStore is an in-memory DatasetStorePort implementation used in demo
// mode and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	datasets map[core.DatasetID]*Dataset
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{datasets: make(map[core.DatasetID]*Dataset)}
}

// Save stores a dataset, replacing any existing dataset with the same ID.
func (s *MemoryStore) Save(_ context.Context, ds *Dataset) error {
	if ds == nil || ds.ID.String() == "" {
		return core.NewValidationError("dataset", "missing ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.ID] = ds
	return nil
}

// Get loads a dataset by ID.
func (s *MemoryStore) Get(_ context.Context, id core.DatasetID) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	return ds, nil
}

// List returns manifests for all stored datasets, ordered by name.
func (s *MemoryStore) List(_ context.Context) ([]Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manifests := make([]Manifest, 0, len(s.datasets))
	for _, ds := range s.datasets {
		manifests = append(manifests, ds.Manifest())
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}
