package ports

import (
	"context"

	"maldash/domain/core"
	"maldash/internal/dataset"
)

// DatasetStorePort abstracts dataset persistence so the UI layer can run
// against Postgres or an in-memory store interchangeably.
type DatasetStorePort interface {
	// Save stores a dataset, replacing any existing dataset with the same ID.
	Save(ctx context.Context, ds *dataset.Dataset) error

	// Get loads a dataset by ID. Returns core.ErrDatasetNotFound when absent.
	Get(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error)

	// List returns manifests for all stored datasets.
	List(ctx context.Context) ([]dataset.Manifest, error)
}
