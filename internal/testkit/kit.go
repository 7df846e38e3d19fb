package testkit

import (
	"context"
	"log"

	"maldash/domain/core"
	"maldash/internal/dataset"
)

// TestKit provides demo fixtures: an in-memory dataset store pre-loaded
// with a synthetic surveillance dataset. Used by the demo server mode and
// by tests that need a populated store.
type TestKit struct {
	store  *dataset.MemoryStore
	demoID core.DatasetID
}

// NewTestKit creates a test kit with the default synthetic dataset.
func NewTestKit() (*TestKit, error) {
	return NewTestKitWithConfig(DefaultSurveillanceConfig())
}

// NewTestKitWithConfig creates a test kit from a custom generator config.
func NewTestKitWithConfig(config SurveillanceConfig) (*TestKit, error) {
	ds, err := NewSurveillanceGenerator(config).Generate()
	if err != nil {
		return nil, err
	}

	store := dataset.NewMemoryStore()
	if err := store.Save(context.Background(), ds); err != nil {
		return nil, err
	}

	log.Printf("[TestKit] Loaded demo dataset %s (%d metrics, %d rows)",
		ds.ID, ds.MetricCount(), ds.RowCount())

	return &TestKit{store: store, demoID: ds.ID}, nil
}

// Store returns the pre-loaded in-memory dataset store.
func (k *TestKit) Store() *dataset.MemoryStore { return k.store }

// DemoDatasetID returns the ID of the generated dataset.
func (k *TestKit) DemoDatasetID() core.DatasetID { return k.demoID }
