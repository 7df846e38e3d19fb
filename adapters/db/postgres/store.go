package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"maldash/domain/core"
	"maldash/internal/dataset"
	"maldash/internal/errors"
)

// DatasetStore is the Postgres-backed DatasetStorePort implementation.
// Columns are stored one row per metric as float8 arrays; NaN survives the
// round trip, so ingested gaps are preserved.
type DatasetStore struct {
	db *sqlx.DB
}

// Connect opens the database and verifies the connection.
func Connect(ctx context.Context, url string) (*DatasetStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}
	return &DatasetStore{db: db}, nil
}

// NewDatasetStore wraps an existing connection (used by tests).
func NewDatasetStore(db *sqlx.DB) *DatasetStore {
	return &DatasetStore{db: db}
}

// Close releases the underlying connection pool.
func (s *DatasetStore) Close() error { return s.db.Close() }

type datasetRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	RowCount    int       `db:"row_count"`
	CreatedAt   time.Time `db:"created_at"`
}

type metricRow struct {
	DatasetID string          `db:"dataset_id"`
	Position  int             `db:"position"`
	Metric    string          `db:"metric"`
	Series    pq.Float64Array `db:"series"`
}

// Save stores a dataset, replacing any existing dataset with the same ID.
func (s *DatasetStore) Save(ctx context.Context, ds *dataset.Dataset) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (id, name, description, row_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    row_count = EXCLUDED.row_count`,
		ds.ID.String(), ds.Name, ds.Description, ds.RowCount(), ds.CreatedAt.Time())
	if err != nil {
		return errors.Wrapf(err, "failed to upsert dataset %s", ds.ID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM dataset_metrics WHERE dataset_id = $1`, ds.ID.String()); err != nil {
		return errors.Wrapf(err, "failed to clear metrics for dataset %s", ds.ID)
	}

	for position, metric := range ds.Metrics() {
		values, err := ds.Column(metric)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO dataset_metrics (dataset_id, position, metric, series)
			VALUES ($1, $2, $3, $4)`,
			ds.ID.String(), position, metric.String(), pq.Float64Array(values))
		if err != nil {
			return errors.Wrapf(err, "failed to insert metric %s", metric)
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit dataset save")
}

// Get loads a dataset by ID.
func (s *DatasetStore) Get(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	var row datasetRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, name, description, row_count, created_at FROM datasets WHERE id = $1`,
		id.String())
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dataset %s", id)
	}

	var metrics []metricRow
	err = s.db.SelectContext(ctx, &metrics, `
		SELECT dataset_id, position, metric, series
		FROM dataset_metrics WHERE dataset_id = $1 ORDER BY position`,
		id.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load metrics for dataset %s", id)
	}

	ds := dataset.New(row.Name)
	ds.ID = core.DatasetID(row.ID)
	ds.Description = row.Description
	ds.CreatedAt = core.NewTimestamp(row.CreatedAt)
	for _, m := range metrics {
		if err := ds.AddColumn(core.MetricKey(m.Metric), []float64(m.Series)); err != nil {
			return nil, errors.Wrapf(err, "stored column %s is inconsistent", m.Metric)
		}
	}
	return ds, nil
}

// List returns manifests for all stored datasets, ordered by name.
func (s *DatasetStore) List(ctx context.Context) ([]dataset.Manifest, error) {
	var rows []datasetRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, name, description, row_count, created_at FROM datasets ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list datasets")
	}

	manifests := make([]dataset.Manifest, 0, len(rows))
	for _, row := range rows {
		var keys []string
		err := s.db.SelectContext(ctx, &keys,
			`SELECT metric FROM dataset_metrics WHERE dataset_id = $1 ORDER BY position`,
			row.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list metrics for dataset %s", row.ID)
		}
		metrics := make([]core.MetricKey, len(keys))
		for i, k := range keys {
			metrics[i] = core.MetricKey(k)
		}
		manifests = append(manifests, dataset.Manifest{
			ID:          core.DatasetID(row.ID),
			Name:        row.Name,
			Metrics:     metrics,
			RowCount:    row.RowCount,
			Fingerprint: core.ComputeDatasetFingerprint(metrics, row.RowCount),
			CreatedAt:   core.NewTimestamp(row.CreatedAt),
		})
	}
	return manifests, nil
}

// Migrate applies the embedded schema. Idempotent.
func (s *DatasetStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "failed to apply schema")
}

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	row_count   INT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS dataset_metrics (
	dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	position   INT NOT NULL,
	metric     TEXT NOT NULL,
	series     FLOAT8[] NOT NULL,
	PRIMARY KEY (dataset_id, metric)
);
`
