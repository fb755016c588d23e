// Package store archives computed charts under stable identifiers.
//
// Two backends are provided: an in-memory store for tests and
// single-process use, and a MongoDB store for server deployments. Both
// satisfy the same interface; records are immutable once saved.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/grahalabs/jataka/pkg/errors"
	"github.com/grahalabs/jataka/pkg/pipeline"
)

// Record is one archived chart: the request that produced it and the
// full result.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Request   pipeline.Options `json:"request" bson:"request"`
	Result    *pipeline.Result `json:"result" bson:"result"`
}

// Store is the interface for chart archives.
type Store interface {
	// Save archives a record. A record with an empty ID is assigned one;
	// the stored record is returned.
	Save(ctx context.Context, rec Record) (Record, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (Record, error)

	// List returns up to limit records, newest first. A non-positive
	// limit returns everything.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes a record. Deleting a missing ID returns
	// CHART_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare fills in the generated fields of a record before saving.
func prepare(rec Record) Record {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %q not found", id)
}
