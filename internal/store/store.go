// Package store persists templates and resumes as keyed JSON records. Two
// implementations are provided: an in-process map for tests and single-node
// deployments, and a sqlite-backed store for durable installs.
package store

import (
	"context"
	"fmt"
	"time"

	"resumecanvas/internal/errors"
)

// Collections used by the service. Implementations accept arbitrary
// collection names; these constants keep callers consistent.
const (
	CollectionTemplates = "templates"
	CollectionResumes   = "resumes"
)

// Entry is one stored record. Data is the raw JSON the caller supplied.
type Entry struct {
	ID        string
	Data      []byte
	UpdatedAt time.Time
}

// Store is a keyed JSON document store. Get and Delete return a NOT_FOUND
// storage error for unknown ids; List returns entries ordered by id.
type Store interface {
	Put(ctx context.Context, collection, id string, data []byte) error
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([]Entry, error)
	Close() error
}

func notFound(collection, id string) error {
	return errors.NewStorageError(errors.ErrCodeNotFound,
		fmt.Sprintf("%s/%s not found", collection, id), nil)
}
