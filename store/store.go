// store/store.go
package store

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Record is a single row exchanged with the record store.
type Record map[string]any

// Filters holds equality filters for Select and guard conditions for
// UpdateWhere.
type Filters map[string]any

// Store is the persistence collaborator consumed by the services. Each
// call is independently atomic; there is no cross-call transaction, so
// callers that need read-check-write safety must use UpdateWhere.
type Store interface {
	// Insert persists rec and returns the created record including its
	// generated id.
	Insert(table string, rec Record) (Record, error)

	// Update overwrites the given fields of the row with the given id.
	Update(table string, fields Record, id int) error

	// UpdateWhere applies fields to the row with the given id only if
	// the row still matches guard. It reports whether a row was
	// updated, so callers can detect a lost compare-and-swap.
	UpdateWhere(table string, fields Record, id int, guard Filters) (bool, error)

	// Select returns every row of table matching all filters (equality
	// only). An empty filter set returns the whole table.
	Select(table string, filters Filters) ([]Record, error)

	// Delete removes the row with the given id.
	Delete(table string, id int) error
}

// PersistenceError wraps any failure reported by the record store.
type PersistenceError struct {
	Op    string
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Decode maps a record into a model struct. Field names follow the
// struct's json tags; numeric types are converted weakly because rows
// coming back from the store carry float64/int64 interchangeably.
func Decode(rec Record, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(rec))
}
