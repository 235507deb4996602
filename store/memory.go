// store/memory.go
package store

import (
	"fmt"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory Store used by the test
// suites and local runs. Ids are assigned per table, starting at 1.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]Record
	nextID map[string]int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]Record),
		nextID: make(map[string]int),
	}
}

func (s *MemoryStore) Insert(table string, rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextID[table] == 0 {
		s.nextID[table] = 1
	}
	row := clone(rec)
	row["id"] = s.nextID[table]
	s.nextID[table]++
	s.tables[table] = append(s.tables[table], row)
	return clone(row), nil
}

func (s *MemoryStore) Update(table string, fields Record, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.find(table, id)
	if !ok {
		return &PersistenceError{Op: "update", Table: table, Err: fmt.Errorf("row %d not found", id)}
	}
	for k, v := range fields {
		row[k] = v
	}
	return nil
}

func (s *MemoryStore) UpdateWhere(table string, fields Record, id int, guard Filters) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.find(table, id)
	if !ok {
		return false, nil
	}
	if !matches(row, guard) {
		return false, nil
	}
	for k, v := range fields {
		row[k] = v
	}
	return true, nil
}

func (s *MemoryStore) Select(table string, filters Filters) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, row := range s.tables[table] {
		if matches(row, filters) {
			out = append(out, clone(row))
		}
	}
	return out, nil
}

func (s *MemoryStore) Delete(table string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	for i, row := range rows {
		if equal(row["id"], id) {
			s.tables[table] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return &PersistenceError{Op: "delete", Table: table, Err: fmt.Errorf("row %d not found", id)}
}

func (s *MemoryStore) find(table string, id int) (Record, bool) {
	for _, row := range s.tables[table] {
		if equal(row["id"], id) {
			return row, true
		}
	}
	return nil, false
}

func matches(row Record, filters Filters) bool {
	for k, want := range filters {
		if !equal(row[k], want) {
			return false
		}
	}
	return true
}

// equal compares record values with numeric widening, since callers
// and stored rows mix int and float64 freely.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func clone(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
