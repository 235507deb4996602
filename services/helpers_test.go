package services

import (
	"errors"
	"testing"

	"pharmaflow-backend/store"
)

// newTestStore seeds a memory store with the fixed rows the suites
// rely on: client 1, professional 1, services 1 (30 min), 2 (60 min)
// and 3 (no duration), product 1 with 5 units at 25.00.
func newTestStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()

	seed := []struct {
		table string
		rec   store.Record
	}{
		{"clients", store.Record{"name": "Maria Silva", "phone": "+5511999990000"}},
		{"professionals", store.Record{"name": "Ana", "is_active": true}},
		{"services", store.Record{"name": "Consultation", "price": 80.0, "duration_minutes": 30, "is_active": true}},
		{"services", store.Record{"name": "Full Checkup", "price": 150.0, "duration_minutes": 60, "is_active": true}},
		{"services", store.Record{"name": "Quick Advice", "price": 20.0, "duration_minutes": 0, "is_active": true}},
		{"products", store.Record{"name": "Vitamin C", "unit_price": 25.0, "stock_quantity": 5}},
	}
	for _, s := range seed {
		if _, err := st.Insert(s.table, s.rec); err != nil {
			t.Fatalf("seeding %s: %v", s.table, err)
		}
	}
	return st
}

// faultStore delegates to an inner store but fails chosen operations,
// to exercise the partial-failure paths.
type faultStore struct {
	store.Store
	failInsertOn      string
	failUpdateWhereOn string
}

var errInjected = errors.New("injected store failure")

func (f *faultStore) Insert(table string, rec store.Record) (store.Record, error) {
	if table == f.failInsertOn {
		return nil, &store.PersistenceError{Op: "insert", Table: table, Err: errInjected}
	}
	return f.Store.Insert(table, rec)
}

func (f *faultStore) UpdateWhere(table string, fields store.Record, id int, guard store.Filters) (bool, error) {
	if table == f.failUpdateWhereOn {
		return false, &store.PersistenceError{Op: "update", Table: table, Err: errInjected}
	}
	return f.Store.UpdateWhere(table, fields, id, guard)
}

func mustCount(t *testing.T, st store.Store, table string) int {
	t.Helper()
	rows, err := st.Select(table, nil)
	if err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return len(rows)
}

func mustStock(t *testing.T, st store.Store, productID int) int {
	t.Helper()
	rows, err := st.Select("products", store.Filters{"id": productID})
	if err != nil {
		t.Fatalf("reading product %d: %v", productID, err)
	}
	if len(rows) == 0 {
		t.Fatalf("product %d not found", productID)
	}
	stock, ok := rows[0]["stock_quantity"].(int)
	if !ok {
		t.Fatalf("stock has unexpected type %T", rows[0]["stock_quantity"])
	}
	return stock
}

func intPtr(v int) *int { return &v }
