package store

import (
	"sync"
	"testing"
)

func TestMemoryInsertAssignsIDs(t *testing.T) {
	s := NewMemoryStore()

	first, err := s.Insert("products", Record{"name": "Aspirin"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, _ := s.Insert("products", Record{"name": "Ibuprofen"})

	if first["id"] != 1 || second["id"] != 2 {
		t.Fatalf("expected ids 1 and 2, got %v and %v", first["id"], second["id"])
	}

	// Ids are per table.
	other, _ := s.Insert("sales", Record{"total": 10.0})
	if other["id"] != 1 {
		t.Fatalf("expected sales id 1, got %v", other["id"])
	}
}

func TestMemorySelectEqualityFilters(t *testing.T) {
	s := NewMemoryStore()
	s.Insert("appointments", Record{"professional_id": 1, "date": "2026-03-10"})
	s.Insert("appointments", Record{"professional_id": 1, "date": "2026-03-11"})
	s.Insert("appointments", Record{"professional_id": 2, "date": "2026-03-10"})

	rows, err := s.Select("appointments", Filters{"professional_id": 1, "date": "2026-03-10"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	all, _ := s.Select("appointments", nil)
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
}

func TestMemoryUpdate(t *testing.T) {
	s := NewMemoryStore()
	created, _ := s.Insert("products", Record{"name": "Aspirin", "stock_quantity": 5})
	id := created["id"].(int)

	if err := s.Update("products", Record{"stock_quantity": 9}, id); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, _ := s.Select("products", Filters{"id": id})
	if rows[0]["stock_quantity"] != 9 {
		t.Fatalf("expected stock 9, got %v", rows[0]["stock_quantity"])
	}

	if err := s.Update("products", Record{"stock_quantity": 1}, 42); err == nil {
		t.Fatal("expected error updating missing row")
	}
}

func TestMemoryUpdateWhereGuard(t *testing.T) {
	s := NewMemoryStore()
	created, _ := s.Insert("products", Record{"stock_quantity": 5})
	id := created["id"].(int)

	ok, err := s.UpdateWhere("products", Record{"stock_quantity": 3}, id, Filters{"stock_quantity": 5})
	if err != nil || !ok {
		t.Fatalf("expected guarded update to apply, ok=%v err=%v", ok, err)
	}

	// Guard no longer matches the stored value.
	ok, err = s.UpdateWhere("products", Record{"stock_quantity": 1}, id, Filters{"stock_quantity": 5})
	if err != nil {
		t.Fatalf("updatewhere: %v", err)
	}
	if ok {
		t.Fatal("expected guarded update to miss")
	}

	rows, _ := s.Select("products", Filters{"id": id})
	if rows[0]["stock_quantity"] != 3 {
		t.Fatalf("expected stock 3, got %v", rows[0]["stock_quantity"])
	}
}

func TestMemoryDelete(t *testing.T) {
	s := NewMemoryStore()
	created, _ := s.Insert("sales", Record{"total": 10.0})
	id := created["id"].(int)

	if err := s.Delete("sales", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ := s.Select("sales", nil)
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
	if err := s.Delete("sales", id); err == nil {
		t.Fatal("expected error deleting missing row")
	}
}

func TestMemoryNumericFilterWidening(t *testing.T) {
	s := NewMemoryStore()
	s.Insert("products", Record{"stock_quantity": float64(5)})

	rows, _ := s.Select("products", Filters{"stock_quantity": 5})
	if len(rows) != 1 {
		t.Fatalf("expected int filter to match float value, got %d rows", len(rows))
	}
}

func TestMemoryConcurrentInserts(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Insert("sales", Record{"total": 1.0}); err != nil {
				t.Errorf("insert: %v", err)
			}
		}()
	}
	wg.Wait()

	rows, _ := s.Select("sales", nil)
	if len(rows) != 100 {
		t.Fatalf("expected 100 rows, got %d", len(rows))
	}
	seen := map[any]bool{}
	for _, row := range rows {
		if seen[row["id"]] {
			t.Fatalf("duplicate id %v", row["id"])
		}
		seen[row["id"]] = true
	}
}

func TestDecodeWeakTyping(t *testing.T) {
	rec := Record{"id": float64(3), "name": "Aspirin", "unit_price": 12, "stock_quantity": int64(7)}

	var out struct {
		ID            int     `json:"id"`
		Name          string  `json:"name"`
		UnitPrice     float64 `json:"unit_price"`
		StockQuantity int     `json:"stock_quantity"`
	}
	if err := Decode(rec, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 3 || out.Name != "Aspirin" || out.UnitPrice != 12 || out.StockQuantity != 7 {
		t.Fatalf("unexpected: %+v", out)
	}
}
