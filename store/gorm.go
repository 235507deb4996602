// store/gorm.go
package store

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a gorm connection. Tables are
// addressed by name so the services stay decoupled from the ORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(table string, rec Record) (Record, error) {
	cols := make([]string, 0, len(rec))
	for k := range rec {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	vals := make([]any, 0, len(cols))
	marks := make([]string, 0, len(cols))
	for _, c := range cols {
		vals = append(vals, rec[c])
		marks = append(marks, "?")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))

	var id int
	if err := s.db.Raw(query, vals...).Scan(&id).Error; err != nil {
		return nil, &PersistenceError{Op: "insert", Table: table, Err: err}
	}

	created := make(Record, len(rec)+1)
	for k, v := range rec {
		created[k] = v
	}
	created["id"] = id
	return created, nil
}

func (s *GormStore) Update(table string, fields Record, id int) error {
	res := s.db.Table(table).Where("id = ?", id).Updates(map[string]any(fields))
	if res.Error != nil {
		return &PersistenceError{Op: "update", Table: table, Err: res.Error}
	}
	return nil
}

func (s *GormStore) UpdateWhere(table string, fields Record, id int, guard Filters) (bool, error) {
	res := s.db.Table(table).
		Where("id = ?", id).
		Where(map[string]any(guard)).
		Updates(map[string]any(fields))
	if res.Error != nil {
		return false, &PersistenceError{Op: "update", Table: table, Err: res.Error}
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Select(table string, filters Filters) ([]Record, error) {
	var rows []map[string]any
	q := s.db.Table(table)
	if len(filters) > 0 {
		q = q.Where(map[string]any(filters))
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, &PersistenceError{Op: "select", Table: table, Err: err}
	}
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = Record(r)
	}
	return out, nil
}

func (s *GormStore) Delete(table string, id int) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if err := s.db.Exec(query, id).Error; err != nil {
		return &PersistenceError{Op: "delete", Table: table, Err: err}
	}
	return nil
}
