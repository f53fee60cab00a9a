// ABOUTME: Generic SQLite record store shared by every entity table
// ABOUTME: Implements list with search/sort/paging plus get, create, update and delete
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
)

type scanner interface {
	Scan(dest ...any) error
}

// table maps one entity type onto its SQLite table. columns[0] is the id.
type table[T any] struct {
	kind    models.Kind[T]
	name    string
	columns []string
	values  func(T) ([]any, error)
	scan    func(scanner) (T, error)

	// order is the default ORDER BY clause.
	order string
	// search lists the columns matched by ListParams.Search.
	search []string
	// sortable maps ListParams.SortBy values onto columns.
	sortable map[string]string
}

// Store is a RecordStore over one SQLite table.
type Store[T any] struct {
	db *sql.DB
	t  table[T]
}

func (s *Store[T]) selectSQL() string {
	return "SELECT " + strings.Join(s.t.columns, ", ") + " FROM " + s.t.name
}

func (s *Store[T]) List(ctx context.Context, params models.ListParams) (models.Page[T], error) {
	var where string
	var args []any

	if q := strings.TrimSpace(params.Search); q != "" && len(s.t.search) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		conds := make([]string, 0, len(s.t.search))
		for _, col := range s.t.search {
			conds = append(conds, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, pattern)
		}
		where = " WHERE (" + strings.Join(conds, " OR ") + ")"
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.t.name+where, args...).Scan(&total); err != nil {
		return models.Page[T]{}, fmt.Errorf("failed to count %s: %w", s.t.name, err)
	}

	order := s.t.order
	if col, ok := s.t.sortable[params.SortBy]; ok {
		dir := "ASC"
		if params.Desc {
			dir = "DESC"
		}
		order = col + " " + dir + ", id"
	}

	query := s.selectSQL() + where + " ORDER BY " + order
	if params.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, params.Limit, params.Offset())
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("failed to query %s: %w", s.t.name, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		rec, err := s.t.scan(rows)
		if err != nil {
			return models.Page[T]{}, fmt.Errorf("failed to scan %s: %w", s.t.kind.Name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return models.Page[T]{}, err
	}

	return models.Page[T]{Records: records, Total: total, Queried: true}, nil
}

func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return s.get(ctx, s.db, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store[T]) get(ctx context.Context, q queryer, id uuid.UUID) (T, error) {
	row := q.QueryRowContext(ctx, s.selectSQL()+" WHERE id = ?", id.String())
	rec, err := s.t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, &models.NotFoundError{Entity: s.t.kind.Name, ID: id}
	}
	return rec, err
}

func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	s.t.kind.Assign(&rec, uuid.New(), time.Now().UTC())

	values, err := s.t.values(rec)
	if err != nil {
		return zero, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.t.columns)), ", ")
	query := "INSERT INTO " + s.t.name + " (" + strings.Join(s.t.columns, ", ") + ") VALUES (" + placeholders + ")"

	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		return zero, fmt.Errorf("failed to insert %s: %w", s.t.kind.Name, err)
	}
	return rec, nil
}

func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (T, error) {
	var zero T

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer func() { _ = tx.Rollback() }()

	rec, err := s.get(ctx, tx, id)
	if err != nil {
		return zero, err
	}
	if err := apply(&rec); err != nil {
		return zero, err
	}
	s.t.kind.Touch(&rec, time.Now().UTC())

	values, err := s.t.values(rec)
	if err != nil {
		return zero, err
	}

	sets := make([]string, 0, len(s.t.columns)-1)
	for _, col := range s.t.columns[1:] {
		sets = append(sets, col+" = ?")
	}
	query := "UPDATE " + s.t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args := append(append([]any{}, values[1:]...), values[0])

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", s.t.kind.Name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return zero, err
	}
	if rows == 0 {
		return zero, &models.NotFoundError{Entity: s.t.kind.Name, ID: id}
	}

	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return rec, nil
}

func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM "+s.t.name+" WHERE id = ?", id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", s.t.kind.Name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func refValue(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func refFrom(s sql.NullString) *uuid.UUID {
	if !s.Valid {
		return nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil
	}
	return &id
}

func timeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func timeFrom(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func tagsValue(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func tagsFrom(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" || raw == "null" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
