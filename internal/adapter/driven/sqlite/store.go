package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/corehub/internal/domain/model"
	"github.com/ericfisherdev/corehub/internal/domain/port/driven"
	"github.com/ericfisherdev/corehub/internal/domain/query"
)

// metaColumns are the shared Record columns, in select/insert order.
var metaColumns = []string{"id", "name", "is_active", "created_at", "updated_at", "version"}

// Schema describes one resource kind's table: the kind-specific columns
// beyond the shared metadata, and the closures that bind and scan them.
// Values and ScanDest must follow the order of Columns.
type Schema[T any] struct {
	Table    string
	Columns  []string
	Meta     func(*T) *model.Record
	Values   func(*T) []any
	ScanDest func(*T) []any
}

// Store is the SQLite implementation of the RecordStore port, generic
// over the resource kind. One instance serves one table.
type Store[T any] struct {
	db      *DB
	schema  Schema[T]
	allowed map[string]bool
}

// NewStore creates a store for one resource kind.
func NewStore[T any](db *DB, schema Schema[T]) *Store[T] {
	allowed := make(map[string]bool, len(metaColumns)+len(schema.Columns))
	for _, c := range metaColumns {
		allowed[c] = true
	}
	for _, c := range schema.Columns {
		allowed[c] = true
	}

	return &Store[T]{db: db, schema: schema, allowed: allowed}
}

// Put inserts the entity when its id is zero and updates it otherwise.
// Inserts assign id, both timestamps, and version 0. Updates require the
// row to exist (driven.ErrNotFound) and the entity's version to match the
// stored version (driven.ErrConflict); created_at is never touched, the
// version increments, and updated_at is refreshed. The returned entity is
// the authoritative stored row.
func (s *Store[T]) Put(ctx context.Context, e *T) (*T, error) {
	if s.schema.Meta(e).ID == 0 {
		return s.insert(ctx, e)
	}
	return s.update(ctx, e)
}

func (s *Store[T]) insert(ctx context.Context, e *T) (*T, error) {
	m := s.schema.Meta(e)
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.Version = 0

	columns := append([]string{"name", "is_active", "created_at", "updated_at", "version"}, s.schema.Columns...)
	placeholders := strings.Repeat("?, ", len(columns)-1) + "?"
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.schema.Table, strings.Join(columns, ", "), placeholders)

	args := []any{m.Name, m.IsActive, bindTime(m.CreatedAt), bindTime(m.UpdatedAt), m.Version}
	args = append(args, s.schema.Values(e)...)

	result, err := s.db.Writer.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", s.schema.Table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert %s: last insert id: %w", s.schema.Table, err)
	}
	m.ID = id

	return e, nil
}

func (s *Store[T]) update(ctx context.Context, e *T) (*T, error) {
	m := s.schema.Meta(e)
	now := time.Now().UTC()

	var sets []string
	for _, c := range append([]string{"name", "is_active", "updated_at"}, s.schema.Columns...) {
		sets = append(sets, c+" = ?")
	}
	sets = append(sets, "version = version + 1")

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND version = ?",
		s.schema.Table, strings.Join(sets, ", "))

	args := []any{m.Name, m.IsActive, bindTime(now)}
	args = append(args, s.schema.Values(e)...)
	args = append(args, m.ID, m.Version)

	result, err := s.db.Writer.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", s.schema.Table, m.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update %s %d: rows affected: %w", s.schema.Table, m.ID, err)
	}

	if rows == 0 {
		// Disambiguate: a missing row is NotFound, an existing row with a
		// different version is a stale optimistic-concurrency write.
		exists, existsErr := s.Exists(ctx, m.ID)
		if existsErr != nil {
			return nil, existsErr
		}
		if exists {
			return nil, fmt.Errorf("update %s %d: %w", s.schema.Table, m.ID, driven.ErrConflict)
		}
		return nil, fmt.Errorf("update %s %d: %w", s.schema.Table, m.ID, driven.ErrNotFound)
	}

	stored, err := s.Get(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("update %s %d: %w", s.schema.Table, m.ID, driven.ErrNotFound)
	}

	return stored, nil
}

// Get retrieves a record by id. Returns nil, nil if the record does not exist.
func (s *Store[T]) Get(ctx context.Context, id int64) (*T, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", s.selectColumns(), s.schema.Table)

	e, err := s.scanRow(s.db.Reader.QueryRowContext(ctx, stmt, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", s.schema.Table, id, err)
	}

	return e, nil
}

// Delete removes a record by id, reporting whether a row was removed.
func (s *Store[T]) Delete(ctx context.Context, id int64) (bool, error) {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.schema.Table)

	result, err := s.db.Writer.ExecContext(ctx, stmt, id)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", s.schema.Table, id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s %d: rows affected: %w", s.schema.Table, id, err)
	}

	return rows > 0, nil
}

// Exists reports whether a record with the given id exists.
func (s *Store[T]) Exists(ctx context.Context, id int64) (bool, error) {
	stmt := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", s.schema.Table)

	var exists bool
	if err := s.db.Reader.QueryRowContext(ctx, stmt, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s %d: %w", s.schema.Table, id, err)
	}

	return exists, nil
}

// Count returns the number of records matching the filter.
func (s *Store[T]) Count(ctx context.Context, f query.Filter) (int, error) {
	where, args, err := buildWhere(f, s.allowed)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.schema.Table, err)
	}

	stmt := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.schema.Table)
	if where != "" {
		stmt += " WHERE " + where
	}

	var count int
	if err := s.db.Reader.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.schema.Table, err)
	}

	return count, nil
}

// Scan returns records matching the filter in the given order, skipping
// offset rows and returning at most limit.
func (s *Store[T]) Scan(ctx context.Context, f query.Filter, sort query.Sort, offset, limit int) ([]T, error) {
	where, args, err := buildWhere(f, s.allowed)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.schema.Table, err)
	}

	orderBy, err := buildOrderBy(sort, s.allowed)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.schema.Table, err)
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s", s.selectColumns(), s.schema.Table)
	if where != "" {
		stmt += " WHERE " + where
	}
	stmt += " ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Reader.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.schema.Table, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		e, err := s.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.schema.Table, err)
		}
		items = append(items, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.schema.Table, err)
	}

	return items, nil
}

func (s *Store[T]) selectColumns() string {
	return strings.Join(append(append([]string{}, metaColumns...), s.schema.Columns...), ", ")
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store[T]) scanRow(sc scanner) (*T, error) {
	e := new(T)
	m := s.schema.Meta(e)

	dest := []any{&m.ID, &m.Name, &m.IsActive, timeValue{dst: &m.CreatedAt}, timeValue{dst: &m.UpdatedAt}, &m.Version}
	dest = append(dest, s.schema.ScanDest(e)...)

	if err := sc.Scan(dest...); err != nil {
		return nil, err
	}

	return e, nil
}
