// Package application contains the resource services that sit between the
// HTTP adapter and the record stores. One generic service implements the
// behavior for every resource kind; the kinds differ only in the
// ResourceSpec data they are constructed with.
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/ericfisherdev/corehub/internal/domain/model"
	"github.com/ericfisherdev/corehub/internal/domain/port/driven"
	"github.com/ericfisherdev/corehub/internal/domain/query"
)

// Page size defaults and cap. List endpoints default to 10 items, search
// to 20; nothing may request more than 100 per page.
const (
	DefaultPageSize = 10
	SearchPageSize  = 20
	MaxPageSize     = 100
)

// ResourceSpec is the per-kind configuration for a ResourceService. It is
// plain data plus small closures; all behavior lives in the service.
type ResourceSpec[T any] struct {
	// Kind names the resource in error messages and logs, e.g. "recommender".
	Kind string

	// Meta returns the embedded Record of an entity.
	Meta func(*T) *model.Record

	// MissingFields returns the names of kind-specific required fields
	// that are missing or invalid. The shared name checks are handled by
	// the service itself.
	MissingFields func(*T) []string

	// Normalize, if set, fills kind-specific defaults before persisting.
	Normalize func(*T)

	// SearchFields are the columns the fuzzy search term applies to.
	SearchFields []string

	// SortFields whitelists caller-facing sort field names, mapped to
	// their column names. Sorting on anything else is rejected.
	SortFields map[string]string

	// DefaultSort orders list results; SearchSort orders search results.
	DefaultSort query.Sort
	SearchSort  query.Sort

	// RejectIDMismatch makes Update fail when a non-zero body id disagrees
	// with the path id instead of silently overwriting it.
	RejectIDMismatch bool
}

// ResourceService implements the uniform create/read/update/delete/
// search/paginate surface for one resource kind. It is stateless and safe
// for concurrent use.
type ResourceService[T any] struct {
	store driven.RecordStore[T]
	spec  ResourceSpec[T]
}

// NewResourceService creates a service for one resource kind.
func NewResourceService[T any](store driven.RecordStore[T], spec ResourceSpec[T]) *ResourceService[T] {
	return &ResourceService[T]{store: store, spec: spec}
}

// Kind returns the resource kind name, e.g. "feedback".
func (s *ResourceService[T]) Kind() string { return s.spec.Kind }

// Create validates the input and persists it as a new record. The store
// assigns id, timestamps, and the initial version; any caller-supplied id
// is discarded.
func (s *ResourceService[T]) Create(ctx context.Context, e *T) (*T, error) {
	if e == nil {
		return nil, fmt.Errorf("create %s: %w", s.spec.Kind, driven.ErrInvalidArgument)
	}

	if err := s.validate(e); err != nil {
		return nil, err
	}

	if s.spec.Normalize != nil {
		s.spec.Normalize(e)
	}
	s.spec.Meta(e).ID = 0

	created, err := s.store.Put(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.spec.Kind, err)
	}

	return created, nil
}

// Get returns the record or nil when absent.
func (s *ResourceService[T]) Get(ctx context.Context, id int64) (*T, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", s.spec.Kind, id, err)
	}
	return e, nil
}

// ExistsByID reports whether a record with the given id exists.
func (s *ResourceService[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("exists %s %d: %w", s.spec.Kind, id, err)
	}
	return ok, nil
}

// List returns one page of all records. A zero sort uses the kind's
// default ordering; a non-zero sort must name a whitelisted field.
func (s *ResourceService[T]) List(ctx context.Context, p query.PageRequest, sort query.Sort) (query.Page[T], error) {
	return s.Filter(ctx, query.Filter{}, p, sort)
}

// Filter returns one page of records matching the given filter. It backs
// both List (empty filter) and the per-kind filtered list endpoints.
func (s *ResourceService[T]) Filter(ctx context.Context, f query.Filter, p query.PageRequest, sort query.Sort) (query.Page[T], error) {
	resolved, err := s.resolveSort(sort)
	if err != nil {
		return query.Page[T]{}, err
	}
	return s.page(ctx, f, resolved, p, DefaultPageSize)
}

// Update replaces the record with the given id. The id and created_at of
// the stored record are preserved; the version is bumped by the store,
// which rejects stale versions with ErrConflict.
func (s *ResourceService[T]) Update(ctx context.Context, id int64, e *T) (*T, error) {
	if e == nil {
		return nil, fmt.Errorf("update %s %d: %w", s.spec.Kind, id, driven.ErrInvalidArgument)
	}

	m := s.spec.Meta(e)
	if s.spec.RejectIDMismatch && m.ID != 0 && m.ID != id {
		return nil, fmt.Errorf("update %s %d: body id %d: %w", s.spec.Kind, id, m.ID, driven.ErrIDMismatch)
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", s.spec.Kind, id, err)
	}
	if !exists {
		return nil, fmt.Errorf("update %s %d: %w", s.spec.Kind, id, driven.ErrNotFound)
	}

	if err := s.validate(e); err != nil {
		return nil, err
	}

	if s.spec.Normalize != nil {
		s.spec.Normalize(e)
	}
	m.ID = id

	updated, err := s.store.Put(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", s.spec.Kind, id, err)
	}

	return updated, nil
}

// Delete removes the record with the given id. Deleting an absent id is
// an error, not a no-op; callers wanting idempotence treat ErrNotFound as
// their own success signal.
func (s *ResourceService[T]) Delete(ctx context.Context, id int64) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", s.spec.Kind, id, err)
	}
	if !removed {
		return fmt.Errorf("delete %s %d: %w", s.spec.Kind, id, driven.ErrNotFound)
	}
	return nil
}

// Search returns one page of records whose searchable fields contain term
// as a case-insensitive substring. A blank term matches everything.
// Results are ordered by the kind's search sort (name ascending unless
// overridden).
func (s *ResourceService[T]) Search(ctx context.Context, term string, p query.PageRequest) (query.Page[T], error) {
	f := query.Filter{}.Search(strings.TrimSpace(term), s.spec.SearchFields...)
	return s.page(ctx, f, s.spec.SearchSort, p, SearchPageSize)
}

// validate applies the shared name rules plus the kind's required-field
// checks, collecting all failing fields into one ValidationError.
func (s *ResourceService[T]) validate(e *T) error {
	var fields []string

	name := s.spec.Meta(e).Name
	if strings.TrimSpace(name) == "" || len(name) > model.MaxNameLength {
		fields = append(fields, "name")
	}

	if s.spec.MissingFields != nil {
		fields = append(fields, s.spec.MissingFields(e)...)
	}

	if len(fields) > 0 {
		return &driven.ValidationError{Fields: fields}
	}
	return nil
}

// resolveSort maps a caller-facing sort field to its column through the
// kind's whitelist. A zero sort resolves to the kind's default.
func (s *ResourceService[T]) resolveSort(sort query.Sort) (query.Sort, error) {
	if sort.Field == "" {
		return s.spec.DefaultSort, nil
	}

	column, ok := s.spec.SortFields[sort.Field]
	if !ok {
		return query.Sort{}, fmt.Errorf("sort %s by %q: %w", s.spec.Kind, sort.Field, driven.ErrInvalidArgument)
	}

	return query.Sort{Field: column, Desc: sort.Desc}, nil
}

// page clamps the page request, then runs the count and the scan.
func (s *ResourceService[T]) page(ctx context.Context, f query.Filter, sort query.Sort, p query.PageRequest, defaultSize int) (query.Page[T], error) {
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Page < 0 {
		p.Page = 0
	}

	total, err := s.store.Count(ctx, f)
	if err != nil {
		return query.Page[T]{}, fmt.Errorf("count %s: %w", s.spec.Kind, err)
	}

	items, err := s.store.Scan(ctx, f, sort, p.Page*p.Size, p.Size)
	if err != nil {
		return query.Page[T]{}, fmt.Errorf("scan %s: %w", s.spec.Kind, err)
	}
	if items == nil {
		items = []T{}
	}

	return query.NewPage(items, total, p.Page, p.Size), nil
}
