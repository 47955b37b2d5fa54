// Package query defines the predicate, sort, and pagination vocabulary
// shared between the resource services and the store adapters. A Filter
// is a conjunction of simple predicates; the store adapter translates it
// into SQL. No predicate references another record.
package query

// Op identifies a predicate operator.
type Op int

const (
	// OpEq matches the field exactly.
	OpEq Op = iota
	// OpEqFold matches the field exactly, ignoring case.
	OpEqFold
	// OpContains matches when the field contains the value as a
	// case-insensitive substring.
	OpContains
	// OpSince matches when the field is at or after the given time.
	OpSince
)

// Predicate is one condition on one field. Field names are column names;
// adapters reject fields outside the kind's schema.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Filter is a conjunction of predicates plus an optional fuzzy search
// term applied across the designated searchable fields (OR within the
// fields, AND with the predicates). A zero Filter matches everything.
type Filter struct {
	Predicates []Predicate

	SearchTerm   string
	SearchFields []string
}

// Where appends an equality predicate and returns the filter for chaining.
func (f Filter) Where(field string, value any) Filter {
	f.Predicates = append(f.Predicates, Predicate{Field: field, Op: OpEq, Value: value})
	return f
}

// WhereFold appends a case-insensitive equality predicate.
func (f Filter) WhereFold(field string, value string) Filter {
	f.Predicates = append(f.Predicates, Predicate{Field: field, Op: OpEqFold, Value: value})
	return f
}

// Since appends a lower-bound predicate on a timestamp field.
func (f Filter) Since(field string, value any) Filter {
	f.Predicates = append(f.Predicates, Predicate{Field: field, Op: OpSince, Value: value})
	return f
}

// Search sets the fuzzy search term and the fields it applies to.
func (f Filter) Search(term string, fields ...string) Filter {
	f.SearchTerm = term
	f.SearchFields = fields
	return f
}

// IsEmpty reports whether the filter matches all records.
func (f Filter) IsEmpty() bool {
	return len(f.Predicates) == 0 && f.SearchTerm == ""
}

// Sort is a sort specification. Ties on the sort field are always broken
// by ascending id so pagination is stable across identical queries.
type Sort struct {
	Field string
	Desc  bool
}

// PageRequest is a zero-based page index plus page size. Zero values are
// replaced with the service's defaults; oversized requests are clamped.
type PageRequest struct {
	Page int
	Size int
}

// Page is one bounded slice of an ordered result set.
type Page[T any] struct {
	Items         []T `json:"items"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Page          int `json:"page"`
	Size          int `json:"size"`
}

// NewPage assembles a page, deriving the page count from the total and
// the page size.
func NewPage[T any](items []T, total, page, size int) Page[T] {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}

	return Page[T]{
		Items:         items,
		TotalElements: total,
		TotalPages:    pages,
		Page:          page,
		Size:          size,
	}
}
