// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ericfisherdev/corehub/internal/domain/query"
)

// Sentinel errors returned by RecordStore implementations and the
// resource services built on them.
var (
	// ErrNotFound indicates the operation targeted an id that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates an update carried a stale version counter.
	ErrConflict = errors.New("version conflict")

	// ErrInvalidArgument indicates a nil or malformed request (a caller bug).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIDMismatch indicates the body id disagrees with the path id on an
	// update, for kinds that reject rather than overwrite it.
	ErrIDMismatch = errors.New("body id does not match path id")
)

// ValidationError reports required fields that were missing or invalid on
// a well-formed input. It is user-fixable, unlike ErrInvalidArgument.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// RecordStore defines the driven port for durable keyed storage of one
// resource kind.
//
// Put with a zero id inserts: the store assigns the id, sets both
// timestamps, and starts the version at 0. Put with a non-zero id
// updates: it returns ErrNotFound if no such row exists and ErrConflict
// if the entity's version does not match the stored version; otherwise
// it preserves created_at, refreshes updated_at, and increments the
// version. The returned entity carries the store-assigned values.
//
// Get returns (nil, nil) for a missing id. Delete reports whether a row
// was removed and does not fail on a missing id; strict delete semantics
// live in the service.
type RecordStore[T any] interface {
	Put(ctx context.Context, e *T) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context, f query.Filter) (int, error)
	// Scan returns records matching f in the given order (ties broken by
	// ascending id), skipping offset rows and returning at most limit.
	Scan(ctx context.Context, f query.Filter, s query.Sort, offset, limit int) ([]T, error)
}
