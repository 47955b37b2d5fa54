// Package model defines the resource kinds managed by corehub.
//
// Every kind embeds Record, the shared metadata block the store owns:
// the assigned id, the audit timestamps, and the optimistic-concurrency
// version counter. Kind-specific fields live on the concrete structs.
package model

import "time"

// MaxNameLength is the column limit for the name field on every kind.
const MaxNameLength = 100

// Record is the metadata common to all resource kinds. ID, CreatedAt,
// UpdatedAt and Version are store-assigned: ID and CreatedAt never change
// after the first persist, UpdatedAt is refreshed on every write, and
// Version increments on every successful update.
type Record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// Entity is implemented by all resource kinds. Meta exposes the embedded
// Record so generic code can read and assign the shared metadata.
type Entity interface {
	Meta() *Record
}
