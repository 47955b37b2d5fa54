package model

import "time"

// Integration is a database / vector-store integration record. ParentID
// optionally references another integration; the reference is opaque and
// not enforced by the store.
type Integration struct {
	Record

	ConnectionString string     `json:"connection_string"`
	VectorStoreType  string     `json:"vector_store_type"`
	Metadata         *string    `json:"metadata,omitempty"`
	TimeoutSeconds   *int       `json:"timeout_seconds,omitempty"`
	MaxRetries       *int       `json:"max_retries,omitempty"`
	IsEncrypted      bool       `json:"is_encrypted"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
	StatusMessage    *string    `json:"status_message,omitempty"`
	Environment      *string    `json:"environment,omitempty"` // e.g., "staging", "production"
	Region           *string    `json:"region,omitempty"`
	Tags             *string    `json:"tags,omitempty"`
	ParentID         *int64     `json:"parent_id,omitempty"`
}

// Meta implements Entity.
func (i *Integration) Meta() *Record { return &i.Record }
