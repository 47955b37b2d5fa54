package model

import "time"

// Rating bounds for feedback entries.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a user-feedback entry. UserID is an opaque reference to the
// submitting user; there is no user table in this system.
type Feedback struct {
	Record

	Description  *string   `json:"description,omitempty"`
	Rating       int       `json:"rating"`
	FeedbackDate time.Time `json:"feedback_date"`
	UserID       int64     `json:"user_id"`
	IsResolved   bool      `json:"is_resolved"`
}

// Meta implements Entity.
func (f *Feedback) Meta() *Record { return &f.Record }
