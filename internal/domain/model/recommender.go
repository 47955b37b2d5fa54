package model

// Recommender is a registered recommender entry. The record is inert
// metadata; no recommendation logic lives in this system.
type Recommender struct {
	Record

	Description  *string `json:"description,omitempty"`
	ModelVersion *string `json:"model_version,omitempty"`
}

// Meta implements Entity.
func (r *Recommender) Meta() *Record { return &r.Record }
