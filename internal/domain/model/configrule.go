package model

// ConfigRule is a configuration-validation rule entry. Nil pointer fields
// mean the value was never provided.
type ConfigRule struct {
	Record

	ValidationRule       string  `json:"validation_rule"`
	Description          string  `json:"description"`
	MaxRetries           *int    `json:"max_retries,omitempty"`
	TimeoutSeconds       *int    `json:"timeout_seconds,omitempty"`
	EnabledForProduction bool    `json:"enabled_for_production"`
	DynamicConfig        *string `json:"dynamic_config,omitempty"` // opaque JSON blob
}

// Meta implements Entity.
func (c *ConfigRule) Meta() *Record { return &c.Record }
