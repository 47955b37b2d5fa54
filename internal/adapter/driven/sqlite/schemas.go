package sqlite

import (
	"github.com/ericfisherdev/corehub/internal/domain/model"
	"github.com/ericfisherdev/corehub/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.RecordStore[model.ConfigRule]  = (*Store[model.ConfigRule])(nil)
	_ driven.RecordStore[model.Integration] = (*Store[model.Integration])(nil)
	_ driven.RecordStore[model.Recommender] = (*Store[model.Recommender])(nil)
	_ driven.RecordStore[model.Feedback]    = (*Store[model.Feedback])(nil)
)

// NewConfigRuleStore creates the store for configuration-validation rules.
func NewConfigRuleStore(db *DB) *Store[model.ConfigRule] {
	return NewStore(db, Schema[model.ConfigRule]{
		Table: "config_rules",
		Columns: []string{
			"validation_rule", "description", "max_retries",
			"timeout_seconds", "enabled_for_production", "dynamic_config",
		},
		Meta: (*model.ConfigRule).Meta,
		Values: func(c *model.ConfigRule) []any {
			return []any{
				c.ValidationRule, c.Description, c.MaxRetries,
				c.TimeoutSeconds, c.EnabledForProduction, c.DynamicConfig,
			}
		},
		ScanDest: func(c *model.ConfigRule) []any {
			return []any{
				&c.ValidationRule, &c.Description, &c.MaxRetries,
				&c.TimeoutSeconds, &c.EnabledForProduction, &c.DynamicConfig,
			}
		},
	})
}

// NewIntegrationStore creates the store for database/vector-store integrations.
func NewIntegrationStore(db *DB) *Store[model.Integration] {
	return NewStore(db, Schema[model.Integration]{
		Table: "integrations",
		Columns: []string{
			"connection_string", "vector_store_type", "metadata",
			"timeout_seconds", "max_retries", "is_encrypted",
			"last_synced_at", "status_message", "environment",
			"region", "tags", "parent_id",
		},
		Meta: (*model.Integration).Meta,
		Values: func(i *model.Integration) []any {
			return []any{
				i.ConnectionString, i.VectorStoreType, i.Metadata,
				i.TimeoutSeconds, i.MaxRetries, i.IsEncrypted,
				bindTimePtr(i.LastSyncedAt), i.StatusMessage, i.Environment,
				i.Region, i.Tags, i.ParentID,
			}
		},
		ScanDest: func(i *model.Integration) []any {
			return []any{
				&i.ConnectionString, &i.VectorStoreType, &i.Metadata,
				&i.TimeoutSeconds, &i.MaxRetries, &i.IsEncrypted,
				timePtrValue{dst: &i.LastSyncedAt}, &i.StatusMessage, &i.Environment,
				&i.Region, &i.Tags, &i.ParentID,
			}
		},
	})
}

// NewRecommenderStore creates the store for recommenders.
func NewRecommenderStore(db *DB) *Store[model.Recommender] {
	return NewStore(db, Schema[model.Recommender]{
		Table:   "recommenders",
		Columns: []string{"description", "model_version"},
		Meta:    (*model.Recommender).Meta,
		Values: func(r *model.Recommender) []any {
			return []any{r.Description, r.ModelVersion}
		},
		ScanDest: func(r *model.Recommender) []any {
			return []any{&r.Description, &r.ModelVersion}
		},
	})
}

// NewFeedbackStore creates the store for user-feedback entries.
func NewFeedbackStore(db *DB) *Store[model.Feedback] {
	return NewStore(db, Schema[model.Feedback]{
		Table: "feedback",
		Columns: []string{
			"description", "rating", "feedback_date", "user_id", "is_resolved",
		},
		Meta: (*model.Feedback).Meta,
		Values: func(f *model.Feedback) []any {
			return []any{
				f.Description, f.Rating, bindTime(f.FeedbackDate),
				f.UserID, f.IsResolved,
			}
		},
		ScanDest: func(f *model.Feedback) []any {
			return []any{
				&f.Description, &f.Rating, timeValue{dst: &f.FeedbackDate},
				&f.UserID, &f.IsResolved,
			}
		},
	})
}
