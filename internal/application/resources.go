package application

import (
	"time"

	"github.com/ericfisherdev/corehub/internal/domain/model"
	"github.com/ericfisherdev/corehub/internal/domain/port/driven"
	"github.com/ericfisherdev/corehub/internal/domain/query"
)

// Shared sort whitelist entries present on every kind.
func commonSortFields() map[string]string {
	return map[string]string{
		"id":         "id",
		"name":       "name",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
}

// NewConfigRuleService builds the configuration-validation rule service.
func NewConfigRuleService(store driven.RecordStore[model.ConfigRule]) *ResourceService[model.ConfigRule] {
	sortFields := commonSortFields()
	sortFields["enabled_for_production"] = "enabled_for_production"

	return NewResourceService(store, ResourceSpec[model.ConfigRule]{
		Kind:         "config rule",
		Meta:         (*model.ConfigRule).Meta,
		SearchFields: []string{"name", "description", "validation_rule"},
		SortFields:   sortFields,
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		SearchSort:   query.Sort{Field: "name"},
	})
}

// NewIntegrationService builds the database/vector-store integration
// service. Integrations reject a body id that disagrees with the path id
// on update; the other kinds overwrite it silently.
func NewIntegrationService(store driven.RecordStore[model.Integration]) *ResourceService[model.Integration] {
	sortFields := commonSortFields()
	sortFields["vector_store_type"] = "vector_store_type"
	sortFields["environment"] = "environment"

	return NewResourceService(store, ResourceSpec[model.Integration]{
		Kind: "integration",
		Meta: (*model.Integration).Meta,
		MissingFields: func(i *model.Integration) []string {
			var fields []string
			if i.ConnectionString == "" || len(i.ConnectionString) > 500 {
				fields = append(fields, "connection_string")
			}
			if i.VectorStoreType == "" || len(i.VectorStoreType) > 50 {
				fields = append(fields, "vector_store_type")
			}
			return fields
		},
		SearchFields:     []string{"name", "environment", "tags"},
		SortFields:       sortFields,
		DefaultSort:      query.Sort{Field: "created_at", Desc: true},
		SearchSort:       query.Sort{Field: "name"},
		RejectIDMismatch: true,
	})
}

// NewRecommenderService builds the recommender service.
func NewRecommenderService(store driven.RecordStore[model.Recommender]) *ResourceService[model.Recommender] {
	sortFields := commonSortFields()
	sortFields["model_version"] = "model_version"

	return NewResourceService(store, ResourceSpec[model.Recommender]{
		Kind:         "recommender",
		Meta:         (*model.Recommender).Meta,
		SearchFields: []string{"name", "description"},
		SortFields:   sortFields,
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		SearchSort:   query.Sort{Field: "name"},
	})
}

// NewFeedbackService builds the user-feedback service. A zero
// feedback_date defaults to the time of persistence.
func NewFeedbackService(store driven.RecordStore[model.Feedback]) *ResourceService[model.Feedback] {
	sortFields := commonSortFields()
	sortFields["rating"] = "rating"
	sortFields["feedback_date"] = "feedback_date"
	sortFields["user_id"] = "user_id"

	return NewResourceService(store, ResourceSpec[model.Feedback]{
		Kind: "feedback",
		Meta: (*model.Feedback).Meta,
		MissingFields: func(f *model.Feedback) []string {
			var fields []string
			if f.Rating < model.MinRating || f.Rating > model.MaxRating {
				fields = append(fields, "rating")
			}
			if f.UserID == 0 {
				fields = append(fields, "user_id")
			}
			return fields
		},
		Normalize: func(f *model.Feedback) {
			if f.FeedbackDate.IsZero() {
				f.FeedbackDate = time.Now().UTC()
			}
		},
		SearchFields: []string{"name", "description"},
		SortFields:   sortFields,
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		SearchSort:   query.Sort{Field: "name"},
	})
}
