package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/corehub/internal/domain/model"
	"github.com/ericfisherdev/corehub/internal/domain/port/driven"
	"github.com/ericfisherdev/corehub/internal/domain/query"
)

func makeRecommender(name string) *model.Recommender {
	desc := "desc for " + name
	version := "v1.0"
	return &model.Recommender{
		Record:       model.Record{Name: name, IsActive: true},
		Description:  &desc,
		ModelVersion: &version,
	}
}

func TestStore_Put_Insert(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	created, err := store.Put(ctx, makeRecommender("ranker"))
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(0), created.Version)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "ranker", got.Name)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.Description)
	assert.Equal(t, "desc for ranker", *got.Description)
	require.NotNil(t, got.ModelVersion)
	assert.Equal(t, "v1.0", *got.ModelVersion)
}

func TestStore_Put_Update(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	created, err := store.Put(ctx, makeRecommender("ranker"))
	require.NoError(t, err)
	createdAt := created.CreatedAt

	created.Name = "reranker"
	created.IsActive = false

	updated, err := store.Put(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "reranker", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, int64(1), updated.Version)
	assert.True(t, updated.CreatedAt.Equal(createdAt), "created_at must never change")
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestStore_Put_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	missing := makeRecommender("ghost")
	missing.ID = 999

	_, err := store.Put(ctx, missing)
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func TestStore_Put_Update_StaleVersion(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	created, err := store.Put(ctx, makeRecommender("ranker"))
	require.NoError(t, err)

	// First writer wins.
	first := *created
	first.Name = "winner"
	_, err = store.Put(ctx, &first)
	require.NoError(t, err)

	// Second writer still holds version 0 and must be rejected.
	stale := *created
	stale.Name = "loser"
	_, err = store.Put(ctx, &stale)
	assert.ErrorIs(t, err, driven.ErrConflict)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "winner", got.Name)
}

func TestStore_Get_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)

	got, err := store.Get(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got, "missing record should return nil without error")
}

func TestStore_Delete(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	created, err := store.Put(ctx, makeRecommender("ranker"))
	require.NoError(t, err)

	removed, err := store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete should report nothing removed")
}

func TestStore_Exists(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	ok, err := store.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	created, err := store.Put(ctx, makeRecommender("ranker"))
	require.NoError(t, err)

	ok, err = store.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Scan_Pagination(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Put(ctx, makeRecommender(fmt.Sprintf("rec-%d", i)))
		require.NoError(t, err)
	}

	total, err := store.Count(ctx, query.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	sort := query.Sort{Field: "name"}

	page0, err := store.Scan(ctx, query.Filter{}, sort, 0, 2)
	require.NoError(t, err)
	require.Len(t, page0, 2)
	assert.Equal(t, "rec-0", page0[0].Name)
	assert.Equal(t, "rec-1", page0[1].Name)

	page2, err := store.Scan(ctx, query.Filter{}, sort, 4, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "rec-4", page2[0].Name)

	page5, err := store.Scan(ctx, query.Filter{}, sort, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page5)
}

func TestStore_Scan_SortStability(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	// Identical names force the id tie-break.
	var ids []int64
	for i := 0; i < 3; i++ {
		created, err := store.Put(ctx, makeRecommender("same"))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	for run := 0; run < 3; run++ {
		items, err := store.Scan(ctx, query.Filter{}, query.Sort{Field: "name"}, 0, 10)
		require.NoError(t, err)
		require.Len(t, items, 3)
		for i, item := range items {
			assert.Equal(t, ids[i], item.ID, "tie-broken order must be ascending id")
		}
	}
}

func TestStore_Scan_SearchCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)
	ctx := context.Background()

	_, err := store.Put(ctx, makeRecommender("Alpha Config"))
	require.NoError(t, err)
	_, err = store.Put(ctx, makeRecommender("Beta"))
	require.NoError(t, err)

	f := query.Filter{}.Search("alpha", "name", "description")

	items, err := store.Scan(ctx, f, query.Sort{Field: "name"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alpha Config", items[0].Name)

	none, err := store.Scan(ctx, query.Filter{}.Search("zzz", "name", "description"), query.Sort{Field: "name"}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_Scan_UnknownColumnRejected(t *testing.T) {
	db := setupTestDB(t)
	store := NewRecommenderStore(db)

	_, err := store.Scan(context.Background(), query.Filter{}.Where("nope", 1), query.Sort{}, 0, 10)
	assert.Error(t, err)

	_, err = store.Scan(context.Background(), query.Filter{}, query.Sort{Field: "nope"}, 0, 10)
	assert.Error(t, err)
}

func TestFeedbackStore_Filters(t *testing.T) {
	db := setupTestDB(t)
	store := NewFeedbackStore(db)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		fb := &model.Feedback{
			Record:       model.Record{Name: fmt.Sprintf("feedback-%d", i), IsActive: i%2 == 0},
			Rating:       (i % 5) + 1,
			FeedbackDate: base.AddDate(0, 0, i),
			UserID:       int64(100 + i%2),
			IsResolved:   i >= 2,
		}
		_, err := store.Put(ctx, fb)
		require.NoError(t, err)
	}

	byUser, err := store.Count(ctx, query.Filter{}.Where("user_id", int64(100)))
	require.NoError(t, err)
	assert.Equal(t, 2, byUser)

	since, err := store.Count(ctx, query.Filter{}.Since("feedback_date", base.AddDate(0, 0, 2)))
	require.NoError(t, err)
	assert.Equal(t, 2, since)

	active, err := store.Count(ctx, query.Filter{}.Where("is_active", true))
	require.NoError(t, err)
	assert.Equal(t, 2, active)

	combined := query.Filter{}.Where("user_id", int64(100)).Where("is_resolved", true)
	items, err := store.Scan(ctx, combined, query.Sort{Field: "feedback_date"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "feedback-2", items[0].Name)
}

func TestFeedbackStore_SubsecondOrdering(t *testing.T) {
	db := setupTestDB(t)
	store := NewFeedbackStore(db)
	ctx := context.Background()

	// All within one second, with fraction widths whose trimmed text
	// representations would sort out of chronological order.
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	dates := map[string]time.Time{
		"start":     base,
		"plus100ms": base.Add(100 * time.Millisecond),
		"plus120ms": base.Add(120 * time.Millisecond),
	}
	for name, date := range dates {
		_, err := store.Put(ctx, &model.Feedback{
			Record:       model.Record{Name: name},
			Rating:       3,
			FeedbackDate: date,
			UserID:       1,
		})
		require.NoError(t, err)
	}

	items, err := store.Scan(ctx, query.Filter{}, query.Sort{Field: "feedback_date"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "start", items[0].Name)
	assert.Equal(t, "plus100ms", items[1].Name)
	assert.Equal(t, "plus120ms", items[2].Name)

	// A whole-second lower bound includes every row in that second.
	count, err := store.Count(ctx, query.Filter{}.Since("feedback_date", base))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// A fractional bound excludes rows strictly before it.
	count, err = store.Count(ctx, query.Filter{}.Since("feedback_date", dates["plus120ms"]))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIntegrationStore_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := NewIntegrationStore(db)
	ctx := context.Background()

	synced := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	env := "production"
	parentID := int64(0)

	parent, err := store.Put(ctx, &model.Integration{
		Record:           model.Record{Name: "pgvector main", IsActive: true},
		ConnectionString: "postgres://db:5432/main",
		VectorStoreType:  "pgvector",
	})
	require.NoError(t, err)
	parentID = parent.ID

	child, err := store.Put(ctx, &model.Integration{
		Record:           model.Record{Name: "pgvector replica"},
		ConnectionString: "postgres://db:5433/replica",
		VectorStoreType:  "pgvector",
		LastSyncedAt:     &synced,
		Environment:      &env,
		ParentID:         &parentID,
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "postgres://db:5433/replica", got.ConnectionString)
	require.NotNil(t, got.LastSyncedAt)
	assert.True(t, got.LastSyncedAt.Equal(synced))
	require.NotNil(t, got.Environment)
	assert.Equal(t, "production", *got.Environment)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parentID, *got.ParentID)
	assert.Nil(t, got.Metadata)
	assert.Nil(t, got.StatusMessage)

	children, err := store.Count(ctx, query.Filter{}.Where("parent_id", parentID))
	require.NoError(t, err)
	assert.Equal(t, 1, children)
}

func TestConfigRuleStore_OptionalFields(t *testing.T) {
	db := setupTestDB(t)
	store := NewConfigRuleStore(db)
	ctx := context.Background()

	retries := 3
	dynamic := `{"strict":true}`

	created, err := store.Put(ctx, &model.ConfigRule{
		Record:               model.Record{Name: "email format"},
		ValidationRule:       `^[^@]+@[^@]+$`,
		Description:          "rejects malformed addresses",
		MaxRetries:           &retries,
		EnabledForProduction: true,
		DynamicConfig:        &dynamic,
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NotNil(t, got.MaxRetries)
	assert.Equal(t, 3, *got.MaxRetries)
	assert.Nil(t, got.TimeoutSeconds)
	assert.True(t, got.EnabledForProduction)
	require.NotNil(t, got.DynamicConfig)
	assert.JSONEq(t, `{"strict":true}`, *got.DynamicConfig)
}
