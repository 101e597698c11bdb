package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/activity"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryActivityStore implements activity.Repository
type InMemoryActivityStore struct {
	*InMemoryStore[*activity.Entry]
}

// NewInMemoryActivityStore creates a new in-memory activity log store
func NewInMemoryActivityStore() *InMemoryActivityStore {
	return &InMemoryActivityStore{
		InMemoryStore: NewInMemoryStore[*activity.Entry](),
	}
}

func copyActivityEntry(e *activity.Entry) *activity.Entry {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

func (s *InMemoryActivityStore) Create(ctx context.Context, e *activity.Entry) error {
	return s.InMemoryStore.Create(ctx, e.ID, copyActivityEntry(e))
}

func (s *InMemoryActivityStore) List(ctx context.Context, filter *types.ActivityFilter) ([]*activity.Entry, error) {
	entries, err := s.InMemoryStore.List(ctx, filter, activityFilterFn, activitySortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(e *activity.Entry, _ int) *activity.Entry {
		return copyActivityEntry(e)
	}), nil
}

func (s *InMemoryActivityStore) Count(ctx context.Context, filter *types.ActivityFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, activityFilterFn)
}

// activityFilterFn implements filtering logic for activity entries
func activityFilterFn(ctx context.Context, e *activity.Entry, filter interface{}) bool {
	if !visibleInTenant(ctx, e.TenantID, e.Status) {
		return false
	}

	f, ok := filter.(*types.ActivityFilter)
	if !ok || f == nil {
		return true
	}

	if f.ActionType != nil && e.ActionType != *f.ActionType {
		return false
	}
	if f.User != "" && e.User != f.User {
		return false
	}
	if f.DocumentID != "" && e.DocumentID != f.DocumentID {
		return false
	}
	if !inTimeRange(f.TimeRangeFilter, e.CreatedAt) {
		return false
	}

	return true
}

// activitySortFn sorts by timestamp desc to match the repository default
func activitySortFn(a, b *activity.Entry) bool {
	return a.Timestamp.After(b.Timestamp)
}
