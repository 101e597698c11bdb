package service

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/activity"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// ActivityService exposes the append-only audit trail.
type ActivityService interface {
	ListActivities(ctx context.Context, filter *types.ActivityFilter) (*dto.ListActivitiesResponse, error)
}

type activityService struct {
	ServiceParams
}

func NewActivityService(params ServiceParams) ActivityService {
	return &activityService{
		ServiceParams: params,
	}
}

func (s *activityService) ListActivities(ctx context.Context, filter *types.ActivityFilter) (*dto.ListActivitiesResponse, error) {
	if filter == nil {
		filter = types.NewActivityFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.ActivityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.ActivityRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListActivitiesResponse{
		Items: lo.Map(entries, func(e *activity.Entry, _ int) *dto.ActivityResponse {
			return &dto.ActivityResponse{Entry: e}
		}),
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}
	return response, nil
}

// recordActivity appends an audit trail entry. Audit writes are best
// effort; a failed insert is logged and never fails the operation that
// triggered it.
func (p ServiceParams) recordActivity(ctx context.Context, action types.ActivityAction, details, documentID, collectionName string) {
	entry := &activity.Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVITY),
		Timestamp:      time.Now().UTC(),
		ActionType:     action,
		User:           types.GetUserID(ctx),
		Details:        details,
		DocumentID:     documentID,
		CollectionName: collectionName,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	if err := p.ActivityRepo.Create(ctx, entry); err != nil {
		p.Logger.Errorw("failed to record activity",
			"action_type", action,
			"document_id", documentID,
			"error", err)
	}
}
