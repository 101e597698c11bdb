package dto

import (
	"github.com/finbooks/finbooks/internal/domain/activity"
	"github.com/finbooks/finbooks/internal/types"
)

type ActivityResponse struct {
	*activity.Entry
}

// ListActivitiesResponse represents the response for listing audit
// trail entries
type ListActivitiesResponse = types.ListResponse[*ActivityResponse]
