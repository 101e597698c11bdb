package payload

import (
	"context"
	"encoding/json"
)

// PayloadBuilder interface for building event-specific payloads.
// The data argument is the internal event published by the service
// layer, not the outbound payload.
type PayloadBuilder interface {
	BuildPayload(ctx context.Context, eventType string, data json.RawMessage) (json.RawMessage, error)
}
