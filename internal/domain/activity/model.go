package activity

import (
	"time"

	"github.com/finbooks/finbooks/internal/types"
)

// Entry is a single audit trail record. Entries are append-only; nothing
// updates or deletes them. JSON field names match the stored documents of
// earlier versions of the system.
type Entry struct {
	// ID is the unique identifier for the entry
	ID string `db:"id" json:"id"`

	// Timestamp is when the recorded action happened
	Timestamp time.Time `db:"timestamp" json:"timestamp"`

	// ActionType is the kind of mutation recorded
	ActionType types.ActivityAction `db:"action_type" json:"action_type"`

	// User is who performed the action
	User string `db:"user_name" json:"user"`

	// Details is a human readable description of the action
	Details string `db:"details" json:"details"`

	// DocumentID is the id of the document the action touched
	DocumentID string `db:"document_id" json:"document_id,omitempty"`

	// CollectionName names the entity collection the document belongs to
	CollectionName string `db:"collection_name" json:"collection_name,omitempty"`

	types.BaseModel
}

func (e *Entry) TableName() string {
	return "activity_log"
}
