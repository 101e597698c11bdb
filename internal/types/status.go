package types

// Status is a type for the lifecycle status of a resource row in the database.
// It tracks soft deletion and archival and is orthogonal to any domain status
// a document carries (e.g. an invoice's payment status).
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}
