package types

// Status is the archival state of a record. Deleted records stay in the
// database but are excluded from all default queries.
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
	StatusArchived  Status = "archived"
)

func (s Status) String() string {
	return string(s)
}
