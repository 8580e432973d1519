package catalog

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a catalog record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	// StatusError is terminal: a record only leaves it when the remote
	// content hash changes and the synchronizer resets it to pending.
	// There is no automatic retry.
	StatusError Status = "error"

	// Reserved statuses with no transition into them in the current flow.
	StatusDownloaded Status = "downloaded"
	StatusArchived   Status = "archived"
	StatusSkipped    Status = "skipped"
)

var allStatuses = []Status{
	StatusPending,
	StatusDownloaded,
	StatusProcessed,
	StatusArchived,
	StatusError,
	StatusSkipped,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Metadata holds the article fields extracted by a successful classification.
type Metadata struct {
	Title   string
	Authors []string
	Summary string
}

// FileRecord is one row per remote file, keyed by the stable remote id.
type FileRecord struct {
	RemoteID    string
	FileName    string
	ContentHash string
	Status      Status
	Title       string
	Authors     []string
	Summary     string
	TargetPaths []string
	LastError   string
	UpdatedAt   time.Time
}

// Summary describes aggregated record counts per status.
type Summary struct {
	Total  int
	Counts map[Status]int
}
