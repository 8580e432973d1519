package pipeline

import (
	"librarian/internal/catalog"
)

// job is one unit of work drawn from the pending backlog.
type job struct {
	remoteID string
	fileName string
}

// jobResult is the single outcome a worker reports per job. A failure
// never aborts the pool; it is applied to the catalog by the collector.
type jobResult struct {
	remoteID string
	fileName string
	meta     catalog.Metadata
	targets  []string
	err      error
}
