package pipeline

import (
	"fmt"
	"strings"

	"librarian/internal/services/classify"
)

// renderSidecar produces the markdown companion document uploaded next to
// each filed copy of a paper.
func renderSidecar(meta classify.Result) []byte {
	content := fmt.Sprintf(
		"# %s\n\nAuthors: %s\n\nSummary: %s\n\nAbstract: %s",
		meta.Title,
		strings.Join(meta.Authors, ", "),
		meta.Summary,
		meta.Abstract,
	)
	return []byte(content)
}
