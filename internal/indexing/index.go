// Package indexing renders a browsable README for a filed library folder
// from the processed records in the catalog.
package indexing

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"librarian/internal/catalog"
	"librarian/internal/remote"
)

// Generate builds a markdown index of every processed record filed under
// folder and uploads it as <folder>/README.md. An empty folder produces
// no upload. The number of indexed records is returned.
func Generate(ctx context.Context, store *catalog.Store, remoteStore remote.Store, folder string) (int, error) {
	folder = strings.TrimRight(strings.TrimSpace(folder), "/")
	if folder == "" {
		return 0, fmt.Errorf("indexing: folder required")
	}

	records, err := store.FindByTargetPrefix(ctx, folder)
	if err != nil {
		return 0, fmt.Errorf("indexing: load records: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	content := render(records, folder)
	readme := path.Join(folder, "README.md")
	if err := remoteStore.Put(ctx, readme, content); err != nil {
		return 0, fmt.Errorf("indexing: upload %s: %w", readme, err)
	}
	return len(records), nil
}

func render(records []*catalog.FileRecord, folder string) []byte {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(deriveHeading(folder))
	b.WriteString("\n\n")
	b.WriteString("| Title | Authors | Summary |\n")
	b.WriteString("| :--- | :--- | :--- |\n")

	for _, record := range records {
		title := record.Title
		if title == "" {
			title = "Unknown"
		}
		filename := ""
		for _, target := range record.TargetPaths {
			if strings.HasPrefix(target, folder) {
				filename = path.Base(target)
				break
			}
		}
		fmt.Fprintf(&b, "| [%s](%s) | %s | %s |\n",
			escapeCell(title),
			filename,
			escapeCell(strings.Join(record.Authors, ", ")),
			escapeCell(record.Summary),
		)
	}
	return []byte(b.String())
}

// deriveHeading turns the folder path into a human heading, e.g.
// "/Research/machine_learning" becomes "Machine Learning".
func deriveHeading(folder string) string {
	base := path.Base(folder)
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	heading := strings.TrimSpace(cleaned.String())
	if heading == "" {
		return "Index"
	}
	return cases.Title(language.Und).String(heading)
}

// escapeCell keeps record text from breaking the table layout.
func escapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	return strings.Join(strings.Fields(value), " ")
}
