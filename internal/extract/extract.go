// Package extract pulls plain text out of PDF documents for classification.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages bounds how much of a document is read. The title, authors and
// abstract of a paper sit in the opening pages; the rest only adds noise
// and token cost.
const maxPages = 5

// ErrNoText indicates the document contained no extractable text, which
// usually means a scanned PDF without an OCR layer.
var ErrNoText = errors.New("extract: document has no extractable text")

// Func is the extraction hook the pipeline calls. It exists so tests can
// substitute canned text for real PDF parsing.
type Func func(content []byte) (string, error)

// Text extracts plain text from the first pages of a PDF document.
func Text(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract: open pdf: %w", err)
	}

	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single malformed page should not sink the document.
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	combined := strings.TrimSpace(b.String())
	if combined == "" {
		return "", ErrNoText
	}
	return combined, nil
}
