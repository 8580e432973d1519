package classify

import (
	"fmt"
	"strings"

	"librarian/internal/rules"
)

const systemPrompt = "You are a research librarian. You extract metadata " +
	"from scientific paper text and respond with JSON only, never prose."

// buildPrompt renders the extraction request. Each rule is presented as a
// category the model may match the abstract against; the model must echo
// category names exactly so they can be resolved back to rules.
func buildPrompt(text string, set *rules.Set) string {
	var categories strings.Builder
	for _, rule := range set.All() {
		fmt.Fprintf(&categories, "Category: <name>%s</name> <description>%s</description>\n", rule.Name, rule.Description)
	}

	var b strings.Builder
	b.WriteString("Extract Title, Authors, Abstract from the following scientific paper text. ")
	b.WriteString("Provide a 1-line summary. ")
	b.WriteString("Match the abstract against these categories to select the applicable categories for the text.\n\n")
	b.WriteString("<categories>\n")
	b.WriteString(categories.String())
	b.WriteString("</categories>\n\n")
	b.WriteString("Text:\n\n<text>")
	b.WriteString(text)
	b.WriteString("</text>\n\n")
	b.WriteString("Respond ONLY with JSON in this format, where the \"categories\" key has an array of ")
	b.WriteString("strings with the exact names of the categories matched to the text:\n\n")
	b.WriteString(`{"title": "...", "authors": ["..."], "summary": "...", "abstract": "...", "categories": ["...","..."]}`)
	return b.String()
}
