package crawlers

import (
	"fmt"
	"strings"

	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
)

// extractionSchema is the JSON shape the model must return for one page.
// Every field is nullable.
var extractionSchema = buildExtractionSchema()

func buildExtractionSchema() *llm.Schema {
	props := make([]llm.Property, 0, len(models.PageScalarFields)+len(models.PageListFields))
	for _, f := range models.PageScalarFields {
		props = append(props, llm.Prop(f.Name, llm.String(f.Description).OrNull()))
	}
	for _, f := range models.PageListFields {
		props = append(props, llm.Prop(f.Name, llm.Array(f.Description, llm.String(f.Name+" entry")).OrNull()))
	}
	return llm.Object("Marketing facts extracted from one web page", props...)
}

const extractionPreamble = `You are extracting marketing facts from the visible text of one page of a
small business website. The facts will be used to write direct-mail postcards.

Rules:
- Copy wording from the page. Do not invent, summarize across sections or translate.
- Return null for any field the page gives no evidence for. Use [] only when the
  field clearly applies but has no entries.
- Skip navigation menus, cookie banners, legal boilerplate and footer link lists.
- Headlines are 3 to 15 words. Never return whole paragraphs as headlines,
  taglines or sub-headers.
- Service areas are specific places (city, county, neighborhood, zip code).
  Phrases like "surrounding areas" or "and more" are not service areas.
- Testimonials are quotes from customers, not marketing copy written by the business.
- Do not list images or fonts.

Fields:
`

// buildExtractionPrompt renders the instruction for one page.
func buildExtractionPrompt(pageURL, pageType, text string) string {
	var sb strings.Builder
	sb.WriteString(extractionPreamble)
	for _, f := range models.PageScalarFields {
		fmt.Fprintf(&sb, "- %s (string or null): %s\n", f.Name, f.Description)
	}
	for _, f := range models.PageListFields {
		fmt.Fprintf(&sb, "- %s (array of strings or null): %s\n", f.Name, f.Description)
	}
	fmt.Fprintf(&sb, "\nPage URL: %s\nPage type: %s\n\nPage text:\n%s\n", pageURL, pageType, text)
	return sb.String()
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
