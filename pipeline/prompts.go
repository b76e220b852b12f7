package pipeline

import (
	"fmt"
	"strings"
)

// buildEnhancerPrompt asks the model to rewrite a raw query into a more
// specific one, answering with the query alone.
func buildEnhancerPrompt(query string) string {
	var b strings.Builder
	b.WriteString("Enhance this search query to get better results.\n")
	b.WriteString("Make it more specific and add relevant keywords.\n")
	fmt.Fprintf(&b, "Original query: %s\n", query)
	b.WriteString("Enhanced query (return only the query, no explanation):")
	return b.String()
}

// buildSummarizerPrompt asks the model to condense the collected search
// results into a short answer to the original query.
func buildSummarizerPrompt(query string, searchResults []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize these search results for the query '%s':\n\n", query)
	b.WriteString(strings.Join(searchResults, "\n"))
	b.WriteString("\n\nProvide a concise, helpful summary:")
	return b.String()
}
