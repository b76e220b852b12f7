package pipeline

import (
	"context"
	"fmt"

	"github.com/leofalp/searchflow/providers/observability"
)

const (
	// MaxSearchResults caps how many results the search stage requests and
	// records.
	MaxSearchResults = 3

	// NoResultsPlaceholder is recorded as the single search result when the
	// searcher returns nothing.
	NoResultsPlaceholder = "No results found. Try a different query."

	// noTitlePlaceholder and noDescriptionPlaceholder substitute for absent
	// result fields. Absent fields are tolerated rather than rejected.
	noTitlePlaceholder       = "No title"
	noDescriptionPlaceholder = "No description"
)

// SearchStage is the tool node of the pipeline: it calls the external web
// search service with the enhanced (or original) query and records up to
// [MaxSearchResults] formatted result summaries.
//
// This is the only stage with local error recovery. A failed search is
// converted into a single placeholder entry and the pipeline continues, so a
// flaky search backend never aborts a run.
type SearchStage struct {
	searcher Searcher
	observer observability.Provider
}

// NewSearchStage creates the search stage backed by searcher.
func NewSearchStage(searcher Searcher, observer observability.Provider) *SearchStage {
	if observer == nil {
		observer = observability.NoopProvider{}
	}
	return &SearchStage{searcher: searcher, observer: observer}
}

// StageName implements Stage.
func (s *SearchStage) StageName() string { return "search_tool" }

// Run searches for State.SearchQuery() and records the formatted results.
//
// Each result becomes "{i}. {title}: {description}", 1-indexed, with
// placeholder text for absent fields. Zero results yield the single
// [NoResultsPlaceholder] entry. A searcher error is caught and substituted
// with a single "Search error: ..." entry; Run never returns an error.
func (s *SearchStage) Run(ctx context.Context, state State) (State, error) {
	query := state.SearchQuery()

	s.observer.Info(ctx, "searching the web",
		observability.String("query", query),
	)

	results, err := s.searcher.Search(ctx, query, MaxSearchResults)
	if err != nil {
		s.observer.Warn(ctx, "search failed, using fallback data",
			observability.Error(err),
		)
		state.SearchResults = []string{fmt.Sprintf("Search error: %s. Using fallback data.", err.Error())}
		return state, nil
	}

	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}

	formatted := make([]string, 0, len(results))
	for i, result := range results {
		title := result.Title
		if title == "" {
			title = noTitlePlaceholder
		}
		body := result.Body
		if body == "" {
			body = noDescriptionPlaceholder
		}
		formatted = append(formatted, fmt.Sprintf("%d. %s: %s", i+1, title, body))
	}

	if len(formatted) == 0 {
		formatted = []string{NoResultsPlaceholder}
	}

	state.SearchResults = formatted

	s.observer.Info(ctx, "search completed",
		observability.Int("results", len(results)),
	)
	return state, nil
}
