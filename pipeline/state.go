package pipeline

import "context"

// State is the run record threaded through the pipeline for one query.
// Each stage writes exactly one field and later stages only read it:
//
//   - Query is set at creation and never changes.
//   - EnhancedQuery is written by the enhancer stage.
//   - SearchResults is written by the search stage.
//   - Summary is written by the summarizer stage.
//
// Stages receive the State by value and return an updated copy, so a stage
// cannot mutate a field written upstream in place. A State is created fresh
// per query and discarded once the report is produced.
type State struct {
	// Query is the original user-supplied search query.
	Query string

	// EnhancedQuery is the model-rewritten query. Empty until the enhancer
	// stage completes, and possibly empty afterwards when the model returns
	// nothing; downstream stages fall back to Query.
	EnhancedQuery string

	// SearchResults holds formatted "{i}. {title}: {description}" entries in
	// result order, capped at the stage's result limit. A single placeholder
	// entry denotes "no results" or "search error".
	SearchResults []string

	// Summary is the free-text synthesis of the search results.
	Summary string
}

// NewState creates a fresh run record for the given query.
func NewState(query string) State {
	return State{Query: query}
}

// SearchQuery returns the query the search stage should use: the enhanced
// query when the enhancer produced one, otherwise the original query.
func (s State) SearchQuery() string {
	if s.EnhancedQuery != "" {
		return s.EnhancedQuery
	}
	return s.Query
}

// SearchResult is a single web search hit as seen by the pipeline: a title
// and a body snippet. Searcher implementations map their own result shapes
// onto it.
type SearchResult struct {
	Title string
	Body  string
}

// Searcher is the minimal search capability the pipeline depends on.
// Implementations return up to limit results in relevance order; returning
// fewer (or zero) results is not an error.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// SearcherFunc is an adapter that allows using an ordinary function as a
// Searcher.
type SearcherFunc func(ctx context.Context, query string, limit int) ([]SearchResult, error)

// Search calls the underlying function, satisfying the Searcher interface.
func (searcherFunc SearcherFunc) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return searcherFunc(ctx, query, limit)
}
