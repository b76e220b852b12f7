package pipeline

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/leofalp/searchflow/providers/ai"
)

// mockProvider implements ai.Provider with a canned generate function,
// recording the prompts it receives.
type mockProvider struct {
	generate func(prompt string) (string, error)
	prompts  []string
}

func (m *mockProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	prompt := ""
	if len(request.Messages) > 0 {
		prompt = request.Messages[len(request.Messages)-1].Content
	}
	m.prompts = append(m.prompts, prompt)

	content, err := m.generate(prompt)
	if err != nil {
		return nil, err
	}
	return &ai.ChatResponse{Content: content}, nil
}

func (m *mockProvider) WithBaseURL(string) ai.Provider          { return m }
func (m *mockProvider) WithModel(string) ai.Provider            { return m }
func (m *mockProvider) WithHttpClient(*http.Client) ai.Provider { return m }

// fixedProvider returns a provider that always answers with content.
func fixedProvider(content string) *mockProvider {
	return &mockProvider{generate: func(string) (string, error) { return content, nil }}
}

// failingProvider returns a provider that always fails with err.
func failingProvider(err error) *mockProvider {
	return &mockProvider{generate: func(string) (string, error) { return "", err }}
}

// fixedSearcher returns the given results for every query.
func fixedSearcher(results ...SearchResult) SearcherFunc {
	return func(context.Context, string, int) ([]SearchResult, error) {
		return results, nil
	}
}

func TestEnhanceStage(t *testing.T) {
	t.Run("records trimmed response", func(t *testing.T) {
		stage := NewEnhanceStage(fixedProvider("  golang tutorial for beginners \n"), nil)

		state, err := stage.Run(context.Background(), NewState("golang"))
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if state.EnhancedQuery != "golang tutorial for beginners" {
			t.Errorf("EnhancedQuery = %q, want trimmed response", state.EnhancedQuery)
		}
		if state.Query != "golang" {
			t.Errorf("Query = %q, original query must not change", state.Query)
		}
	})

	t.Run("empty model response leaves enhanced query empty", func(t *testing.T) {
		stage := NewEnhanceStage(fixedProvider(""), nil)

		state, err := stage.Run(context.Background(), NewState("golang"))
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if state.EnhancedQuery != "" {
			t.Errorf("EnhancedQuery = %q, want empty", state.EnhancedQuery)
		}
	})

	t.Run("prompt embeds the original query", func(t *testing.T) {
		provider := fixedProvider("better query")
		stage := NewEnhanceStage(provider, nil)

		if _, err := stage.Run(context.Background(), NewState("rare sea birds")); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if len(provider.prompts) != 1 {
			t.Fatalf("provider called %d times, want 1", len(provider.prompts))
		}
		if !strings.Contains(provider.prompts[0], "Original query: rare sea birds") {
			t.Errorf("prompt missing original query: %q", provider.prompts[0])
		}
	})

	t.Run("provider error propagates", func(t *testing.T) {
		stage := NewEnhanceStage(failingProvider(errors.New("model offline")), nil)

		_, err := stage.Run(context.Background(), NewState("golang"))
		if err == nil {
			t.Fatal("Run() expected error, got nil")
		}
	})
}

func TestSearchStage(t *testing.T) {
	t.Run("formats results 1-indexed in input order", func(t *testing.T) {
		stage := NewSearchStage(fixedSearcher(
			SearchResult{Title: "A", Body: "B"},
			SearchResult{Title: "C", Body: "D"},
		), nil)

		state, err := stage.Run(context.Background(), NewState("test"))
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		want := []string{"1. A: B", "2. C: D"}
		if len(state.SearchResults) != len(want) {
			t.Fatalf("got %d results, want %d", len(state.SearchResults), len(want))
		}
		for i := range want {
			if state.SearchResults[i] != want[i] {
				t.Errorf("SearchResults[%d] = %q, want %q", i, state.SearchResults[i], want[i])
			}
		}
	})

	t.Run("absent fields get placeholder text", func(t *testing.T) {
		stage := NewSearchStage(fixedSearcher(SearchResult{}), nil)

		state, err := stage.Run(context.Background(), NewState("test"))
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if state.SearchResults[0] != "1. No title: No description" {
			t.Errorf("SearchResults[0] = %q", state.SearchResults[0])
		}
	})

	t.Run("zero results yield the no-results placeholder", func(t *testing.T) {
		stage := NewSearchStage(fixedSearcher(), nil)

		state, err := stage.Run(context.Background(), NewState("test"))
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if len(state.SearchResults) != 1 || state.SearchResults[0] != NoResultsPlaceholder {
			t.Errorf("SearchResults = %v, want single no-results placeholder", state.SearchResults)
		}
	})

	t.Run("searcher error is substituted, not returned", func(t *testing.T) {
		searcher := SearcherFunc(func(context.Context, string, int) ([]SearchResult, error) {
			return nil, errors.New("timeout")
		})
		stage := NewSearchStage(searcher, nil)

		state, err := stage.Run(context.Background(), NewState("test"))
		if err != nil {
			t.Fatalf("Run() must recover from searcher errors, got: %v", err)
		}
		want := "Search error: timeout. Using fallback data."
		if len(state.SearchResults) != 1 || state.SearchResults[0] != want {
			t.Errorf("SearchResults = %v, want [%q]", state.SearchResults, want)
		}
	})

	t.Run("prefers enhanced query over original", func(t *testing.T) {
		var gotQuery string
		searcher := SearcherFunc(func(_ context.Context, query string, _ int) ([]SearchResult, error) {
			gotQuery = query
			return nil, nil
		})
		stage := NewSearchStage(searcher, nil)

		state := NewState("original")
		state.EnhancedQuery = "enhanced"
		if _, err := stage.Run(context.Background(), state); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if gotQuery != "enhanced" {
			t.Errorf("searched for %q, want %q", gotQuery, "enhanced")
		}
	})

	t.Run("falls back to original query when enhancement is empty", func(t *testing.T) {
		var gotQuery string
		searcher := SearcherFunc(func(_ context.Context, query string, _ int) ([]SearchResult, error) {
			gotQuery = query
			return nil, nil
		})
		stage := NewSearchStage(searcher, nil)

		if _, err := stage.Run(context.Background(), NewState("original")); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if gotQuery != "original" {
			t.Errorf("searched for %q, want %q", gotQuery, "original")
		}
	})

	t.Run("caps results at the maximum", func(t *testing.T) {
		stage := NewSearchStage(fixedSearcher(
			SearchResult{Title: "1", Body: "a"},
			SearchResult{Title: "2", Body: "b"},
			SearchResult{Title: "3", Body: "c"},
			SearchResult{Title: "4", Body: "d"},
		), nil)

		state, err := stage.Run(context.Background(), NewState("test"))
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if len(state.SearchResults) != MaxSearchResults {
			t.Errorf("got %d results, want %d", len(state.SearchResults), MaxSearchResults)
		}
	})
}

func TestSummarizeStage(t *testing.T) {
	t.Run("records the raw response untrimmed", func(t *testing.T) {
		stage := NewSummarizeStage(fixedProvider(" summary with whitespace \n"), nil)

		state := NewState("test")
		state.SearchResults = []string{"1. A: B"}
		updated, err := stage.Run(context.Background(), state)
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if updated.Summary != " summary with whitespace \n" {
			t.Errorf("Summary = %q, want raw response", updated.Summary)
		}
	})

	t.Run("prompt embeds query and joined results", func(t *testing.T) {
		provider := fixedProvider("summary")
		stage := NewSummarizeStage(provider, nil)

		state := NewState("test query")
		state.SearchResults = []string{"1. A: B", "2. C: D"}
		if _, err := stage.Run(context.Background(), state); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		prompt := provider.prompts[0]
		if !strings.Contains(prompt, "'test query'") {
			t.Errorf("prompt missing original query: %q", prompt)
		}
		if !strings.Contains(prompt, "1. A: B\n2. C: D") {
			t.Errorf("prompt missing newline-joined results: %q", prompt)
		}
	})

	t.Run("provider error propagates", func(t *testing.T) {
		stage := NewSummarizeStage(failingProvider(errors.New("model offline")), nil)

		state := NewState("test")
		state.SearchResults = []string{"1. A: B"}
		if _, err := stage.Run(context.Background(), state); err == nil {
			t.Fatal("Run() expected error, got nil")
		}
	})
}

func TestFormatReport(t *testing.T) {
	state := NewState("test")
	state.EnhancedQuery = "test explained"
	state.SearchResults = []string{"1. A: B", "2. C: D"}
	state.Summary = "Summary text"

	report := FormatReport(state)

	for _, want := range []string{"Query: test", "Enhanced: test explained", "Results Found: 2", "Summary text"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	t.Run("is idempotent and pure", func(t *testing.T) {
		again := FormatReport(state)
		if report != again {
			t.Error("FormatReport() produced different output for the same state")
		}
	})
}

func TestFormatStage(t *testing.T) {
	var out strings.Builder
	stage := NewFormatStage(&out, nil)

	state := NewState("test")
	state.Summary = "done"
	updated, err := stage.Run(context.Background(), state)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(updated, state) {
		t.Error("format stage must not modify the state")
	}
	if out.String() != FormatReport(state) {
		t.Error("written report differs from FormatReport output")
	}
}

// buildPipeline assembles the full four-stage pipeline against the given
// fakes, discarding the formatted report.
func buildPipeline(provider ai.Provider, searcher Searcher) *Pipeline {
	var discard strings.Builder
	return New([]Stage{
		NewEnhanceStage(provider, nil),
		NewSearchStage(searcher, nil),
		NewSummarizeStage(provider, nil),
		NewFormatStage(&discard, nil),
	})
}

func TestPipeline_EndToEnd(t *testing.T) {
	// The enhancer and summarizer share one provider; it answers the first
	// prompt with the rewritten query and the second with the summary.
	calls := 0
	provider := &mockProvider{generate: func(string) (string, error) {
		calls++
		if calls == 1 {
			return "test explained", nil
		}
		return "Summary text", nil
	}}
	searcher := fixedSearcher(
		SearchResult{Title: "A", Body: "B"},
		SearchResult{Title: "C", Body: "D"},
	)

	var out strings.Builder
	p := New([]Stage{
		NewEnhanceStage(provider, nil),
		NewSearchStage(searcher, nil),
		NewSummarizeStage(provider, nil),
		NewFormatStage(&out, nil),
	})

	state, err := p.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if state.EnhancedQuery != "test explained" {
		t.Errorf("EnhancedQuery = %q", state.EnhancedQuery)
	}
	want := []string{"1. A: B", "2. C: D"}
	for i := range want {
		if state.SearchResults[i] != want[i] {
			t.Errorf("SearchResults[%d] = %q, want %q", i, state.SearchResults[i], want[i])
		}
	}
	if state.Summary != "Summary text" {
		t.Errorf("Summary = %q", state.Summary)
	}

	report := out.String()
	for _, fragment := range []string{"Query: test", "Enhanced: test explained", "Results Found: 2", "Summary text"} {
		if !strings.Contains(report, fragment) {
			t.Errorf("report missing %q:\n%s", fragment, report)
		}
	}
}

func TestPipeline_SearchErrorStillReachesFormatter(t *testing.T) {
	provider := fixedProvider("whatever")
	searcher := SearcherFunc(func(context.Context, string, int) ([]SearchResult, error) {
		return nil, errors.New("timeout")
	})

	p := buildPipeline(provider, searcher)
	state, err := p.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	want := "Search error: timeout. Using fallback data."
	if len(state.SearchResults) != 1 || state.SearchResults[0] != want {
		t.Errorf("SearchResults = %v, want [%q]", state.SearchResults, want)
	}
	if state.Summary == "" {
		t.Error("pipeline should continue to summarization after a search error")
	}
}

func TestPipeline_StageErrorAbortsRun(t *testing.T) {
	provider := failingProvider(errors.New("model offline"))
	searchCalled := false
	searcher := SearcherFunc(func(context.Context, string, int) ([]SearchResult, error) {
		searchCalled = true
		return nil, nil
	})

	p := buildPipeline(provider, searcher)
	_, err := p.Run(context.Background(), "test")
	if err == nil {
		t.Fatal("Run() expected error from failing enhancer, got nil")
	}
	if !strings.Contains(err.Error(), "enhance_query") {
		t.Errorf("error should name the failed stage, got: %v", err)
	}
	if searchCalled {
		t.Error("stages after the failed one must not run")
	}
}

func TestPipeline_BatchFailureIsolation(t *testing.T) {
	// Three queries; the provider fails only for the second one. The other
	// two runs must still complete.
	provider := &mockProvider{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "query-two") {
			return "", errors.New("model offline")
		}
		return "ok", nil
	}}
	p := buildPipeline(provider, fixedSearcher(SearchResult{Title: "A", Body: "B"}))

	var failures []string
	completed := 0
	for _, query := range []string{"query-one", "query-two", "query-three"} {
		if _, err := p.Run(context.Background(), query); err != nil {
			failures = append(failures, query)
			continue
		}
		completed++
	}

	if completed != 2 {
		t.Errorf("completed = %d, want 2", completed)
	}
	if len(failures) != 1 || failures[0] != "query-two" {
		t.Errorf("failures = %v, want only query-two", failures)
	}
}

func TestStageNames(t *testing.T) {
	// Stage names appear in spans and error messages; keep them stable.
	stages := []struct {
		stage Stage
		want  string
	}{
		{NewEnhanceStage(fixedProvider(""), nil), "enhance_query"},
		{NewSearchStage(fixedSearcher(), nil), "search_tool"},
		{NewSummarizeStage(fixedProvider(""), nil), "summarize"},
		{NewFormatStage(&strings.Builder{}, nil), "format"},
	}
	for _, tc := range stages {
		if got := tc.stage.StageName(); got != tc.want {
			t.Errorf("StageName() = %q, want %q", got, tc.want)
		}
	}
}

func TestSearchQueryFallback(t *testing.T) {
	tests := []struct {
		name     string
		enhanced string
		want     string
	}{
		{"uses enhanced when set", "better", "better"},
		{"falls back to original when empty", "", "original"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := NewState("original")
			state.EnhancedQuery = tc.enhanced
			if got := state.SearchQuery(); got != tc.want {
				t.Errorf("SearchQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}
