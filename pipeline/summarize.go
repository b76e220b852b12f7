package pipeline

import (
	"context"

	"github.com/leofalp/searchflow/providers/ai"
	"github.com/leofalp/searchflow/providers/observability"
)

// SummarizeStage condenses the collected search results into prose through
// the language model.
type SummarizeStage struct {
	provider ai.Provider
	observer observability.Provider
}

// NewSummarizeStage creates the summarization stage backed by provider.
func NewSummarizeStage(provider ai.Provider, observer observability.Provider) *SummarizeStage {
	if observer == nil {
		observer = observability.NoopProvider{}
	}
	return &SummarizeStage{provider: provider, observer: observer}
}

// StageName implements Stage.
func (s *SummarizeStage) StageName() string { return "summarize" }

// Run joins State.SearchResults with newlines, asks the model for a concise
// summary of them against the original query, and records the raw response
// text as State.Summary. The response is deliberately not trimmed, unlike
// the enhancer. Provider errors abort the run.
func (s *SummarizeStage) Run(ctx context.Context, state State) (State, error) {
	s.observer.Info(ctx, "summarizing search results",
		observability.Int("results", len(state.SearchResults)),
	)

	response, err := ai.Generate(ctx, s.provider, buildSummarizerPrompt(state.Query, state.SearchResults), deterministicSampling())
	if err != nil {
		return state, err
	}

	state.Summary = response

	s.observer.Info(ctx, "summary generated",
		observability.Int("summary_chars", len(state.Summary)),
	)
	return state, nil
}
