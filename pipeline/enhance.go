package pipeline

import (
	"context"
	"strings"

	"github.com/leofalp/searchflow/providers/ai"
	"github.com/leofalp/searchflow/providers/observability"
)

// EnhanceStage rewrites the raw query through the language model before
// searching. The model is sampled deterministically (temperature 0) so that
// repeated runs of the same query produce the same rewrite.
type EnhanceStage struct {
	provider ai.Provider
	observer observability.Provider
}

// NewEnhanceStage creates the query-enhancement stage backed by provider.
func NewEnhanceStage(provider ai.Provider, observer observability.Provider) *EnhanceStage {
	if observer == nil {
		observer = observability.NoopProvider{}
	}
	return &EnhanceStage{provider: provider, observer: observer}
}

// StageName implements Stage.
func (s *EnhanceStage) StageName() string { return "enhance_query" }

// Run sends the original query to the model and records the trimmed response
// as State.EnhancedQuery. An empty model response leaves the enhanced query
// empty; downstream falls back to the original query. Provider errors are not
// handled here and abort the run.
func (s *EnhanceStage) Run(ctx context.Context, state State) (State, error) {
	s.observer.Info(ctx, "enhancing query",
		observability.String("query", state.Query),
	)

	response, err := ai.Generate(ctx, s.provider, buildEnhancerPrompt(state.Query), deterministicSampling())
	if err != nil {
		return state, err
	}

	state.EnhancedQuery = strings.TrimSpace(response)

	s.observer.Info(ctx, "query enhanced",
		observability.String("enhanced_query", state.EnhancedQuery),
	)
	return state, nil
}

// deterministicSampling pins the temperature to zero to minimize variance
// between runs.
func deterministicSampling() *ai.GenerationConfig {
	return &ai.GenerationConfig{Temperature: 0, TemperatureSet: true}
}
