package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/leofalp/searchflow/pipeline"
	"github.com/leofalp/searchflow/providers/ai/ollama"
	"github.com/leofalp/searchflow/providers/observability/slogobs"
	"github.com/leofalp/searchflow/providers/tool"
	"github.com/leofalp/searchflow/providers/tool/duckduckgo"
)

// markerFile records that the demonstration ran to completion.
const markerFile = "search-demo-complete.txt"

// testQueries are processed strictly one after another; a failure in one run
// never aborts the batch.
var testQueries = []string{
	"What is the Go programming language used for?",
	"How to build AI agents?",
	"DuckDuckGo search API",
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug("no .env file loaded", "error", err.Error())
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	observer := slogobs.New(logger)

	provider := ollama.NewOllamaProvider()
	searchTool := duckduckgo.NewWebSearchTool()

	p := pipeline.New([]pipeline.Stage{
		pipeline.NewEnhanceStage(provider, observer),
		pipeline.NewSearchStage(ddgSearcher{tool: searchTool}, observer),
		pipeline.NewSummarizeStage(provider, observer),
		pipeline.NewFormatStage(os.Stdout, observer),
	}, pipeline.WithObserver(observer))

	ctx := context.Background()

	fmt.Println("=== Web Search Pipeline Demo ===")
	for _, query := range testQueries {
		fmt.Printf("\nRunning query: %q\n", query)

		if _, err := p.Run(ctx, query); err != nil {
			logger.Error("pipeline run failed", "query", query, "error", err.Error())
			continue
		}
		fmt.Println("Search completed successfully")
	}

	if err := writeCompletionMarker(markerFile); err != nil {
		logger.Warn("could not write completion marker", "error", err.Error())
	} else {
		fmt.Printf("\nCompletion marker saved to %s\n", markerFile)
	}
}

// writeCompletionMarker writes the fixed two-line file recording that the
// demonstration finished.
func writeCompletionMarker(path string) error {
	content := "SEARCH_DEMO_COMPLETE\nWeb search pipeline demo completed successfully\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ddgSearcher adapts the typed DuckDuckGo tool to the pipeline's Searcher
// capability.
type ddgSearcher struct {
	tool *tool.Tool[duckduckgo.Input, duckduckgo.Output]
}

func (s ddgSearcher) Search(ctx context.Context, query string, limit int) ([]pipeline.SearchResult, error) {
	output, err := s.tool.Function(ctx, duckduckgo.Input{Query: query, MaxResults: limit})
	if err != nil {
		return nil, err
	}

	results := make([]pipeline.SearchResult, 0, len(output.Results))
	for _, result := range output.Results {
		results = append(results, pipeline.SearchResult{
			Title: result.Title,
			Body:  result.Description,
		})
	}
	return results, nil
}
