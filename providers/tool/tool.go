package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leofalp/searchflow/core/parse"
	"github.com/leofalp/searchflow/providers/observability"
)

// Tool represents a typed, callable tool backed by an external service.
// It binds a name and description to a strongly-typed Go function.
// Use [NewTool] to construct a Tool; use [GenericTool] for type-erased usage.
type Tool[I, O any] struct {
	Name        string
	Description string
	Function    func(ctx context.Context, input I) (O, error)
}

// GenericTool is the type-erased interface for all tools. It abstracts over
// the concrete generic type parameters of [Tool] so that tools can be stored
// and dispatched without knowing their exact input/output types.
type GenericTool interface {
	// ToolName returns the tool's registered name.
	ToolName() string

	// Call invokes the tool with a JSON-encoded input string and returns a
	// JSON-encoded output string. Returns an error if parsing or execution fails.
	Call(ctx context.Context, inputJson string) (string, error)
}

// funcToolOptions holds optional configuration for a tool created via [NewTool].
type funcToolOptions struct {
	Description string
}

// WithDescription sets a human-readable description for the tool.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// NewTool constructs a new [Tool] with the given name and handler function.
//
// Example:
//
//	searchTool := tool.NewTool("WebSearch", searchFunc,
//	    tool.WithDescription("Searches the web for a query."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Function:    function,
	}
}

// ToolName returns the tool's registered name.
func (t *Tool[I, O]) ToolName() string {
	return t.Name
}

// Call invokes the tool's underlying function with the given JSON-encoded input.
// It deserializes inputJson into the tool's input type I, executes the function,
// and returns the result serialized as JSON. Observability span events are emitted
// at the start and end of execution when a span is present in ctx.
// Returns an error if JSON parsing, function execution, or output marshaling fails.
func (t *Tool[I, O]) Call(ctx context.Context, inputJson string) (string, error) {
	span := observability.SpanFromContext(ctx)

	if span != nil {
		span.AddEvent("tool.execution.start",
			observability.String("tool.name", t.Name),
			observability.String("tool.input", inputJson),
		)
		defer span.AddEvent("tool.execution.end")
	}

	start := time.Now()

	// Flexibly parse the supplied input JSON into the strongly-typed input type.
	parsedInput, err := parse.ParseStringAs[I](inputJson)
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return "", err
	}

	output, err := t.Function(ctx, parsedInput)
	duration := time.Since(start)

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(
				observability.String("tool.error", err.Error()),
				observability.Duration("tool.duration", duration),
			)
		}
		return "", err
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return "", err
	}

	if span != nil {
		span.SetAttributes(
			observability.String("tool.output", string(outputBytes)),
			observability.Duration("tool.duration", duration),
		)
	}

	return string(outputBytes), nil
}
