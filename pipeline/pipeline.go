package pipeline

import (
	"context"
	"fmt"

	"github.com/leofalp/searchflow/providers/observability"
)

// StageStatus represents the lifecycle status of a stage during a run.
type StageStatus string

const (
	// StagePending indicates the stage has not started execution yet.
	StagePending StageStatus = "pending"

	// StageRunning indicates the stage is currently executing.
	StageRunning StageStatus = "running"

	// StageCompleted indicates the stage finished successfully.
	StageCompleted StageStatus = "completed"

	// StageFailed indicates the stage returned an error, aborting the run.
	StageFailed StageStatus = "failed"
)

// Stage is a single processing step in the pipeline. Run receives the current
// State by value and returns the updated State; the returned copy replaces the
// current one before the next stage executes.
//
// A stage that cannot recover from a failure returns an error, which aborts
// the run. Stages with local recovery (the search stage) substitute a
// placeholder into the State and return nil.
type Stage interface {
	// StageName returns the stage's identifier, used in spans, logs, and
	// error messages.
	StageName() string

	// Run executes the stage.
	Run(ctx context.Context, state State) (State, error)
}

// Pipeline is an ordered sequence of stages executed strictly one after
// another under a single context. There is no branching, no concurrency, and
// no retry: the first stage error aborts the run and is returned to the
// caller.
type Pipeline struct {
	stages   []Stage
	observer observability.Provider
}

// Option configures a Pipeline created via [New].
type Option func(*Pipeline)

// WithObserver sets the observability provider used for spans and structured
// logs. The default is a no-op observer.
func WithObserver(observer observability.Provider) Option {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

// New creates a Pipeline from the given stages, executed in argument order.
func New(stages []Stage, options ...Option) *Pipeline {
	p := &Pipeline{
		stages:   stages,
		observer: observability.NoopProvider{},
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Run executes all stages in order against a fresh State for query and
// returns the final State.
//
// Each stage runs inside its own span. On stage failure the error is recorded
// on the span, wrapped with the stage name, and returned; stages after the
// failed one never run.
func (p *Pipeline) Run(ctx context.Context, query string) (State, error) {
	runCtx, runSpan := p.observer.StartSpan(ctx, "pipeline.run",
		observability.String("query", query),
	)
	defer runSpan.End()

	state := NewState(query)

	for _, stage := range p.stages {
		updated, err := p.runStage(runCtx, stage, state)
		if err != nil {
			runSpan.SetStatus(observability.StatusError, err.Error())
			return state, err
		}
		state = updated
	}

	runSpan.SetStatus(observability.StatusOK, "")
	return state, nil
}

// runStage executes a single stage with span and status bookkeeping.
func (p *Pipeline) runStage(ctx context.Context, stage Stage, state State) (State, error) {
	name := stage.StageName()

	stageCtx, span := p.observer.StartSpan(ctx, "pipeline.stage",
		observability.String("stage", name),
	)
	defer span.End()

	p.observer.Debug(stageCtx, "stage status changed",
		observability.String("stage", name),
		observability.String("status", string(StageRunning)),
	)

	updated, err := stage.Run(stageCtx, state)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, err.Error())
		p.observer.Error(stageCtx, "stage status changed",
			observability.String("stage", name),
			observability.String("status", string(StageFailed)),
			observability.Error(err),
		)
		return state, fmt.Errorf("stage %s: %w", name, err)
	}

	span.SetStatus(observability.StatusOK, "")
	p.observer.Debug(stageCtx, "stage status changed",
		observability.String("stage", name),
		observability.String("status", string(StageCompleted)),
	)
	return updated, nil
}
