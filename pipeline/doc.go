// Package pipeline implements the four-stage search workflow: enhance the
// query through a language model, search the web, summarize the results, and
// format a report.
//
// The stages form a strictly linear sequence over a shared run record
// ([State]); there is no branching, looping, or concurrency, so the executor
// is a plain ordered stage runner rather than a general graph engine. Each
// stage writes exactly one State field and later stages only read it.
//
// Error handling follows two tiers. Search failures are recovered inside the
// search stage by substituting a placeholder result entry, and the run
// continues. Language-model failures in the enhancer or summarizer abort the
// run and surface to the caller, who decides whether other queries proceed.
//
// External services are abstracted behind minimal capability interfaces
// (ai.Provider for the model, [Searcher] for web search) so stages can be
// exercised in tests with in-memory fakes.
package pipeline
