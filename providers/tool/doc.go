// Package tool provides the typed tool abstraction used by pipeline stages
// that call external non-LLM services.
//
// A [Tool] wraps a strongly-typed Go function together with a name and
// description. The [GenericTool] interface erases the type parameters so
// heterogeneous tools can be stored and dispatched uniformly; Call accepts
// and returns JSON, with tolerant input parsing via core/parse.
//
// Concrete tools live in subpackages (see duckduckgo).
package tool
