// Package ai defines the provider-agnostic chat model: the [Provider]
// interface every LLM backend implements, plus the request and response
// structures exchanged with it.
//
// Concrete implementations live in subpackages (see ollama). Pipeline code
// depends only on this package, so backends can be swapped or mocked in
// tests without touching stage logic.
package ai
