// Package ollama implements the ai.Provider interface for a local Ollama
// server using the non-streaming /api/chat endpoint.
//
// The server address defaults to http://localhost:11434 and can be overridden
// with OLLAMA_BASE_URL; the default model comes from OLLAMA_MODEL. No API key
// is needed.
package ollama
