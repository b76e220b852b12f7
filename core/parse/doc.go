// Package parse provides flexible string-to-type conversion for content
// produced by language models.
//
// Model output is not always well-formed: tool-call arguments may arrive with
// single quotes, unquoted keys, or trailing commas. [ParseStringAs] first
// tries strict parsing and then falls back to jsonrepair before giving up.
package parse
