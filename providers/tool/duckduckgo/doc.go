// Package duckduckgo implements a web search tool backed by the DuckDuckGo
// Lite HTML interface.
//
// DuckDuckGo Lite is free and requires no API key, which makes it the
// natural default search backend for a demo pipeline. The page is scraped
// with regular expressions tuned to its stable table layout; titles and
// snippets are flattened to plain text through the html-to-markdown
// converter.
package duckduckgo
