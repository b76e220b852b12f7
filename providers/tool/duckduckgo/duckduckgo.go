package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/leofalp/searchflow/internal/utils"
	"github.com/leofalp/searchflow/providers/tool"
)

const (
	// DefaultMaxResults is the number of results returned when the caller
	// does not ask for a specific limit.
	DefaultMaxResults = 3

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "searchflow-duckduckgo-tool/1.0"
)

// baseURL points at the DuckDuckGo Lite endpoint. It is a variable so tests
// can redirect requests to a local httptest server.
var baseURL = "https://lite.duckduckgo.com/lite/"

// NewWebSearchTool returns a [tool.Tool] that searches the web through the
// DuckDuckGo Lite HTML interface. The Lite page is the stable scrape target:
// no API key, no JavaScript, a plain table of result links and snippets.
//
// Example:
//
//	searchTool := duckduckgo.NewWebSearchTool()
//	output, err := searchTool.Function(ctx, duckduckgo.Input{Query: "golang", MaxResults: 3})
func NewWebSearchTool() *tool.Tool[Input, Output] {
	return tool.NewTool[Input, Output](
		"DuckDuckGoSearch",
		Search,
		tool.WithDescription("Search the web using DuckDuckGo. Returns a list of results, each with a title, a short description, and a URL."),
	)
}

// Search queries DuckDuckGo Lite and returns up to req.MaxResults results in
// page order, each carrying a title, a description snippet, and a URL.
// When req.MaxResults is zero or negative, [DefaultMaxResults] is used.
//
// Returns an error when the query is empty, the HTTP request fails, or the
// endpoint answers with a non-200 status. An empty result list is not an
// error; callers decide how to handle it.
func Search(ctx context.Context, req Input) (Output, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Output{}, fmt.Errorf("query cannot be empty")
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	formData := url.Values{}
	formData.Set("q", query)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return Output{}, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", DefaultUserAgent)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: DefaultTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Output{}, fmt.Errorf("error making request: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Output{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Output{}, fmt.Errorf("error reading response: %w", err)
	}

	return Output{
		Query:   query,
		Results: parseLiteResults(string(body), maxResults),
	}, nil
}

// Result link pattern in the Lite page: <a rel="nofollow" href="URL" class='result-link'>TITLE</a>.
// The attribute order varies, so both orderings are matched.
var (
	linkPattern        = regexp.MustCompile(`(?s)<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>(.+?)</a>`)
	linkPatternAlt     = regexp.MustCompile(`(?s)<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>(.+?)</a>`)
	snippetPattern     = regexp.MustCompile(`(?s)<td[^>]*class=['"]result-snippet['"][^>]*>(.+?)</td>`)
	redirectURLPattern = regexp.MustCompile(`[?&]uddg=([^&]+)`)
)

// parseLiteResults extracts up to maxResults search results from the
// DuckDuckGo Lite HTML. Result links and snippets appear in matching page
// order, so the i-th snippet belongs to the i-th link.
func parseLiteResults(html string, maxResults int) []Result {
	matches := linkPattern.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = linkPatternAlt.FindAllStringSubmatch(html, -1)
	}
	snippetMatches := snippetPattern.FindAllStringSubmatch(html, -1)

	var results []Result
	for i, match := range matches {
		if len(results) >= maxResults {
			break
		}
		if len(match) < 3 {
			continue
		}

		resultURL := resolveRedirectURL(strings.TrimSpace(match[1]))
		title := cleanFragment(match[2])

		// Ad rows and navigation links have no usable title or URL.
		if resultURL == "" || title == "" {
			continue
		}

		description := ""
		if i < len(snippetMatches) && len(snippetMatches[i]) > 1 {
			description = cleanFragment(snippetMatches[i][1])
		}

		results = append(results, Result{
			Title:       title,
			Description: description,
			URL:         resultURL,
		})
	}

	return results
}

// resolveRedirectURL unwraps DuckDuckGo's redirect links. Lite result hrefs
// point at //duckduckgo.com/l/?uddg=<encoded-target>; the target URL is
// extracted and decoded. Direct URLs pass through unchanged.
func resolveRedirectURL(href string) string {
	if match := redirectURLPattern.FindStringSubmatch(href); len(match) == 2 {
		if decoded, err := url.QueryUnescape(match[1]); err == nil {
			return decoded
		}
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

type Input struct {
	Query      string `json:"query" jsonschema:"description=The search query to look up on DuckDuckGo,required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"description=Maximum number of results to return (default 3)"`
}

type Output struct {
	Query   string   `json:"query" jsonschema:"description=The original search query"`
	Results []Result `json:"results" jsonschema:"description=Ordered search results"`
}

// Result is a single web search hit.
type Result struct {
	Title       string `json:"title" jsonschema:"description=Result title"`
	Description string `json:"description" jsonschema:"description=Short snippet describing the result"`
	URL         string `json:"url" jsonschema:"description=URL of the result page"`
}
