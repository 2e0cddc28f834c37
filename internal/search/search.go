// Package search provides the web search backends used by the analyst agent.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrDisabled is returned when no search provider is configured
var ErrDisabled = eris.New("web search is not configured")

// Request is one search query
type Request struct {
	Query      string
	MaxResults int
}

// Result is a single search hit
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`

	Authority Tier `json:"authority,omitempty"`
}

// Response holds the hits for a query
type Response struct {
	Answer  string   `json:"answer,omitempty"`
	Results []Result `json:"results"`
}

// Searcher runs web searches
type Searcher interface {
	Name() string
	Search(ctx context.Context, req Request) (*Response, error)
}

// Disabled is the searcher used when no provider is configured
type Disabled struct{}

var _ Searcher = Disabled{}

func (Disabled) Name() string { return "disabled" }

func (Disabled) Search(ctx context.Context, req Request) (*Response, error) {
	return nil, ErrDisabled
}

// FormatResults renders a response as numbered text for agent observations
func FormatResults(resp *Response) string {
	if resp == nil || (len(resp.Results) == 0 && resp.Answer == "") {
		return "No results found."
	}

	var b strings.Builder
	if resp.Answer != "" {
		fmt.Fprintf(&b, "Answer: %s\n\n", resp.Answer)
	}
	for i, r := range resp.Results {
		title := r.Title
		if r.Authority == TierPrimary {
			title += " [primary source]"
		}
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, title, r.URL)
		if c := strings.TrimSpace(r.Content); c != "" {
			fmt.Fprintf(&b, "   %s\n", c)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
