package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const tavilyURL = "https://api.tavily.com/search"

// TavilyClient queries the Tavily search API
type TavilyClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

var _ Searcher = (*TavilyClient)(nil)

// NewTavilyClient creates a Tavily client
func NewTavilyClient(apiKey string, timeout time.Duration) *TavilyClient {
	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: tavilyURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *TavilyClient) Name() string { return "tavily" }

type tavilyRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"`
	Topic         string `json:"topic,omitempty"`
	MaxResults    int    `json:"max_results,omitempty"`
	IncludeAnswer bool   `json:"include_answer,omitempty"`
}

type tavilyResponse struct {
	Query   string `json:"query"`
	Answer  string `json:"answer"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search implements Searcher
func (c *TavilyClient) Search(ctx context.Context, req Request) (*Response, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	payload, err := json.Marshal(tavilyRequest{
		Query:         req.Query,
		SearchDepth:   "basic",
		Topic:         "general",
		MaxResults:    maxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, eris.Wrap(err, "marshal tavily request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "create tavily request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "tavily request failed")
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read tavily response")
	}
	if res.StatusCode != http.StatusOK {
		return nil, eris.Errorf("tavily api error (status %d): %s", res.StatusCode, string(body))
	}

	var tr tavilyResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, eris.Wrap(err, "decode tavily response")
	}

	out := &Response{Answer: tr.Answer}
	for _, r := range tr.Results {
		out.Results = append(out.Results, Result{Title: r.Title, URL: r.URL, Content: r.Content, Score: r.Score})
	}
	return out, nil
}
