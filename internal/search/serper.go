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

const serperURL = "https://google.serper.dev/search"

// SerperClient queries the Serper Google search API
type SerperClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

var _ Searcher = (*SerperClient)(nil)

// NewSerperClient creates a Serper client
func NewSerperClient(apiKey string, timeout time.Duration) *SerperClient {
	return &SerperClient{
		apiKey:   apiKey,
		endpoint: serperURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *SerperClient) Name() string { return "serper" }

type serperResponse struct {
	AnswerBox *struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answerBox"`
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
}

// Search implements Searcher
func (c *SerperClient) Search(ctx context.Context, req Request) (*Response, error) {
	num := req.MaxResults
	if num <= 0 {
		num = 5
	}

	payload, err := json.Marshal(map[string]any{"q": req.Query, "num": num})
	if err != nil {
		return nil, eris.Wrap(err, "marshal serper request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "create serper request")
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "serper request failed")
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read serper response")
	}
	if res.StatusCode != http.StatusOK {
		return nil, eris.Errorf("serper api error (status %d): %s", res.StatusCode, string(body))
	}

	var sr serperResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, eris.Wrap(err, "decode serper response")
	}

	out := &Response{}
	if sr.AnswerBox != nil {
		out.Answer = sr.AnswerBox.Answer
		if out.Answer == "" {
			out.Answer = sr.AnswerBox.Snippet
		}
	}
	for i, r := range sr.Organic {
		if i >= num {
			break
		}
		out.Results = append(out.Results, Result{Title: r.Title, URL: r.Link, Content: r.Snippet})
	}
	return out, nil
}
