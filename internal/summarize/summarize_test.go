package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunisrani/marketscope/internal/llm"
	"github.com/varunisrani/marketscope/internal/model"
)

// MockProvider is a mock LLM provider for testing
type MockProvider struct {
	Text     string
	Err      error
	Requests []llm.CompletionRequest
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return &llm.CompletionResponse{Text: m.Text, Model: "mock"}, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool { return true }

func TestSummarize_NoContent(t *testing.T) {
	mock := &MockProvider{Text: "unused"}
	s := NewSummarizer(mock)

	assert.Equal(t, NoContentSummary, s.Summarize(context.Background(), "", "SaaS"))
	assert.Equal(t, NoContentSummary, s.Summarize(context.Background(), "   \n", "SaaS"))
	assert.Empty(t, mock.Requests, "no LLM call without content")
}

func TestSummarize_ValidResponse(t *testing.T) {
	digest := "1. Company Overview\n- Acme builds rockets for commercial customers worldwide."
	mock := &MockProvider{Text: "  " + digest + "  "}
	s := NewSummarizer(mock)

	got := s.Summarize(context.Background(), strings.Repeat("x", 4000), "Aerospace")
	assert.Equal(t, digest, got)

	require.Len(t, mock.Requests, 1)
	prompt := mock.Requests[0].Messages[0].Content
	assert.Contains(t, prompt, "6. Market Position")
	assert.Contains(t, prompt, strings.Repeat("x", 3000))
	assert.NotContains(t, prompt, strings.Repeat("x", 3001))
}

func TestSummarize_ShortResponseFallsBack(t *testing.T) {
	s := NewSummarizer(&MockProvider{Text: "Too short."})

	got := s.Summarize(context.Background(), "Acme website text", "Aerospace")
	assert.Equal(t, DefaultSummary("Aerospace"), got)
	assert.Contains(t, got, "operates in the Aerospace sector")
}

func TestSummarize_ShortMultibyteResponseFallsBack(t *testing.T) {
	short := "当社は航空宇宙向けの精密部品を製造しています。"
	s := NewSummarizer(&MockProvider{Text: short})
	assert.Equal(t, DefaultSummary("Aerospace"), s.Summarize(context.Background(), "text", "Aerospace"))

	long := strings.Repeat("航空宇宙", 13)
	s = NewSummarizer(&MockProvider{Text: long})
	assert.Equal(t, long, s.Summarize(context.Background(), "text", "Aerospace"))
}

func TestSummarize_ErrorFallsBack(t *testing.T) {
	s := NewSummarizer(&MockProvider{Err: errors.New("upstream down")})

	got := s.Summarize(context.Background(), "Acme website text", "")
	assert.Contains(t, got, "operates in the technology sector")
	for _, header := range []string{"1. Company Overview", "2. Products/Services", "3. Target Market", "4. Value Proposition", "5. Key Technologies/Solutions", "6. Market Position"} {
		assert.Contains(t, got, header)
	}
}

func TestSummarize_NilProvider(t *testing.T) {
	s := NewSummarizer(nil)
	assert.Equal(t, DefaultSummary("Retail"), s.Summarize(context.Background(), "content", "Retail"))
}

func TestAnalyze(t *testing.T) {
	mock := &MockProvider{Text: "```json\n{\"industry\": \"Aerospace\", \"business_model\": \"B2B\", \"products\": [\"Rockets\"]}\n```"}
	a := NewAnalyzer(mock)

	got := a.Analyze(context.Background(), "Acme", "Acme builds rockets")
	assert.Equal(t, model.WebsiteProfile{
		Industry:      "Aerospace",
		BusinessModel: "B2B",
		TargetMarket:  "General",
		Products:      []string{"Rockets"},
		MarketFocus:   "Global",
	}, got)
	assert.Contains(t, mock.Requests[0].Messages[0].Content, "Acme")
}

func TestAnalyze_Fallbacks(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
		content  string
	}{
		{"no content", &MockProvider{Text: `{"industry":"X"}`}, ""},
		{"nil provider", nil, "content"},
		{"llm error", &MockProvider{Err: errors.New("boom")}, "content"},
		{"bad json", &MockProvider{Text: "not json at all"}, "content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAnalyzer(tt.provider).Analyze(context.Background(), "Acme", tt.content)
			assert.Equal(t, model.DefaultWebsiteProfile(), got)
		})
	}
}
