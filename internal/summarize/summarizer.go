package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/llm"
	"github.com/varunisrani/marketscope/internal/util"
)

// NoContentSummary is returned when there is no website text to analyze
const NoContentSummary = "No website content available for analysis.\nUsing basic company information and user inputs for analysis."

const (
	maxContentChars   = 3000
	minSummaryChars   = 50
	summaryTemp       = 0.7
	summarySystemText = "You are a business analyst who writes structured company digests."
)

const summaryPrompt = `Analyze this website content and provide a structured analysis in the following format:

1. Company Overview
- Main business focus
- Core offerings
- Company positioning

2. Products/Services
- Key offerings
- Features/capabilities
- Target solutions

3. Target Market
- Primary audience
- Market segments
- Geographic focus

4. Value Proposition
- Key differentiators
- Main benefits
- Unique advantages

5. Key Technologies/Solutions
- Core technologies
- Technical capabilities
- Platform features

6. Market Position
- Industry focus
- Competitive stance
- Market approach

Website Content:
%s`

// Summarizer turns scraped website text into the six-section digest
type Summarizer struct {
	provider llm.Provider
}

// NewSummarizer creates a summarizer; a nil provider always yields the default digest
func NewSummarizer(provider llm.Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// Summarize never fails: every error path returns default text
func (s *Summarizer) Summarize(ctx context.Context, content, industry string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return NoContentSummary
	}
	if s.provider == nil {
		return DefaultSummary(industry)
	}

	prompt := fmt.Sprintf(summaryPrompt, util.Truncate(content, maxContentChars))
	resp, err := s.provider.Complete(ctx, llm.Prompt(summarySystemText, prompt, summaryTemp))
	if err != nil {
		zap.L().Warn("using structured default summary", zap.Error(err))
		return DefaultSummary(industry)
	}

	summary := strings.TrimSpace(resp.Text)
	if n := utf8.RuneCountInString(summary); n < minSummaryChars {
		zap.L().Warn("using structured default summary: insufficient analysis generated", zap.Int("chars", n))
		return DefaultSummary(industry)
	}
	return summary
}

// DefaultSummary is the six-section placeholder digest
func DefaultSummary(industry string) string {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		industry = "technology"
	}
	return fmt.Sprintf(`1. Company Overview
Based on available information, the company operates in the %s sector.

2. Products/Services
Analysis will be based on user inputs and market research.

3. Target Market
Market analysis will be conducted using industry standards and user responses.

4. Value Proposition
Will be derived from market research and competitive analysis.

5. Key Technologies/Solutions
Technology assessment will be based on industry trends and company focus.

6. Market Position
Position analysis will use market research and competitive intelligence.`, industry)
}
