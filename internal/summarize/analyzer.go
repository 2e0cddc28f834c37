package summarize

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/llm"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/util"
)

const analyzePrompt = `Analyze this website content for %s and provide key business information.

Website Content:
%s

Return ONLY a JSON object with this exact format:
{
    "industry": "main industry category",
    "business_model": "B2B or B2C",
    "target_market": "target market description",
    "products": ["main product/service 1", "product/service 2"],
    "market_focus": "geographic focus"
}`

// Analyzer infers a business profile from website text
type Analyzer struct {
	provider llm.Provider
}

// NewAnalyzer creates an analyzer; a nil provider always yields the default profile
func NewAnalyzer(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// Analyze never fails; missing fields keep their defaults
func (a *Analyzer) Analyze(ctx context.Context, companyName, content string) model.WebsiteProfile {
	profile := model.DefaultWebsiteProfile()
	if strings.TrimSpace(content) == "" || a.provider == nil {
		return profile
	}

	prompt := fmt.Sprintf(analyzePrompt, companyName, util.Truncate(content, 2000))
	resp, err := a.provider.Complete(ctx, llm.Prompt("", prompt, summaryTemp))
	if err != nil {
		zap.L().Warn("error analyzing website", zap.Error(err))
		return profile
	}

	var parsed model.WebsiteProfile
	if err := llm.DecodeJSON(resp.Text, &parsed); err != nil {
		zap.L().Warn("error analyzing website", zap.Error(err))
		return profile
	}

	if v := strings.TrimSpace(parsed.Industry); v != "" {
		profile.Industry = v
	}
	if v := strings.TrimSpace(parsed.BusinessModel); v != "" {
		profile.BusinessModel = v
	}
	if v := strings.TrimSpace(parsed.TargetMarket); v != "" {
		profile.TargetMarket = v
	}
	if len(parsed.Products) > 0 {
		profile.Products = parsed.Products
	}
	if v := strings.TrimSpace(parsed.MarketFocus); v != "" {
		profile.MarketFocus = v
	}
	return profile
}
