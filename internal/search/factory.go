package search

import (
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/model"
)

const defaultTimeout = 15 * time.Second

// NewSearcher picks a backend from config. A blank provider picks whichever
// API key is present in the environment, and no key at all yields Disabled.
func NewSearcher(cfg model.SearchConfig) (Searcher, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	apiKey := cfg.APIKey

	if provider == "" {
		switch {
		case os.Getenv("SERPER_API_KEY") != "":
			provider = "serper"
		case os.Getenv("TAVILY_API_KEY") != "":
			provider = "tavily"
		default:
			return Disabled{}, nil
		}
	}

	switch provider {
	case "serper":
		if apiKey == "" {
			apiKey = os.Getenv("SERPER_API_KEY")
		}
		if apiKey == "" {
			zap.L().Warn("serper api key is missing, web search disabled")
			return Disabled{}, nil
		}
		return NewSerperClient(apiKey, defaultTimeout), nil

	case "tavily":
		if apiKey == "" {
			apiKey = os.Getenv("TAVILY_API_KEY")
		}
		if apiKey == "" {
			zap.L().Warn("tavily api key is missing, web search disabled")
			return Disabled{}, nil
		}
		return NewTavilyClient(apiKey, defaultTimeout), nil

	case "none", "disabled":
		return Disabled{}, nil

	default:
		return nil, eris.Errorf("unknown search provider: %s (supported: serper, tavily, none)", provider)
	}
}
