package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/util"
)

// Extractor fetches a company website and returns bounded plain text
type Extractor struct {
	fetcher  *Fetcher
	strategy Strategy
	robots   *util.RobotsChecker
	maxChars int
}

// NewExtractor builds an extractor from the HTTP configuration
func NewExtractor(cfg model.HTTPConfig) *Extractor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = model.DefaultUserAgent
	}
	maxChars := cfg.MaxTextChars
	if maxChars <= 0 {
		maxChars = 5000
	}

	proxy := util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)

	e := &Extractor{
		fetcher:  NewFetcher(timeout, userAgent, cfg.MaxBodyBytes, proxy),
		strategy: NewRegistry().Find(cfg.ExtractMode),
		maxChars: maxChars,
	}
	if cfg.RespectRobots {
		e.robots = util.NewRobotsChecker(userAgent, timeout, proxy)
	}
	return e
}

// Extract returns the page text, or false when anything goes wrong.
// Failures never propagate; callers treat false as "no website context".
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, bool) {
	log := zap.L().With(zap.String("url", rawURL))

	if e.robots != nil {
		allowed, err := e.robots.Allowed(ctx, rawURL)
		if err != nil || !allowed {
			log.Warn("website disallowed by robots.txt", zap.Error(err))
			return "", false
		}
	}

	result, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		log.Warn("error scraping website", zap.Error(err))
		return "", false
	}

	text, err := e.strategy.Text(result.HTML, result.FinalURL)
	if err != nil {
		log.Warn("error extracting website text", zap.String("strategy", e.strategy.Name()), zap.Error(err))
		return "", false
	}

	text = util.Truncate(text, e.maxChars)
	if text == "" {
		log.Warn("website has no visible text")
		return "", false
	}

	log.Debug("scraped website", zap.Int("chars", len(text)))
	return text, true
}
