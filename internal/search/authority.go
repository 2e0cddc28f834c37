package search

import (
	"net/url"
	"sort"
	"strings"
)

// Tier is the authority classification of a result's source
type Tier int

const (
	TierUnknown   Tier = 0
	TierPrimary   Tier = 1 // regulators, statistics offices, filings
	TierSecondary Tier = 2 // financial press, analyst firms, reference works
	TierTertiary  Tier = 3 // blogs, vendor pages, everything else
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// DefaultPrimaryDomains are official data sources for market figures
var DefaultPrimaryDomains = []string{
	"sec.gov", "census.gov", "bls.gov", "bea.gov", "data.gov",
	"gov.uk", "europa.eu", "worldbank.org", "imf.org", "oecd.org",
}

// DefaultSecondaryDomains are publishers and research firms
var DefaultSecondaryDomains = []string{
	"reuters.com", "bloomberg.com", "ft.com", "wsj.com", "economist.com",
	"forbes.com", "techcrunch.com", "statista.com", "gartner.com",
	"mckinsey.com", "crunchbase.com", "wikipedia.org",
}

// AuthorityClassifier classifies result URLs into authority tiers
type AuthorityClassifier struct {
	primary   map[string]bool
	secondary map[string]bool
}

// NewAuthorityClassifier builds a classifier; nil lists use the defaults
func NewAuthorityClassifier(primary, secondary []string) *AuthorityClassifier {
	if primary == nil {
		primary = DefaultPrimaryDomains
	}
	if secondary == nil {
		secondary = DefaultSecondaryDomains
	}
	c := &AuthorityClassifier{
		primary:   make(map[string]bool, len(primary)),
		secondary: make(map[string]bool, len(secondary)),
	}
	for _, d := range primary {
		c.primary[strings.ToLower(d)] = true
	}
	for _, d := range secondary {
		c.secondary[strings.ToLower(d)] = true
	}
	return c
}

// Classify returns the tier of rawURL. Subdomains inherit their parent's tier.
func (c *AuthorityClassifier) Classify(rawURL string) Tier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return TierTertiary
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	if matchDomain(host, c.primary) {
		return TierPrimary
	}
	if matchDomain(host, c.secondary) {
		return TierSecondary
	}
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return TierPrimary
	}
	return TierTertiary
}

func matchDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for d := range domains {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Rank tags each result with its tier and orders results primary first,
// keeping the provider's order within a tier.
func (c *AuthorityClassifier) Rank(resp *Response) *Response {
	if resp == nil {
		return nil
	}
	for i := range resp.Results {
		resp.Results[i].Authority = c.Classify(resp.Results[i].URL)
	}
	sort.SliceStable(resp.Results, func(i, j int) bool {
		return resp.Results[i].Authority < resp.Results[j].Authority
	})
	return resp
}
