package scrape

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// Strategy turns an HTML document into plain text
type Strategy interface {
	// Name returns the strategy name used in configuration
	Name() string

	// Text extracts whitespace-collapsed text from the document
	Text(doc string, pageURL *url.URL) (string, error)
}

// Registry manages text strategies by name
type Registry struct {
	strategies map[string]Strategy
	fallback   Strategy
}

// NewRegistry creates a registry holding the built-in strategies
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.fallback = NewHTMLText()
	r.Register(r.fallback)
	r.Register(NewReadabilityText(r.fallback))
	return r
}

// Register registers a strategy under its name
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Find returns the named strategy, or the HTML text strategy for unknown names
func (r *Registry) Find(name string) Strategy {
	if s, ok := r.strategies[strings.ToLower(name)]; ok {
		return s
	}
	return r.fallback
}

// skippedElements are dropped together with their subtree
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// HTMLText walks the parsed document and keeps only visible text nodes
type HTMLText struct{}

// NewHTMLText creates the default text strategy
func NewHTMLText() *HTMLText {
	return &HTMLText{}
}

// Name returns the strategy name
func (h *HTMLText) Name() string {
	return "text"
}

// Text extracts visible text from the document
func (h *HTMLText) Text(doc string, _ *url.URL) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", eris.Wrap(err, "parse HTML")
	}

	var chunks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.CommentNode {
			return
		}
		if n.Type == html.TextNode {
			chunks = append(chunks, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return CollapseWhitespace(strings.Join(chunks, " ")), nil
}

// ReadabilityText keeps only the main article content of the page
type ReadabilityText struct {
	fallback Strategy
}

// NewReadabilityText creates a readability strategy that falls back when no article is found
func NewReadabilityText(fallback Strategy) *ReadabilityText {
	return &ReadabilityText{fallback: fallback}
}

// Name returns the strategy name
func (r *ReadabilityText) Name() string {
	return "readability"
}

// Text extracts the main article text from the document
func (r *ReadabilityText) Text(doc string, pageURL *url.URL) (string, error) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(doc), pageURL)
	if err == nil {
		if text := CollapseWhitespace(article.TextContent); text != "" {
			return text, nil
		}
	}
	if r.fallback == nil {
		if err == nil {
			err = eris.New("readability found no article content")
		}
		return "", eris.Wrap(err, "readability")
	}
	return r.fallback.Text(doc, pageURL)
}

// CollapseWhitespace joins all whitespace-separated fields with single spaces
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
