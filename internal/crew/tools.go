package crew

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/varunisrani/marketscope/internal/search"
)

// Tool names
const (
	ToolWebSearch = "web_search"
	ToolWriteFile = "write_file"
)

// ErrPathEscape is returned when write_file targets a path outside its directory
var ErrPathEscape = eris.New("path escapes the scratch directory")

// Tool is a capability an agent may invoke
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input map[string]any) (string, error)
}

// WebSearchTool searches the internet through a search.Searcher
type WebSearchTool struct {
	searcher   search.Searcher
	authority  *search.AuthorityClassifier
	maxResults int
}

// NewWebSearchTool wraps a searcher as an agent tool
func NewWebSearchTool(searcher search.Searcher, maxResults int) *WebSearchTool {
	if searcher == nil {
		searcher = search.Disabled{}
	}
	return &WebSearchTool{
		searcher:   searcher,
		authority:  search.NewAuthorityClassifier(nil, nil),
		maxResults: maxResults,
	}
}

func (t *WebSearchTool) Name() string { return ToolWebSearch }

func (t *WebSearchTool) Description() string {
	return `Search the internet for information about companies, markets, and industries. Input: {"query": "search terms"}`
}

func (t *WebSearchTool) Call(ctx context.Context, input map[string]any) (string, error) {
	query := stringArg(input, "query", "search_query", "q")
	if query == "" {
		return "", eris.New("web_search requires a non-empty query")
	}
	resp, err := t.searcher.Search(ctx, search.Request{Query: query, MaxResults: t.maxResults})
	if err != nil {
		return "", err
	}
	return search.FormatResults(t.authority.Rank(resp)), nil
}

// WriteFileTool writes agent output to files under a scratch directory
type WriteFileTool struct {
	dir string
}

// NewWriteFileTool creates the tool rooted at dir
func NewWriteFileTool(dir string) *WriteFileTool {
	return &WriteFileTool{dir: dir}
}

func (t *WriteFileTool) Name() string { return ToolWriteFile }

func (t *WriteFileTool) Description() string {
	return `Write content to a file. Input should be a dictionary with 'file_path' and 'text' keys.`
}

func (t *WriteFileTool) Call(ctx context.Context, input map[string]any) (string, error) {
	name := stringArg(input, "file_path")
	if name == "" {
		name = "report.md"
	}
	text := stringArg(input, "text", "content")

	path, err := t.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", eris.Wrap(err, "create scratch directory")
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", eris.Wrapf(err, "write %s", name)
	}
	return fmt.Sprintf("Successfully wrote %d bytes to %s", len(text), name), nil
}

func (t *WriteFileTool) resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", ErrPathEscape
	}
	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	return filepath.Join(t.dir, clean), nil
}

func stringArg(input map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := input[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}
