package crew

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunisrani/marketscope/internal/analysis"
	"github.com/varunisrani/marketscope/internal/llm"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/search"
)

// scriptedProvider replies with canned texts in order
type scriptedProvider struct {
	replies  []string
	err      error
	requests []llm.CompletionRequest
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.replies) == 0 {
		return &llm.CompletionResponse{Text: `{"action": "web_search", "input": {"query": "again"}}`}, nil
	}
	text := p.replies[0]
	p.replies = p.replies[1:]
	return &llm.CompletionResponse{Text: text}, nil
}

func (p *scriptedProvider) IsAvailable(ctx context.Context) bool { return true }

// recordingRuntime records tasks and returns canned outputs
type recordingRuntime struct {
	outputs []string
	err     error
	agents  []Agent
	tasks   []Task
}

func (r *recordingRuntime) Run(ctx context.Context, agent Agent, task Task) (string, error) {
	r.agents = append(r.agents, agent)
	r.tasks = append(r.tasks, task)
	if r.err != nil {
		return "", r.err
	}
	out := r.outputs[0]
	r.outputs = r.outputs[1:]
	return out, nil
}

type fakeSearcher struct {
	queries []string
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	f.queries = append(f.queries, req.Query)
	return &search.Response{Results: []search.Result{{Title: "Acme 2024", URL: "https://acme.example", Content: "revenue up 20%"}}}, nil
}

func testContext(t *testing.T) *analysis.Context {
	t.Helper()
	ctx, err := analysis.Assemble(analysis.Input{
		Company: model.CompanyInfo{CompanyName: "Acme", Industry: "Aerospace"},
		Answers: model.AnswerSet{1: "B2B"},
	})
	require.NoError(t, err)
	return ctx
}

func TestTemplates_CoverEveryReportType(t *testing.T) {
	for _, rt := range model.ReportTypes {
		tmpl, ok := Templates[rt]
		require.True(t, ok, "missing template for %s", rt)
		assert.NotEmpty(t, tmpl.Analyst.Role)
		assert.NotEmpty(t, tmpl.Writer.Role)
		assert.NotEmpty(t, tmpl.Analyze.Description)
		assert.NotEmpty(t, tmpl.Write.ExpectedOutput)
	}
}

func TestGenerate_UnknownReportType(t *testing.T) {
	rt := &recordingRuntime{}
	p := NewPipeline(rt, nil, nil)

	_, err := p.Generate(context.Background(), model.ReportType("horoscope"), testContext(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnsupportedReportType)
	assert.Empty(t, rt.tasks)
}

func TestGenerate_RejectsIncompleteContext(t *testing.T) {
	rt := &recordingRuntime{}
	p := NewPipeline(rt, nil, nil)

	_, err := p.Generate(context.Background(), model.MarketAnalysis, &analysis.Context{Company: model.CompanyInfo{CompanyName: "Acme"}})
	assert.ErrorIs(t, err, analysis.ErrValidation)
	assert.Empty(t, rt.tasks)
}

func TestGenerate_SequentialTasks(t *testing.T) {
	rt := &recordingRuntime{outputs: []string{"FINDINGS", "# Report"}}
	searchTool := NewWebSearchTool(&fakeSearcher{}, 3)
	writeTool := NewWriteFileTool(t.TempDir())
	p := NewPipeline(rt, searchTool, writeTool)

	out, err := p.Generate(context.Background(), model.ICPReport, testContext(t))
	require.NoError(t, err)
	assert.Equal(t, "# Report", out)

	require.Len(t, rt.tasks, 2)
	assert.Equal(t, "ICP Research Analyst", rt.agents[0].Role)
	assert.Equal(t, "Define ideal customer profile for Acme", rt.agents[0].Goal)
	assert.Equal(t, "ICP Report Writer", rt.agents[1].Role)
	assert.Equal(t, ToolWebSearch, rt.agents[0].Tools[0].Name())
	assert.Equal(t, ToolWriteFile, rt.agents[1].Tools[0].Name())

	assert.Contains(t, rt.tasks[0].Description, "COMPANY ANALYSIS CONTEXT")
	assert.Contains(t, rt.tasks[0].Description, "Q1: B2B")
	assert.Equal(t, []string{"FINDINGS"}, rt.tasks[1].Context)
}

func TestGenerate_RuntimeErrorPropagates(t *testing.T) {
	boom := errors.New("agent runtime exploded")
	p := NewPipeline(&recordingRuntime{err: boom}, nil, nil)

	_, err := p.Generate(context.Background(), model.GapAnalysis, testContext(t))
	assert.Same(t, boom, err)
}

func TestRunner_ToolLoop(t *testing.T) {
	searcher := &fakeSearcher{}
	provider := &scriptedProvider{replies: []string{
		`{"action": "web_search", "input": {"query": "Acme revenue"}}`,
		"```json\n{\"final_answer\": \"Acme revenue grew 20%.\"}\n```",
	}}
	r := NewRunner(provider, 4)
	agent := Agent{Role: "Analyst", Tools: []Tool{NewWebSearchTool(searcher, 5)}}

	out, err := r.Run(context.Background(), agent, Task{Description: "Research Acme", ExpectedOutput: "Facts"})
	require.NoError(t, err)
	assert.Equal(t, "Acme revenue grew 20%.", out)
	assert.Equal(t, []string{"Acme revenue"}, searcher.queries)

	require.Len(t, provider.requests, 2)
	last := provider.requests[1].Messages
	require.Len(t, last, 3)
	assert.Equal(t, llm.RoleAssistant, last[1].Role)
	assert.Contains(t, last[2].Content, "Observation: 1. Acme 2024")
	assert.Contains(t, provider.requests[0].System, "web_search")
}

func TestRunner_PlainTextIsFinal(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"# Market Report\n\nAll good."}}
	out, err := NewRunner(provider, 2).Run(context.Background(), Agent{Role: "Writer"}, Task{Description: "Write"})
	require.NoError(t, err)
	assert.Equal(t, "# Market Report\n\nAll good.", out)
}

func TestRunner_NonStringFinalAnswer(t *testing.T) {
	provider := &scriptedProvider{replies: []string{`{"final_answer": {"score": 7}}`}}
	out, err := NewRunner(provider, 2).Run(context.Background(), Agent{Role: "Writer"}, Task{Description: "Write"})
	require.NoError(t, err)
	assert.Equal(t, `{"score": 7}`, out)
}

func TestRunner_UnknownToolBecomesObservation(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		`{"action": "launch_rocket", "input": {}}`,
		`{"final_answer": "done"}`,
	}}
	out, err := NewRunner(provider, 3).Run(context.Background(), Agent{Role: "Analyst"}, Task{})
	require.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Contains(t, provider.requests[1].Messages[2].Content, `unknown tool "launch_rocket"`)
}

func TestRunner_MaxIterations(t *testing.T) {
	provider := &scriptedProvider{}
	agent := Agent{Role: "Analyst", Tools: []Tool{NewWebSearchTool(search.Disabled{}, 5)}}

	_, err := NewRunner(provider, 3).Run(context.Background(), agent, Task{})
	assert.ErrorIs(t, err, ErrMaxIterations)
	assert.Len(t, provider.requests, 3)
	assert.Contains(t, provider.requests[2].Messages[2].Content, "web search is not configured")
}

func TestRunner_ProviderErrorUnchanged(t *testing.T) {
	boom := errors.New("rate limited")
	_, err := NewRunner(&scriptedProvider{err: boom}, 3).Run(context.Background(), Agent{}, Task{})
	assert.Same(t, boom, err)
}

func TestWriteFileTool(t *testing.T) {
	dir := t.TempDir()
	tool := NewWriteFileTool(dir)

	msg, err := tool.Call(context.Background(), map[string]any{"text": "# hi"})
	require.NoError(t, err)
	assert.Contains(t, msg, "report.md")
	data, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))

	_, err = tool.Call(context.Background(), map[string]any{"file_path": "sub/notes.md", "text": "n"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "sub", "notes.md"))

	for _, bad := range []string{"../escape.md", "/etc/passwd", "a/../../b.md"} {
		_, err := tool.Call(context.Background(), map[string]any{"file_path": bad, "text": "x"})
		assert.ErrorIs(t, err, ErrPathEscape, bad)
	}
}

func TestWebSearchTool_RequiresQuery(t *testing.T) {
	_, err := NewWebSearchTool(&fakeSearcher{}, 5).Call(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "query"))
}
