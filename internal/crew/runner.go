package crew

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/llm"
)

// DefaultMaxIterations bounds the tool loop of a single task
const DefaultMaxIterations = 6

// ErrMaxIterations is returned when an agent never produces a final answer
var ErrMaxIterations = eris.New("agent exceeded max iterations")

// Agent is a persona with the tools it may call
type Agent struct {
	Role      string
	Goal      string
	Backstory string
	Tools     []Tool
}

// Task is one unit of work for an agent. Context holds the outputs of
// earlier tasks in the run.
type Task struct {
	Description    string
	ExpectedOutput string
	Context        []string
}

// Runtime executes a task with an agent and returns its final output
type Runtime interface {
	Run(ctx context.Context, agent Agent, task Task) (string, error)
}

// Runner is the default Runtime: a tool-using loop over an llm.Provider
type Runner struct {
	provider      llm.Provider
	maxIterations int
	temperature   float32
}

var _ Runtime = (*Runner)(nil)

// NewRunner creates a runner; maxIterations <= 0 uses DefaultMaxIterations
func NewRunner(provider llm.Provider, maxIterations int) *Runner {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Runner{provider: provider, maxIterations: maxIterations, temperature: 0.7}
}

type step struct {
	Action      string          `json:"action"`
	Input       map[string]any  `json:"input"`
	FinalAnswer json.RawMessage `json:"final_answer"`
}

// Run implements Runtime. Provider errors are returned unchanged.
func (r *Runner) Run(ctx context.Context, agent Agent, task Task) (string, error) {
	tools := make(map[string]Tool, len(agent.Tools))
	for _, t := range agent.Tools {
		tools[t.Name()] = t
	}

	temp := r.temperature
	req := llm.CompletionRequest{
		System:      systemPrompt(agent),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: taskPrompt(task)}},
		Temperature: &temp,
	}

	for i := 0; i < r.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := r.provider.Complete(ctx, req)
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(resp.Text)

		// plain prose is the agent's answer
		if !strings.HasPrefix(llm.StripFences(text), "{") {
			return text, nil
		}
		var s step
		if err := llm.DecodeJSON(text, &s); err != nil {
			return text, nil
		}

		if len(s.FinalAnswer) > 0 && string(s.FinalAnswer) != "null" {
			return finalText(s.FinalAnswer), nil
		}

		var observation string
		switch {
		case s.Action == "":
			observation = `Respond with {"action": ..., "input": ...} or {"final_answer": ...}.`
		default:
			observation = r.callTool(ctx, tools, s)
		}

		zap.L().Debug("agent step",
			zap.String("role", agent.Role),
			zap.Int("iteration", i+1),
			zap.String("action", s.Action),
		)

		req.Messages = append(req.Messages,
			llm.Message{Role: llm.RoleAssistant, Content: text},
			llm.Message{Role: llm.RoleUser, Content: "Observation: " + observation},
		)
	}

	return "", fmt.Errorf("%w: %s after %d iterations", ErrMaxIterations, agent.Role, r.maxIterations)
}

func (r *Runner) callTool(ctx context.Context, tools map[string]Tool, s step) string {
	tool, ok := tools[s.Action]
	if !ok {
		names := make([]string, 0, len(tools))
		for name := range tools {
			names = append(names, name)
		}
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %s", s.Action, strings.Join(names, ", "))
	}

	out, err := tool.Call(ctx, s.Input)
	if err != nil {
		zap.L().Warn("tool call failed", zap.String("tool", s.Action), zap.Error(err))
		return "Error: " + err.Error()
	}
	return out
}

func finalText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}

func systemPrompt(agent Agent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s. %s\nYour personal goal is: %s\n", agent.Role, agent.Backstory, agent.Goal)

	if len(agent.Tools) > 0 {
		b.WriteString("\nYou have access to the following tools:\n")
		for _, t := range agent.Tools {
			fmt.Fprintf(&b, "- %s: %s\n", t.Name(), t.Description())
		}
		b.WriteString("\nTo use a tool reply with ONLY a JSON object: {\"action\": \"<tool name>\", \"input\": {...}}\n")
		b.WriteString("You will receive the tool result as an Observation.\n")
	}
	b.WriteString("When you are done reply with ONLY a JSON object: {\"final_answer\": \"<your complete answer>\"}\n")
	return b.String()
}

func taskPrompt(task Task) string {
	var b strings.Builder
	b.WriteString("Current Task: ")
	b.WriteString(task.Description)
	b.WriteString("\n\nThis is the expected criteria for your final answer: ")
	b.WriteString(task.ExpectedOutput)
	b.WriteString("\nYou MUST return the actual complete content as the final answer, not a summary.\n")

	if len(task.Context) > 0 {
		b.WriteString("\nThis is the context you're working with:\n")
		b.WriteString(strings.Join(task.Context, "\n\n"))
		b.WriteString("\n")
	}
	return b.String()
}
