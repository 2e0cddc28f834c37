// Package questions produces the short-answer questions shown to the operator
// before a report is generated.
package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/varunisrani/marketscope/internal/llm"
	"github.com/varunisrani/marketscope/internal/model"
	"github.com/varunisrani/marketscope/internal/util"
)

// MaxQuestions is the largest question list accepted from the model
const MaxQuestions = 5

const (
	quickContextChars    = 1000
	detailedContextChars = 3000
	questionTemp         = 0.9
	noWebsiteData        = "No website data available"
)

var errInvalidQuestions = errors.New("invalid questions payload")

// Request describes what to ask about
type Request struct {
	CompanyName string
	Industry    string
	ReportType  model.ReportType
	DetailLevel model.DetailLevel
	Context     string
}

// Generator asks the LLM for questions and falls back to the static table
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a generator; a nil provider always yields static questions
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate never fails: every LLM or payload problem yields the static set
func (g *Generator) Generate(ctx context.Context, req Request) []model.Question {
	fallback := func(reason error) []model.Question {
		zap.L().Warn("using fallback questions",
			zap.String("report_type", string(req.ReportType)),
			zap.String("detail_level", string(req.DetailLevel)),
			zap.Error(reason),
		)
		return Static(req.ReportType, req.DetailLevel, req.CompanyName, req.Industry)
	}

	if g.provider == nil {
		return fallback(errors.New("no LLM provider configured"))
	}

	resp, err := g.provider.Complete(ctx, llm.Prompt("", BuildPrompt(req), questionTemp))
	if err != nil {
		return fallback(err)
	}

	qs, err := Parse(resp.Text)
	if err != nil {
		return fallback(err)
	}
	return qs
}

type payload struct {
	Questions []model.Question `json:"questions"`
}

// Parse decodes and validates a {"questions": [...]} payload
func Parse(text string) ([]model.Question, error) {
	var p payload
	if err := llm.DecodeJSON(text, &p); err != nil {
		return nil, err
	}
	if err := Validate(p.Questions); err != nil {
		return nil, err
	}
	return p.Questions, nil
}

// Validate checks the list is non-empty, bounded, and numbered from 1 in
// increasing order
func Validate(qs []model.Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("%w: no questions", errInvalidQuestions)
	}
	if len(qs) > MaxQuestions {
		return fmt.Errorf("%w: %d questions", errInvalidQuestions, len(qs))
	}
	if qs[0].ID != 1 {
		return fmt.Errorf("%w: first id is %d", errInvalidQuestions, qs[0].ID)
	}
	prev := 0
	for _, q := range qs {
		if q.ID <= prev {
			return fmt.Errorf("%w: id %d out of order", errInvalidQuestions, q.ID)
		}
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: question %d is blank", errInvalidQuestions, q.ID)
		}
		prev = q.ID
	}
	return nil
}

// BuildPrompt renders the question prompt for the request's detail level
func BuildPrompt(req Request) string {
	focus := FocusPhrase(req.ReportType, req.DetailLevel)

	if req.DetailLevel == model.Detailed {
		return fmt.Sprintf(`As an expert market analyst, generate 5 comprehensive questions about %s in the %s industry.
Focus areas: %s

Website Context:
%s

Requirements:
1. Questions should cover multiple aspects of the business
2. Include both quantitative and qualitative aspects
3. Focus on strategic and operational elements
4. Questions should help build a complete market picture
5. Each question should explore a different angle

Return ONLY a JSON object in this exact format:
{
    "questions": [
        {"id": 1, "question": "Detailed question 1?"},
        {"id": 2, "question": "Detailed question 2?"},
        {"id": 3, "question": "Detailed question 3?"},
        {"id": 4, "question": "Detailed question 4?"},
        {"id": 5, "question": "Detailed question 5?"}
    ]
}`, req.CompanyName, req.Industry, focus, promptContext(req.Context, detailedContextChars))
	}

	return fmt.Sprintf(`As an expert market analyst, generate 3 highly focused, specific questions about %s in the %s industry.
Focus areas: %s

Website Context:
%s

Requirements:
1. Each question must be under 15 words
2. Questions must be specific and quantifiable
3. Focus on immediate, actionable insights
4. Questions should be industry-specific

Return ONLY a JSON object in this exact format:
{
    "questions": [
        {"id": 1, "question": "Short specific question 1?"},
        {"id": 2, "question": "Short specific question 2?"},
        {"id": 3, "question": "Short specific question 3?"}
    ]
}`, req.CompanyName, req.Industry, focus, promptContext(req.Context, quickContextChars))
}

func promptContext(text string, limit int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return noWebsiteData
	}
	return util.Truncate(text, limit)
}
