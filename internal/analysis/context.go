// Package analysis assembles the prompt context handed to the report crew.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/varunisrani/marketscope/internal/model"
)

// ErrValidation is the sentinel wrapped by every ValidationError
var ErrValidation = eris.New("validation failed")

// ValidationError lists the required fields that were missing
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Input is everything collected before a report run
type Input struct {
	Company     model.CompanyInfo
	ReportType  model.ReportType
	DetailLevel model.DetailLevel
	// Website is the best available website text: the digest when one
	// exists, otherwise raw scraped text, possibly empty.
	Website    string
	Questions  []model.Question
	Answers    model.AnswerSet
	FocusAreas []string
	Extra      model.ExtraInputs
}

// Context is the validated aggregate passed to the crew and the persister
type Context struct {
	Company     model.CompanyInfo
	ReportType  model.ReportType
	DetailLevel model.DetailLevel
	Website     string
	Answers     model.AnswerSet
	FocusAreas  []string
	Extra       model.ExtraInputs
}

// Assemble validates the input and builds the analysis context.
// When questions are given, answers are normalized to their ids.
func Assemble(in Input) (*Context, error) {
	company := in.Company.WithDefaults()

	var missing []string
	if company.CompanyName == "" {
		missing = append(missing, "company_name")
	}
	if company.Industry == "" {
		missing = append(missing, "industry")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	answers := in.Answers
	if in.Questions != nil {
		answers = answers.Normalize(in.Questions)
	} else if answers == nil {
		answers = model.AnswerSet{}
	}

	focus := make([]string, 0, len(in.FocusAreas))
	for _, f := range in.FocusAreas {
		if f = strings.TrimSpace(f); f != "" {
			focus = append(focus, f)
		}
	}
	if len(focus) == 0 {
		focus = append(focus, model.DefaultFocusAreas...)
	}

	level := in.DetailLevel
	if level == "" {
		level = model.Quick
	}

	return &Context{
		Company:     company,
		ReportType:  in.ReportType,
		DetailLevel: level,
		Website:     strings.TrimSpace(in.Website),
		Answers:     answers,
		FocusAreas:  focus,
		Extra:       in.Extra,
	}, nil
}

// Block renders the labelled context block the agents read
func (c *Context) Block() string {
	var b strings.Builder

	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len(title)))
		b.WriteString("\n")
	}

	b.WriteString("COMPANY ANALYSIS CONTEXT\n")
	b.WriteString("=======================\n")

	section("1. COMPANY INFORMATION")
	fmt.Fprintf(&b, "Company Name: %s\n", c.Company.CompanyName)
	fmt.Fprintf(&b, "Industry: %s\n", c.Company.Industry)
	fmt.Fprintf(&b, "Time Period: %s\n", c.Company.TimePeriod)

	section("2. WEBSITE ANALYSIS")
	if c.Website != "" {
		b.WriteString(c.Website)
	} else {
		b.WriteString("No website analysis available.")
	}
	b.WriteString("\n")

	section("3. USER INSIGHTS")
	if lines := c.Answers.Lines(); len(lines) > 0 {
		b.WriteString("USER RESPONSES TO ANALYSIS QUESTIONS:\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("No additional user insights provided.\n")
	}

	section("4. FOCUS AREAS")
	b.WriteString(strings.Join(c.FocusAreas, ", "))
	b.WriteString("\n")

	if len(c.Extra) > 0 {
		section("5. ADDITIONAL INPUTS")
		keys := make([]string, 0, len(c.Extra))
		for k := range c.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, formatValue(c.Extra[k]))
		}
	}

	return b.String()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, fmt.Sprint(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
