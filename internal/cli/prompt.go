package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errCancelled is returned when input ends or the context is cancelled
var errCancelled = errors.New("cancelled by user")

// prompter reads answers line by line. Reads happen on a goroutine so a
// cancelled context unblocks a pending prompt.
type prompter struct {
	ctx   context.Context
	lines <-chan string
	out   io.Writer
}

func newPrompter(ctx context.Context, in io.Reader, out io.Writer) *prompter {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &prompter{ctx: ctx, lines: ch, out: out}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	select {
	case <-p.ctx.Done():
		return "", errCancelled
	case line, ok := <-p.lines:
		if !ok {
			return "", errCancelled
		}
		return strings.TrimSpace(line), nil
	}
}

// required re-asks until the answer is non-blank
func (p *prompter) required(label, what string) (string, error) {
	for {
		v, err := p.ask(label)
		if err != nil || v != "" {
			return v, err
		}
		warn(p.out, "%s is required.", what)
	}
}

func (p *prompter) optional(label, def string) (string, error) {
	v, err := p.ask(label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func (p *prompter) confirm(label string) (bool, error) {
	v, err := p.ask(label + " (y/n): ")
	if err != nil {
		return false, err
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes", nil
}

// choose prints a numbered menu and returns the zero-based index picked.
// def is the one-based default used for an empty answer, 0 for none.
func (p *prompter) choose(title string, options []string, def int) (int, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, styleBold.Render(title))
	for i, o := range options {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, o)
	}

	label := fmt.Sprintf("Select (1-%d): ", len(options))
	if def > 0 {
		label = fmt.Sprintf("Select (1-%d) [%d]: ", len(options), def)
	}

	for {
		v, err := p.ask(label)
		if err != nil {
			return 0, err
		}
		if v == "" && def > 0 {
			return def - 1, nil
		}
		n, err := strconv.Atoi(v)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		warn(p.out, "Please select a number between 1 and %d.", len(options))
	}
}

// chooseMany accepts comma separated menu numbers
func (p *prompter) chooseMany(title string, options []string) ([]string, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, styleBold.Render(title))
	for i, o := range options {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, o)
	}

	for {
		v, err := p.ask("Enter numbers separated by commas (e.g. 1,2,3): ")
		if err != nil {
			return nil, err
		}
		if picked, ok := parseSelection(v, options); ok {
			return picked, nil
		}
		warn(p.out, "Please enter valid numbers separated by commas.")
	}
}

func parseSelection(v string, options []string) ([]string, bool) {
	if strings.TrimSpace(v) == "" {
		return nil, false
	}
	var picked []string
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(options) {
			return nil, false
		}
		picked = append(picked, options[n-1])
	}
	return picked, true
}

// list reads one entry per line until a blank line, requiring at least one
func (p *prompter) list(title string) ([]string, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, styleBold.Render(title))
	var items []string
	for {
		v, err := p.ask("> ")
		if err != nil {
			return nil, err
		}
		if v != "" {
			items = append(items, v)
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
		warn(p.out, "Please enter at least one entry.")
	}
}
