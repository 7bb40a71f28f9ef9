package cli

import (
	"bufio"
	"io"
	"strings"
)

// Prompter asks the interactive user questions. Flows take it as an injected
// dependency so headless automation and tests can script the answers.
type Prompter interface {
	// Confirm asks a yes/no question. Empty input selects def.
	Confirm(question string, def bool) bool

	// Ask prompts for one line of free-form input. Empty input selects def.
	Ask(question, def string) string
}

// StdioPrompter is the production Prompter: questions go to the console,
// answers are read line by line from in (normally stdin).
type StdioPrompter struct {
	console *Console
	in      *bufio.Reader
}

// NewStdioPrompter returns a Prompter reading answers from in and echoing
// questions through console.
func NewStdioPrompter(console *Console, in io.Reader) *StdioPrompter {
	return &StdioPrompter{console: console, in: bufio.NewReader(in)}
}

func (p *StdioPrompter) Confirm(question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	p.console.Printf("%s [%s]: ", question, hint)

	answer := strings.ToLower(p.readLine())
	if answer == "" {
		return def
	}
	return strings.HasPrefix(answer, "y")
}

func (p *StdioPrompter) Ask(question, def string) string {
	if def != "" {
		p.console.Printf("%s [%s]: ", question, def)
	} else {
		p.console.Printf("%s: ", question)
	}

	answer := p.readLine()
	if answer == "" {
		return def
	}
	return answer
}

// readLine returns the next trimmed input line, or "" on EOF so prompts
// degrade to their defaults when input runs out.
func (p *StdioPrompter) readLine() string {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
