package execx

import (
	"context"
	"fmt"
	"strings"
)

// FakeResult is the scripted outcome of one command line.
type FakeResult struct {
	Stdout string
	Stderr string
	Err    error
}

// FakeRunner is a scripted Runner for tests. Commands are matched by their
// full command line ("name arg1 arg2"); unscripted commands return an error,
// which surfaces missing expectations instead of silently succeeding.
type FakeRunner struct {
	// Responses maps a full command line to its scripted result.
	Responses map[string]FakeResult

	// Calls records every command line in invocation order, including
	// interactive and stdin-fed runs.
	Calls []string

	// Inputs records the stdin payload of each RunWithInput call, keyed
	// by command line.
	Inputs map[string]string
}

// NewFakeRunner returns an empty FakeRunner ready for scripting.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: make(map[string]FakeResult),
		Inputs:    make(map[string]string),
	}
}

// Script registers a result for the given command line.
func (f *FakeRunner) Script(line string, res FakeResult) *FakeRunner {
	f.Responses[line] = res
	return f
}

func (f *FakeRunner) lookup(name string, args ...string) (string, FakeResult, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, line)
	if res, ok := f.Responses[line]; ok {
		return line, res, nil
	}
	return line, FakeResult{}, fmt.Errorf("unscripted command: %s", line)
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	_, res, err := f.lookup(name, args...)
	if err != nil {
		return "", "", err
	}
	return res.Stdout, res.Stderr, res.Err
}

func (f *FakeRunner) RunWithEnv(ctx context.Context, _ []string, name string, args ...string) (string, string, error) {
	return f.Run(ctx, name, args...)
}

func (f *FakeRunner) RunWithInput(_ context.Context, input string, name string, args ...string) (string, string, error) {
	line, res, err := f.lookup(name, args...)
	if err != nil {
		return "", "", err
	}
	if f.Inputs == nil {
		f.Inputs = make(map[string]string)
	}
	f.Inputs[line] = input
	return res.Stdout, res.Stderr, res.Err
}

func (f *FakeRunner) RunInteractive(_ context.Context, name string, args ...string) error {
	_, res, err := f.lookup(name, args...)
	if err != nil {
		return err
	}
	return res.Err
}

// CalledWith reports whether any recorded command line starts with prefix.
func (f *FakeRunner) CalledWith(prefix string) bool {
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
