package execx

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"tes3mpctl/pkg/logging"
)

// Runner abstracts subprocess execution so command-driven flows can be
// exercised in tests without a shell.
type Runner interface {
	// Run executes name with args and captures stdout and stderr.
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)

	// RunWithEnv is Run with extra environment entries appended to the
	// inherited environment. Later entries win for duplicate keys.
	RunWithEnv(ctx context.Context, extraEnv []string, name string, args ...string) (stdout string, stderr string, err error)

	// RunWithInput executes name with args, feeding input on stdin and
	// capturing stdout and stderr.
	RunWithInput(ctx context.Context, input string, name string, args ...string) (stdout string, stderr string, err error)

	// RunInteractive executes name with args wired to the caller's
	// terminal. Required for anything that prompts (sudo) or renders
	// progress for the user (package managers, the game itself).
	RunInteractive(ctx context.Context, name string, args ...string) error
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	return r.RunWithEnv(ctx, nil, name, args...)
}

func (ExecRunner) RunWithEnv(ctx context.Context, extraEnv []string, name string, args ...string) (string, string, error) {
	logging.Debug("exec", "run: %s %s", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.String(), errb.String(), err
}

func (ExecRunner) RunWithInput(ctx context.Context, input string, name string, args ...string) (string, string, error) {
	logging.Debug("exec", "run with input: %s %s", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.String(), errb.String(), err
}

func (ExecRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	logging.Debug("exec", "run interactive: %s %s", name, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// CommandExists reports whether name resolves to an executable on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
