// Package execx provides a stub-friendly interface for running external
// commands such as git and npm.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result holds the outcome of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Opts holds optional parameters for command execution.
type Opts struct {
	Dir string            // working directory (optional)
	Env map[string]string // extra environment variables (overlay)
}

// Runner runs external commands.
//
// Run returns a Result with ExitCode set whenever the process ran, even when it
// exited non-zero. The error is reserved for execution failures: binary not
// found, context canceled, I/O failure.
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts Opts) (Result, error)
}

// OSRunner is the production Runner backed by os/exec.
type OSRunner struct{}

// NewOSRunner creates a new OSRunner.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run executes the command and captures stdout/stderr.
func (r *OSRunner) Run(ctx context.Context, name string, args []string, opts Opts) (Result, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return Result{}, fmt.Errorf("%s not found: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	if len(opts.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	err = cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// Check runs the command and turns a non-zero exit into an error that
// carries the command line and its trimmed stderr.
func Check(ctx context.Context, r Runner, name string, args []string, opts Opts) (Result, error) {
	res, err := r.Run(ctx, name, args, opts)
	if err != nil {
		return res, fmt.Errorf("running %s: %w", commandLine(name, args), err)
	}
	if res.ExitCode != 0 {
		return res, &ExitError{
			Command:  commandLine(name, args),
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(res.Stderr),
		}
	}
	return res, nil
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
