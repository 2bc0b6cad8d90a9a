// Package process runs external tools with captured output and
// process-group cancellation.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for external tool failures.
var (
	ErrFailed   = errors.New("external tool failed")
	ErrNotFound = errors.New("external tool not found")
)

// defaultWaitDelay bounds how long Run waits for output pipes after the
// process group has been killed.
const defaultWaitDelay = 5 * time.Second

// Command describes one invocation of an external tool.
type Command struct {
	Name  string   // binary name or path, resolved through PATH
	Args  []string // arguments, passed verbatim (no shell)
	Dir   string   // working directory
	Quiet bool     // discard stdout; stderr is still kept for diagnostics
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output holds what a finished command wrote.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// Failure reports a tool that could not be started or exited non-zero.
// Its message is the tool's standard error, which is what users need to see
// when a typesetter or rasterizer rejects its input.
type Failure struct {
	Tool     string
	Args     []string
	ExitCode int // -1 when the process never ran to completion
	Stderr   string
	Err      error
}

func (f *Failure) Error() string {
	msg := strings.TrimSpace(f.Stderr)
	if msg == "" {
		switch {
		case f.ExitCode >= 0:
			msg = "exit status " + strconv.Itoa(f.ExitCode)
		case f.Err != nil:
			msg = f.Err.Error()
		default:
			msg = "failed"
		}
	}
	return f.Tool + ": " + msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches ErrFailed for every failure and ErrNotFound when the binary
// could not be located, either through PATH or at an explicit path.
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrFailed:
		return true
	case ErrNotFound:
		if errors.Is(f.Err, exec.ErrNotFound) {
			return true
		}
		return f.ExitCode < 0 && errors.Is(f.Err, fs.ErrNotExist)
	}
	return false
}

// ExecRunner implements Runner using os/exec.
// Each command gets its own process group; cancelling the context kills
// the whole group so no orphaned helpers keep writing into the workspace.
type ExecRunner struct {
	WaitDelay time.Duration // zero uses defaultWaitDelay
}

// NewExecRunner creates an ExecRunner with default settings.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, fmt.Errorf("%s: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...) // #nosec G204 -- tool names come from config
	cmd.Dir = c.Dir
	isolate(cmd)
	cmd.Cancel = func() error {
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = defaultWaitDelay
	}

	var stdout, stderr bytes.Buffer
	if c.Quiet {
		cmd.Stdout = io.Discard
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("%s: %w", c.Name, ctxErr)
	}

	failure := &Failure{
		Tool:     c.Name,
		Args:     c.Args,
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		failure.ExitCode = exitErr.ExitCode()
	}
	return out, failure
}
