package main

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/alnah/go-lyrender"
	"github.com/alnah/go-lyrender/internal/process"
)

// mockRenderer records inputs and returns a canned result or error.
type mockRenderer struct {
	mu      sync.Mutex
	result  *lyrender.Result
	err     error
	inputs  []lyrender.Input
	options int
}

func (m *mockRenderer) Render(_ context.Context, input lyrender.Input) (*lyrender.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockRenderer) calls() []lyrender.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]lyrender.Input(nil), m.inputs...)
}

// mockRunner answers version probes.
type mockRunner struct {
	stdout string
	stderr string
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ process.Command) (process.Output, error) {
	return process.Output{Stdout: []byte(m.stdout), Stderr: []byte(m.stderr)}, m.err
}

// newTestEnv returns an Environment backed by buffers and the given renderer.
func newTestEnv(r *mockRenderer, stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
		NewRenderer: func(opts ...lyrender.Option) Renderer {
			r.mu.Lock()
			r.options = len(opts)
			r.mu.Unlock()
			return r
		},
		LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		Runner:   &mockRunner{stdout: "tool 1.0\n"},
	}
	return env, stdout, stderr
}

