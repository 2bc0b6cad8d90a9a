package main

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/alnah/go-lyrender"
	"github.com/alnah/go-lyrender/internal/process"
)

// Renderer is the subset of *lyrender.Renderer used by the CLI.
type Renderer interface {
	Render(ctx context.Context, input lyrender.Input) (*lyrender.Result, error)
}

// Environment holds injectable dependencies for testability.
// Includes I/O, the renderer factory, and tool probing for doctor.
type Environment struct {
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	DotEnv      string // .env file loaded at startup; empty disables
	NewRenderer func(opts ...lyrender.Option) Renderer
	LookPath    func(file string) (string, error)
	Runner      process.Runner
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		DotEnv: ".env",
		NewRenderer: func(opts ...lyrender.Option) Renderer {
			return lyrender.NewRenderer(opts...)
		},
		LookPath: exec.LookPath,
		Runner:   process.NewExecRunner(),
	}
}
