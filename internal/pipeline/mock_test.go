package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alnah/go-lyrender/internal/process"
)

// mockRunner records commands and delegates to fn. Safe for concurrent use.
type mockRunner struct {
	mu    sync.Mutex
	calls []process.Command
	fn    func(cmd process.Command) (process.Output, error)
}

func (m *mockRunner) Run(ctx context.Context, cmd process.Command) (process.Output, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return process.Output{}, err
	}
	if m.fn == nil {
		return process.Output{}, nil
	}
	return m.fn(cmd)
}

func (m *mockRunner) Calls() []process.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]process.Command(nil), m.calls...)
}

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := OpenWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("OpenWorkspace() error = %v", err)
	}
	return ws
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func writePages(t *testing.T, ws *Workspace, indices ...int) {
	t.Helper()
	for _, i := range indices {
		writeTestFile(t, ws.PagePath(i), "png")
	}
}
