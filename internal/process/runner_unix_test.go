//go:build !windows

package process

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		cmd          Command
		wantStdout   string
		wantErr      error
		wantExitCode int
		wantStderr   string
	}{
		{
			name:       "captures stdout",
			cmd:        Command{Name: "sh", Args: []string{"-c", "printf hello"}},
			wantStdout: "hello",
		},
		{
			name:       "quiet discards stdout",
			cmd:        Command{Name: "sh", Args: []string{"-c", "printf hello"}, Quiet: true},
			wantStdout: "",
		},
		{
			name:         "non-zero exit is a failure carrying stderr",
			cmd:          Command{Name: "sh", Args: []string{"-c", "echo bad input >&2; exit 3"}},
			wantErr:      ErrFailed,
			wantExitCode: 3,
			wantStderr:   "bad input",
		},
		{
			name:         "quiet still keeps stderr",
			cmd:          Command{Name: "sh", Args: []string{"-c", "echo noisy; echo broken >&2; exit 1"}, Quiet: true},
			wantErr:      ErrFailed,
			wantExitCode: 1,
			wantStderr:   "broken",
		},
		{
			name:         "missing binary",
			cmd:          Command{Name: "lyrender-no-such-tool"},
			wantErr:      ErrNotFound,
			wantExitCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.cmd.Dir = t.TempDir()
			out, err := NewExecRunner().Run(context.Background(), tt.cmd)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				var f *Failure
				if !errors.As(err, &f) {
					t.Fatalf("error %T is not *Failure", err)
				}
				if f.ExitCode != tt.wantExitCode {
					t.Errorf("ExitCode = %d, want %d", f.ExitCode, tt.wantExitCode)
				}
				if !strings.Contains(f.Error(), tt.wantStderr) {
					t.Errorf("Error() = %q, want it to contain %q", f.Error(), tt.wantStderr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(out.Stdout) != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", out.Stdout, tt.wantStdout)
			}
		})
	}
}

func TestExecRunner_Run_Dir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := NewExecRunner().Run(context.Background(), Command{Name: "pwd", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Temp dirs may resolve through symlinks (macOS /private), so compare base names.
	if filepath.Base(strings.TrimSpace(string(out.Stdout))) != filepath.Base(dir) {
		t.Errorf("pwd = %q, want %q", out.Stdout, dir)
	}
}

func TestExecRunner_Run_Cancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewExecRunner().Run(ctx, Command{
		Name: "sh",
		Args: []string{"-c", "sleep 30 & sleep 30; wait"},
		Dir:  t.TempDir(),
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Run took %v after cancellation, process group was not killed", elapsed)
	}
}

func TestExecRunner_Run_AlreadyCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecRunner().Run(ctx, Command{Name: "sh", Args: []string{"-c", "true"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
