//go:build integration

package lyrender

// Notes:
// - Runs the real tools. Skipped when any of them, or the default SoundFont,
//   is missing from the host.

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-lyrender/internal/config"
	"github.com/alnah/go-lyrender/internal/fileutil"
)

// testTimeout bounds a whole real render.
const testTimeout = 2 * time.Minute

// requireTools skips the test unless the full tool chain is installed.
func requireTools(t *testing.T) {
	t.Helper()
	for _, tool := range []string{"lilypond", "gs", "convert", "fluidsynth"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}
	if !fileutil.FileExists(config.DefaultSampleBank) {
		t.Skipf("SoundFont %s not installed", config.DefaultSampleBank)
	}
}

func TestRender_Integration_Source(t *testing.T) {
	requireTools(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	r := NewRenderer(WithTempDir(t.TempDir()))
	result, err := r.Render(ctx, Input{Source: "{ c' d' e' f' }"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(result.WorkDir) })

	if len(result.Images) != 1 {
		t.Errorf("len(Images) = %d, want 1", len(result.Images))
	}
	for _, img := range result.Images {
		if !fileutil.FileExists(img) {
			t.Errorf("image %s missing", img)
		}
	}
	if filepath.Base(result.Audio) != "file.wav" || !fileutil.FileExists(result.Audio) {
		t.Errorf("audio = %q", result.Audio)
	}
}

func TestRender_Integration_SyntaxError(t *testing.T) {
	requireTools(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	parent := t.TempDir()
	r := NewRenderer(WithTempDir(parent))
	if _, err := r.Render(ctx, Input{Source: "{ c' d' e' f'"}); err == nil {
		t.Fatal("expected error for unbalanced braces")
	}

	entries, _ := os.ReadDir(parent)
	if len(entries) != 0 {
		t.Errorf("failed run left %d entries in %s", len(entries), parent)
	}
}
