package fileutil_test

// Notes:
// - ReplaceFile across filesystems is not tested: it needs two mounts.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-lyrender/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestFileExists - Regular file detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.ps")
	if err := os.WriteFile(file, []byte("%!PS"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", file, true},
		{"directory", dir, false},
		{"missing file", filepath.Join(dir, "missing.ps"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Name versus path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"studio", false},
		{"my-config", false},
		{"./studio.yaml", true},
		{"/etc/lyrender.yaml", true},
		{`C:\lyrender\studio.yaml`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFile - Overwrite and parent creation
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates parents and overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "file.ly")
		if err := fileutil.WriteFile(path, []byte("first")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := fileutil.WriteFile(path, []byte("second")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "second" {
			t.Errorf("content = %q, want %q", got, "second")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if err := fileutil.WriteFile("", nil); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestReplaceFile - Move over an existing file
// ---------------------------------------------------------------------------

func TestReplaceFile(t *testing.T) {
	t.Parallel()

	t.Run("moves source over destination", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "file-page1.trim.png")
		dst := filepath.Join(dir, "file-page1.png")
		if err := os.WriteFile(src, []byte("trimmed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte("original"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := fileutil.ReplaceFile(src, dst); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "trimmed" {
			t.Errorf("destination = %q, want %q", got, "trimmed")
		}
		if fileutil.FileExists(src) {
			t.Error("source should be gone after replace")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fileutil.ReplaceFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if err := fileutil.ReplaceFile("", "x"); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRemoveIfExists - Idempotent removal
// ---------------------------------------------------------------------------

func TestRemoveIfExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "file.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fileutil.RemoveIfExists(path); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := fileutil.RemoveIfExists(path); err != nil {
		t.Fatalf("second remove should succeed, got %v", err)
	}
	if fileutil.FileExists(path) {
		t.Error("file still exists")
	}
}
